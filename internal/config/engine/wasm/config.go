// Package wasm 提供 WASM 合约执行引擎的配置
package wasm

import (
	"time"

	configtypes "github.com/weisyn/hellocontract/pkg/types"
)

// WASMOptions WASM 引擎配置选项
type WASMOptions struct {
	UseCompiler     bool          `json:"use_compiler"`      // wazero 编译器模式；false 为解释器
	MaxMemoryPages  uint32        `json:"max_memory_pages"`  // 合约内存上限（页）
	CallTimeout     time.Duration `json:"call_timeout"`      // 单次入口调用超时，0 表示不限制
	CompileCacheTTL time.Duration `json:"compile_cache_ttl"` // 编译标记缓存时长
}

// Config WASM 引擎配置实现
type Config struct {
	options *WASMOptions
}

// New 创建 WASM 引擎配置
func New(userConfig interface{}) *Config {
	defaultOptions := createDefaultWASMOptions()
	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}
	return &Config{options: defaultOptions}
}

// NewFromOptions 从完整选项创建配置
func NewFromOptions(options *WASMOptions) *Config {
	return &Config{options: options}
}

func createDefaultWASMOptions() *WASMOptions {
	return &WASMOptions{
		UseCompiler:     defaultUseCompiler,
		MaxMemoryPages:  defaultMaxMemoryPages,
		CallTimeout:     defaultCallTimeout,
		CompileCacheTTL: defaultCompileCacheTTL,
	}
}

// applyUserConfig 应用用户配置；无法解析的超时保持默认值
func applyUserConfig(options *WASMOptions, userConfig interface{}) {
	engineConfig, ok := userConfig.(*configtypes.UserEngineConfig)
	if !ok || engineConfig == nil {
		return
	}
	if engineConfig.UseCompiler != nil {
		options.UseCompiler = *engineConfig.UseCompiler
	}
	if engineConfig.MaxMemoryPages != nil && *engineConfig.MaxMemoryPages > 0 {
		options.MaxMemoryPages = *engineConfig.MaxMemoryPages
	}
	if engineConfig.CallTimeout != nil {
		if d, err := time.ParseDuration(*engineConfig.CallTimeout); err == nil && d >= 0 {
			options.CallTimeout = d
		}
	}
}

// GetOptions 获取完整配置选项
func (c *Config) GetOptions() *WASMOptions {
	return c.options
}

// IsCompilerEnabled 是否使用编译器模式
func (c *Config) IsCompilerEnabled() bool {
	return c.options.UseCompiler
}

// GetMaxMemoryPages 合约内存上限（页）
func (c *Config) GetMaxMemoryPages() uint32 {
	return c.options.MaxMemoryPages
}

// GetCallTimeout 单次入口调用超时
func (c *Config) GetCallTimeout() time.Duration {
	return c.options.CallTimeout
}

// GetCompileCacheTTL 编译标记缓存时长
func (c *Config) GetCompileCacheTTL() time.Duration {
	return c.options.CompileCacheTTL
}
