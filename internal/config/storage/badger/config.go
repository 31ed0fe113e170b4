package badger

import (
	"path/filepath"

	configtypes "github.com/weisyn/hellocontract/pkg/types"
	"github.com/weisyn/hellocontract/pkg/utils"
)

// BadgerOptions BadgerDB存储配置选项
type BadgerOptions struct {
	// === 基础配置 ===
	Path       string `json:"path"`        // 数据库存储路径
	SyncWrites bool   `json:"sync_writes"` // 是否同步写入
	InMemory   bool   `json:"in_memory"`   // 内存模式（测试/开发），忽略 Path

	// === 基础性能配置 ===
	MemTableSize int64 `json:"mem_table_size"`

	// === 维护配置 ===
	EnableAutoCompaction bool `json:"enable_auto_compaction"`
}

// Config BadgerDB配置实现
type Config struct {
	options *BadgerOptions
}

// New 创建BadgerDB配置实现
func New(userConfig interface{}) *Config {
	defaultOptions := createDefaultBadgerOptions()
	if userConfig != nil {
		applyUserConfig(defaultOptions, userConfig)
	}
	return &Config{options: defaultOptions}
}

// NewFromOptions 从BadgerOptions创建配置实现
func NewFromOptions(options *BadgerOptions) *Config {
	return &Config{options: options}
}

// NewInMemory 内存模式配置（测试用）
func NewInMemory() *Config {
	opts := createDefaultBadgerOptions()
	opts.Path = ""
	opts.InMemory = true
	opts.SyncWrites = false
	return &Config{options: opts}
}

func createDefaultBadgerOptions() *BadgerOptions {
	return &BadgerOptions{
		Path:                 getDefaultPath(),
		SyncWrites:           defaultSyncWrites,
		InMemory:             defaultInMemory,
		MemTableSize:         defaultMemTableSize,
		EnableAutoCompaction: defaultEnableAutoCompaction,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
//
// 配置了 storage.data_root 时使用 {data_root}/badger/。
func applyUserConfig(options *BadgerOptions, userConfig interface{}) {
	storageConfig, ok := userConfig.(*configtypes.UserStorageConfig)
	if !ok || storageConfig == nil {
		return
	}
	if storageConfig.DataRoot != nil {
		options.Path = utils.ResolveDataPath(filepath.Join(*storageConfig.DataRoot, "badger"))
	}
	if storageConfig.SyncWrites != nil {
		options.SyncWrites = *storageConfig.SyncWrites
	}
	if storageConfig.InMemory != nil && *storageConfig.InMemory {
		options.InMemory = true
		options.Path = ""
	}
}

// GetOptions 获取完整的BadgerDB配置选项
func (c *Config) GetOptions() *BadgerOptions {
	return c.options
}

// GetPath 获取数据库路径
func (c *Config) GetPath() string {
	return c.options.Path
}

// IsSyncWritesEnabled 是否启用同步写入
func (c *Config) IsSyncWritesEnabled() bool {
	return c.options.SyncWrites
}

// IsInMemory 是否内存模式
func (c *Config) IsInMemory() bool {
	return c.options.InMemory
}

// GetMemTableSize 获取内存表大小
func (c *Config) GetMemTableSize() int64 {
	return c.options.MemTableSize
}

// IsAutoCompactionEnabled 是否启用自动压缩
func (c *Config) IsAutoCompactionEnabled() bool {
	return c.options.EnableAutoCompaction
}
