package config

import (
	"path/filepath"

	"github.com/weisyn/hellocontract/internal/config/engine/wasm"
	"github.com/weisyn/hellocontract/internal/config/event"
	"github.com/weisyn/hellocontract/internal/config/log"
	"github.com/weisyn/hellocontract/internal/config/storage/badger"
	"github.com/weisyn/hellocontract/internal/config/storage/memory"
	"github.com/weisyn/hellocontract/pkg/interfaces/config"
	"github.com/weisyn/hellocontract/pkg/types"
	"github.com/weisyn/hellocontract/pkg/utils"
)

// defaultAppName 未配置时的应用名称
const defaultAppName = "hellocontract"

// Provider 实现配置提供者接口
type Provider struct {
	appConfig *types.AppConfig
}

// NewProvider 创建配置提供者；appConfig 可以为 nil
func NewProvider(appConfig *types.AppConfig) config.Provider {
	return &Provider{appConfig: appConfig}
}

// GetAppName 应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig != nil && p.appConfig.AppName != nil && *p.appConfig.AppName != "" {
		return *p.appConfig.AppName
	}
	return defaultAppName
}

// GetLog 获取日志配置
//
// 日志文件路径为相对路径时，基于 data_dir 解析。
func (p *Provider) GetLog() *log.LogOptions {
	var userLogConfig *types.UserLogConfig
	if p.appConfig != nil {
		userLogConfig = p.appConfig.Log
	}
	options := log.New(userLogConfig).GetOptions()

	if !log.IsStdStream(options.FilePath) && !filepath.IsAbs(options.FilePath) {
		if dataDir := p.dataDir(); dataDir != "" {
			options.FilePath = filepath.Join(dataDir, options.FilePath)
		}
	}
	return options
}

// GetBadger 获取BadgerDB配置
//
// storage.data_root 优先；否则使用 data_dir。
func (p *Provider) GetBadger() *badger.BadgerOptions {
	var userStorageConfig *types.UserStorageConfig
	if p.appConfig != nil && p.appConfig.Storage != nil {
		userStorageConfig = p.appConfig.Storage
	}
	if (userStorageConfig == nil || userStorageConfig.DataRoot == nil) && p.dataDir() != "" {
		merged := types.UserStorageConfig{}
		if userStorageConfig != nil {
			merged = *userStorageConfig
		}
		merged.DataRoot = types.StringPtr(p.dataDir())
		userStorageConfig = &merged
	}
	return badger.New(userStorageConfig).GetOptions()
}

// GetMemory 获取内存缓存配置
func (p *Provider) GetMemory() *memory.MemoryOptions {
	return memory.New(nil).GetOptions()
}

// GetWASM 获取WASM执行引擎配置
func (p *Provider) GetWASM() *wasm.WASMOptions {
	var userEngineConfig *types.UserEngineConfig
	if p.appConfig != nil {
		userEngineConfig = p.appConfig.Engine
	}
	return wasm.New(userEngineConfig).GetOptions()
}

// GetEvent 获取事件总线配置
func (p *Provider) GetEvent() *event.EventOptions {
	var userEventConfig *types.UserEventConfig
	if p.appConfig != nil {
		userEventConfig = p.appConfig.Event
	}
	return event.New(userEventConfig).GetOptions()
}

func (p *Provider) dataDir() string {
	if p.appConfig == nil || p.appConfig.DataDir == nil || *p.appConfig.DataDir == "" {
		return ""
	}
	return utils.ResolveDataPath(*p.appConfig.DataDir)
}
