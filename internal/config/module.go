// Package config 提供应用配置管理功能
package config

import (
	"go.uber.org/fx"

	wasmconfig "github.com/weisyn/hellocontract/internal/config/engine/wasm"
	eventconfig "github.com/weisyn/hellocontract/internal/config/event"
	badgerconfig "github.com/weisyn/hellocontract/internal/config/storage/badger"
	memoryconfig "github.com/weisyn/hellocontract/internal/config/storage/memory"
	"github.com/weisyn/hellocontract/pkg/interfaces/config"
	"github.com/weisyn/hellocontract/pkg/types"
)

// ConfigParams 定义配置模块的依赖参数
type ConfigParams struct {
	fx.In

	// 应用配置选项
	AppOptions config.AppOptions `optional:"true"`
}

// ConfigOutput 定义配置模块的输出结构
type ConfigOutput struct {
	fx.Out

	// 配置提供者
	Provider config.Provider
}

// Module 返回配置模块
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			ProvideConfigServices,
			func(provider config.Provider) *badgerconfig.Config {
				return badgerconfig.NewFromOptions(provider.GetBadger())
			},
			func(provider config.Provider) *memoryconfig.Config {
				return memoryconfig.NewFromOptions(provider.GetMemory())
			},
			func(provider config.Provider) *wasmconfig.Config {
				return wasmconfig.NewFromOptions(provider.GetWASM())
			},
			func(provider config.Provider) *eventconfig.Config {
				return eventconfig.NewFromOptions(provider.GetEvent())
			},
		),
	)
}

// ProvideConfigServices 提供配置服务
func ProvideConfigServices(params ConfigParams) (ConfigOutput, error) {
	var appConfig *types.AppConfig
	if params.AppOptions != nil {
		appConfig = params.AppOptions.GetAppConfig()
	}
	return ConfigOutput{Provider: NewProvider(appConfig)}, nil
}
