package wasm

import (
	"context"

	"go.uber.org/fx"

	wasmconfig "github.com/weisyn/hellocontract/internal/config/engine/wasm"
	"github.com/weisyn/hellocontract/internal/core/host"
	infralog "github.com/weisyn/hellocontract/internal/core/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/storage"
)

// ModuleParams WASM 引擎模块的输入依赖
type ModuleParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Config      *wasmconfig.Config
	MemoryStore storage.MemoryStore `optional:"true"` // 编译标记缓存
	Logger      log.Logger          `optional:"true"`
}

// ModuleOutput WASM 引擎模块的输出服务
type ModuleOutput struct {
	fx.Out

	Engine *Engine
	Loader host.CodeLoader
}

// Module WASM 引擎 fx 模块
func Module() fx.Option {
	return fx.Module("engine-wasm",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建运行时与引擎，应用停止时关闭运行时
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger := infralog.NewModuleLogger(params.Logger, infralog.ModuleEngine)

	runtime, err := NewRuntime(context.Background(), params.Config, params.MemoryStore, logger)
	if err != nil {
		return ModuleOutput{}, err
	}
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("正在关闭WASM运行时...")
			return runtime.Close(ctx)
		},
	})

	engine := NewEngine(runtime, logger)
	return ModuleOutput{Engine: engine, Loader: engine}, nil
}
