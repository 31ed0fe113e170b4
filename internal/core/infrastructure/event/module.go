package event

import (
	"context"

	"go.uber.org/fx"

	eventconfig "github.com/weisyn/hellocontract/internal/config/event"
	infralog "github.com/weisyn/hellocontract/internal/core/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
)

// ModuleParams 定义事件模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *eventconfig.Config
	Logger    log.Logger `optional:"true"`
}

// ModuleOutput 定义事件模块的输出结构
type ModuleOutput struct {
	fx.Out

	EventBus event.EventBus
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 创建事件总线，应用停止时等待异步处理器退出
func ProvideServices(params ModuleParams) ModuleOutput {
	bus := New(params.Config, infralog.NewModuleLogger(params.Logger, infralog.ModuleEvent))
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			bus.WaitAsync()
			return nil
		},
	})
	return ModuleOutput{EventBus: bus}
}
