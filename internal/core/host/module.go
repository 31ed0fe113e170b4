// Package host 实现合约宿主：入口调用环境、合约数据库、部署注册表与交易执行器
package host

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/internal/core/contract/hello"
	infralog "github.com/weisyn/hellocontract/internal/core/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/storage"
)

// NativeHello 原生 Hello 合约的登记名称
const NativeHello = "hello"

// ModuleParams 定义宿主模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Store     storage.BadgerStore
	Logger    log.Logger

	Loader        CodeLoader            `optional:"true"` // WASM 执行引擎
	ProofVerifier ProofVerifier         `optional:"true"` // zk 证明系统
	Registerer    prometheus.Registerer `optional:"true"` // 指标注册表
	EventBus      event.EventBus        `optional:"true"` // 部署与交易事件
}

// ModuleOutput 定义宿主模块的输出结构
type ModuleOutput struct {
	fx.Out

	Dispatcher *abi.Dispatcher
	Registry   *ContractRegistry
	Executor   *Executor
	Metrics    *Metrics
}

// Module 返回宿主模块
func Module() fx.Option {
	return fx.Module("host",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 组装分发器、注册表与执行器，启动时恢复已部署合约
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger := infralog.NewModuleLogger(params.Logger, infralog.ModuleHost)

	metrics, err := NewMetrics(params.Registerer)
	if err != nil {
		return ModuleOutput{}, err
	}

	dispatcher := abi.NewDispatcher(abi.NewRegistry(), logger)
	registry := NewContractRegistry(dispatcher, params.Store, params.Loader, params.Logger, metrics)
	registry.RegisterNative(NativeHello, func() contract.Contract { return hello.New() })

	executor := NewExecutor(
		dispatcher,
		params.Store,
		NewVerifier(params.ProofVerifier),
		metrics,
		params.Logger,
	)

	registry.SetEventBus(params.EventBus)
	executor.SetEventBus(params.EventBus)

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			n, err := registry.Restore(ctx)
			if err != nil {
				return err
			}
			logger.Infof("已恢复 %d 个已部署合约", n)
			return nil
		},
	})

	return ModuleOutput{
		Dispatcher: dispatcher,
		Registry:   registry,
		Executor:   executor,
		Metrics:    metrics,
	}, nil
}
