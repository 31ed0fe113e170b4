// Package app 组装合约宿主应用：配置、日志、存储、WASM 引擎与宿主模块
package app

import (
	"context"
	"time"

	"github.com/weisyn/hellocontract/internal/core/host"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/event"
)

// stopTimeout 停止超时，留给数据库完成同步和关闭
const stopTimeout = 30 * time.Second

// App 是合约宿主应用的对外接口
type App interface {
	// Registry 合约部署注册表
	Registry() *host.ContractRegistry

	// Executor 交易执行器
	Executor() *host.Executor

	// Events 部署与交易事件总线
	Events() event.EventBus

	// Stop 停止应用
	Stop() error
}

// internalApp 应用的内部实现
type internalApp struct {
	bootstrap *Bootstrap
}

func (a *internalApp) Registry() *host.ContractRegistry {
	return a.bootstrap.registry
}

func (a *internalApp) Executor() *host.Executor {
	return a.bootstrap.executor
}

func (a *internalApp) Events() event.EventBus {
	return a.bootstrap.events
}

// Stop 停止应用（包括所有生命周期钩子）
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Start 启动应用
func Start(appOptions ...Option) (App, error) {
	return BootstrapApp(appOptions...)
}
