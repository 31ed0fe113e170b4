package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	config "github.com/weisyn/hellocontract/internal/config"
	"github.com/weisyn/hellocontract/internal/core/engines/wasm"
	"github.com/weisyn/hellocontract/internal/core/host"
	"github.com/weisyn/hellocontract/internal/core/infrastructure/event"
	log "github.com/weisyn/hellocontract/internal/core/infrastructure/log"
	"github.com/weisyn/hellocontract/internal/core/infrastructure/storage"
	configiface "github.com/weisyn/hellocontract/pkg/interfaces/config"
	eventiface "github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/event"
)

// Framework layers
const (
	// 基础设施层
	LayerInfrastructure = "infrastructure"
	// 业务逻辑层
	LayerBusiness = "business"
)

// startTimeout 启动超时
const startTimeout = 30 * time.Second

// Bootstrap 应用引导程序
type Bootstrap struct {
	opts  *options
	fxApp *fx.App

	registry *host.ContractRegistry
	executor *host.Executor
	events   eventiface.EventBus
}

// NewBootstrap 创建引导程序
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{
		opts: opts,
	}
}

// SetupInfrastructureLayer 设置基础设施层模块
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		fx.Provide(func() configiface.AppOptions { return b.opts }),
		config.Module(),  // 1. 配置(不依赖其他)
		log.Module(),     // 2. 日志(依赖配置)
		storage.Module(), // 3. 存储(依赖配置和日志)
		event.Module(),   // 4. 事件总线(依赖配置和日志)
	}
}

// SetupBusinessLayer 设置业务逻辑层模块
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	modules := []fx.Option{
		wasm.Module(), // WASM 执行引擎
		host.Module(), // 合约宿主(依赖存储与引擎)
	}
	if b.opts.registerer != nil {
		reg := b.opts.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}
	return modules
}

// SetupModules 设置所有应用模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var allModules []fx.Option
	allModules = append(allModules, b.SetupInfrastructureLayer()...)
	allModules = append(allModules, b.SetupBusinessLayer()...)
	return allModules
}

// CreateFxApp 创建并配置fx应用
func (b *Bootstrap) CreateFxApp() error {
	if err := b.opts.resolve(config.LoadAppConfig, config.ParseAppConfig); err != nil {
		return err
	}

	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),

		// 禁用fx内部日志
		fx.NopLogger,

		fx.Populate(&b.registry, &b.executor, &b.events),
	)
	return b.fxApp.Err()
}

// StartApp 启动应用程序
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用程序
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// BootstrapApp 执行完整的引导过程并返回应用实例
func BootstrapApp(options ...Option) (App, error) {
	bootstrap := NewBootstrap(newOptions(options...))

	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, fmt.Errorf("创建应用失败: %w", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := bootstrap.StartApp(startupCtx); err != nil {
		return nil, err
	}

	return &internalApp{bootstrap: bootstrap}, nil
}
