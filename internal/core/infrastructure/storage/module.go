// Package storage 提供存储管理功能
package storage

import (
	"context"

	"go.uber.org/fx"

	badgerconfig "github.com/weisyn/hellocontract/internal/config/storage/badger"
	memoryconfig "github.com/weisyn/hellocontract/internal/config/storage/memory"
	infralog "github.com/weisyn/hellocontract/internal/core/infrastructure/log"
	"github.com/weisyn/hellocontract/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/hellocontract/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/storage"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Lifecycle    fx.Lifecycle
	BadgerConfig *badgerconfig.Config
	MemoryConfig *memoryconfig.Config
	Logger       log.Logger
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	BadgerStore storageInterface.BadgerStore // 合约数据库底层存储
	MemoryStore storageInterface.MemoryStore // 编译标记缓存
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),
	)
}

// ProvideServices 打开存储并在应用停止时关闭
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger := infralog.NewModuleLogger(params.Logger, infralog.ModuleStorage)

	badgerStore, err := badger.New(params.BadgerConfig, logger)
	if err != nil {
		return ModuleOutput{}, err
	}
	memoryStore, err := memory.New(params.MemoryConfig, logger)
	if err != nil {
		_ = badgerStore.Close()
		return ModuleOutput{}, err
	}

	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("正在关闭存储服务...")
			if err := memoryStore.Close(); err != nil {
				logger.Warnf("关闭内存缓存失败: %v", err)
			}
			return badgerStore.Close()
		},
	})

	return ModuleOutput{
		BadgerStore: badgerStore,
		MemoryStore: memoryStore,
	}, nil
}
