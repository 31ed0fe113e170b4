// Package config provides configuration provider interfaces.
package config

import (
	wasmconfig "github.com/weisyn/hellocontract/internal/config/engine/wasm"
	eventconfig "github.com/weisyn/hellocontract/internal/config/event"
	logconfig "github.com/weisyn/hellocontract/internal/config/log"
	badgerconfig "github.com/weisyn/hellocontract/internal/config/storage/badger"
	memoryconfig "github.com/weisyn/hellocontract/internal/config/storage/memory"
)

// Provider 配置提供者接口
type Provider interface {
	// GetAppName 应用名称
	GetAppName() string

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetBadger 获取合约数据库（BadgerDB）配置
	GetBadger() *badgerconfig.BadgerOptions

	// GetMemory 获取内存缓存配置
	GetMemory() *memoryconfig.MemoryOptions

	// GetWASM 获取 WASM 执行引擎配置
	GetWASM() *wasmconfig.WASMOptions

	// GetEvent 获取事件总线配置
	GetEvent() *eventconfig.EventOptions
}
