package wasm

import "time"

// WASM 执行引擎默认配置值
const (
	// defaultUseCompiler 默认使用编译器模式
	defaultUseCompiler = true

	// defaultMaxMemoryPages 合约内存上限 16MB（256 页 × 64KB）
	defaultMaxMemoryPages = 256

	// defaultCallTimeout 单次入口调用超时
	defaultCallTimeout = 5 * time.Second

	// defaultCompileCacheTTL 编译标记缓存时长
	defaultCompileCacheTTL = time.Hour
)
