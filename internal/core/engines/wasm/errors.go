package wasm

import (
	"errors"
	"fmt"
)

// 引擎错误定义
//
// 加载阶段的错误在注册表层被包装为 Internal；执行期错误码由合约自己返回。
var (
	errCompileFailed     = errors.New("WASM合约编译失败")
	errInstantiateFailed = errors.New("WASM合约实例化失败")
	errMissingExport     = errors.New("WASM合约缺少必需的导出")
	errMemoryAccess      = errors.New("WASM内存访问越界")
)

var (
	// ErrCompileFailed 编译失败
	ErrCompileFailed = fmt.Errorf("引擎编译错误: %w", errCompileFailed)

	// ErrInstantiateFailed 实例化失败
	ErrInstantiateFailed = fmt.Errorf("引擎实例化错误: %w", errInstantiateFailed)

	// ErrMissingExport 缺少导出
	ErrMissingExport = fmt.Errorf("引擎导出检查错误: %w", errMissingExport)

	// ErrMemoryAccess 内存访问越界
	ErrMemoryAccess = fmt.Errorf("引擎内存错误: %w", errMemoryAccess)
)

// 合约导出名称
const (
	ExportMemory     = "memory"
	ExportAlloc      = "alloc"
	ExportInitialize = "__initialize"
	ExportMetadata   = "__metadata"
	ExportEntrypoint = "__entrypoint"
	ExportUpdate     = "__update"
)

// HostModule 宿主函数所在的导入模块名
const HostModule = "env"
