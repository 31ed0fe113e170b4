// Package wasm 提供基于 wazero 的 WASM 合约执行引擎
//
// 合约以 WASM 模块的形式部署，导出 memory、alloc 以及四个入口：
//
//	__initialize / __metadata / __entrypoint / __update : (ptr i32, len i32) -> i64
//
// 入口的输入为 cid(32) || payload。宿主服务通过 env 模块导入。
package wasm

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/internal/core/host"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/types"
)

// Engine 从字节码加载合约
type Engine struct {
	runtime *Runtime
	logger  log.Logger
}

var _ host.CodeLoader = (*Engine)(nil)

// NewEngine 创建引擎
func NewEngine(runtime *Runtime, logger log.Logger) *Engine {
	return &Engine{runtime: runtime, logger: logger}
}

// entrypointExports 入口导出及其签名
var entrypointExports = []string{ExportInitialize, ExportMetadata, ExportEntrypoint, ExportUpdate}

// Load 编译字节码并检查导出
func (e *Engine) Load(ctx context.Context, cid types.ContractID, code []byte) (contract.Contract, error) {
	cm, err := e.runtime.Compile(ctx, code)
	if err != nil {
		return nil, abi.WrapError(abi.Internal, err, "加载合约失败")
	}
	if err := e.verifyExports(ctx, code, cm); err != nil {
		return nil, abi.WrapError(abi.Internal, err, "合约导出不完整")
	}
	if e.logger != nil {
		e.logger.Debugf("WASM合约已加载: contract=%s size=%d", cid, len(code))
	}
	return &Contract{runtime: e.runtime, compiled: cm, cid: cid}, nil
}

// verifyExports 优先使用缓存的检查结论，未命中时检查并记录
func (e *Engine) verifyExports(ctx context.Context, code []byte, cm wazero.CompiledModule) error {
	if verdict, ok := e.runtime.cachedVerdict(ctx, code); ok {
		return verdict
	}
	err := checkExports(cm.ExportedFunctions(), cm.ExportedMemories())
	e.runtime.recordVerdict(ctx, code, err)
	return err
}

func checkExports(funcs map[string]api.FunctionDefinition, memories map[string]api.MemoryDefinition) error {
	if _, ok := memories[ExportMemory]; !ok {
		return fmt.Errorf("%w: %s", ErrMissingExport, ExportMemory)
	}
	alloc, ok := funcs[ExportAlloc]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingExport, ExportAlloc)
	}
	if !signatureIs(alloc, []api.ValueType{api.ValueTypeI32}, []api.ValueType{api.ValueTypeI32}) {
		return fmt.Errorf("%w: %s 签名应为 (i32) -> i32", ErrMissingExport, ExportAlloc)
	}
	for _, name := range entrypointExports {
		def, ok := funcs[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingExport, name)
		}
		if !signatureIs(def, []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, []api.ValueType{api.ValueTypeI64}) {
			return fmt.Errorf("%w: %s 签名应为 (i32, i32) -> i64", ErrMissingExport, name)
		}
	}
	return nil
}

func signatureIs(def api.FunctionDefinition, params, results []api.ValueType) bool {
	return equalTypes(def.ParamTypes(), params) && equalTypes(def.ResultTypes(), results)
}

func equalTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
