package wasm

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

// moduleInstance 单次入口调用的模块实例
type moduleInstance struct {
	mod api.Module
}

// write 通过合约的 alloc 分配内存并写入数据
func (m moduleInstance) write(ctx context.Context, data []byte) (uint32, error) {
	alloc := m.mod.ExportedFunction(ExportAlloc)
	if alloc == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingExport, ExportAlloc)
	}
	res, err := alloc.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, err
	}
	ptr := uint32(res[0])
	if !m.mod.Memory().Write(ptr, data) {
		return 0, fmt.Errorf("%w: ptr=%d len=%d", ErrMemoryAccess, ptr, len(data))
	}
	return ptr, nil
}

func (m moduleInstance) close(ctx context.Context) {
	_ = m.mod.Close(ctx)
}

// Contract 已编译的 WASM 合约
//
// 每次入口调用实例化一个新模块，把 cid || payload 写入其内存后调用对应导出。
// 导出返回 0 表示成功，其余值为错误码。
type Contract struct {
	runtime  *Runtime
	compiled wazero.CompiledModule
	cid      types.ContractID
}

var _ contract.Contract = (*Contract)(nil)

func exportFor(kind types.EntrypointKind) string {
	switch kind {
	case types.EntrypointInit:
		return ExportInitialize
	case types.EntrypointMetadata:
		return ExportMetadata
	case types.EntrypointExec:
		return ExportEntrypoint
	case types.EntrypointApply:
		return ExportUpdate
	default:
		return ""
	}
}

func (c *Contract) call(env contract.Env, kind types.EntrypointKind, cid types.ContractID, payload []byte) error {
	if cid != c.cid {
		return abi.NewError(abi.Internal, "合约标识不匹配: %s != %s", cid, c.cid)
	}
	ctx := env.Context()
	if timeout := c.runtime.CallTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ctx = withEnv(ctx, env)

	inst, err := c.runtime.instantiate(ctx, c.compiled)
	if err != nil {
		return abi.WrapError(abi.Internal, err, "合约实例化失败")
	}
	defer inst.close(context.Background())

	input := make([]byte, 0, types.ContractIDLength+len(payload))
	input = append(input, cid[:]...)
	input = append(input, payload...)
	ptr, err := inst.write(ctx, input)
	if err != nil {
		return abi.WrapError(abi.Internal, err, "写入合约输入失败")
	}

	name := exportFor(kind)
	fn := inst.mod.ExportedFunction(name)
	if fn == nil {
		return abi.WrapError(abi.Internal, fmt.Errorf("%w: %s", ErrMissingExport, name), "合约入口不存在")
	}
	res, err := fn.Call(ctx, uint64(ptr), uint64(len(input)))
	if err != nil {
		return abi.WrapError(abi.Internal, err, "合约执行失败")
	}
	if len(res) != 1 {
		return abi.NewError(abi.Internal, "%s 返回值数量无效: %d", name, len(res))
	}
	return resultError(name, res[0])
}

// resultError 把导出返回值转换为合约错误
func resultError(name string, res uint64) error {
	if res == uint64(abi.Success) {
		return nil
	}
	if res > uint64(abi.Internal) {
		return abi.NewError(abi.Internal, "%s 返回未知错误码 %d", name, res)
	}
	code := abi.ErrorCode(res)
	return abi.NewError(code, "%s 返回 %s", name, code)
}

// Init 部署入口
func (c *Contract) Init(env contract.Env, cid types.ContractID, payload []byte) error {
	return c.call(env, types.EntrypointInit, cid, payload)
}

// Metadata 元数据入口
func (c *Contract) Metadata(env contract.Env, cid types.ContractID, payload []byte) error {
	return c.call(env, types.EntrypointMetadata, cid, payload)
}

// Exec 指令处理入口
func (c *Contract) Exec(env contract.Env, cid types.ContractID, payload []byte) error {
	return c.call(env, types.EntrypointExec, cid, payload)
}

// Apply 状态应用入口
func (c *Contract) Apply(env contract.Env, cid types.ContractID, payload []byte) error {
	return c.call(env, types.EntrypointApply, cid, payload)
}
