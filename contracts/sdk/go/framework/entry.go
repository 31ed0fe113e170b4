package framework

import (
	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

// Run 执行一次入口调用：解析 cid || payload，按 kind 路由到合约，返回错误码
//
// 导出函数直接返回 Run 的结果即可。
func Run(c contract.Contract, kind types.EntrypointKind, ptr uint32, size uint32) int64 {
	defer Release()

	env := NewEnv()
	input := Bytes(ptr, size)
	if len(input) < types.ContractIDLength {
		err := abi.NewError(abi.Malformed, "入口输入过短: %d", len(input))
		env.Msg(err.Error())
		return int64(abi.Malformed)
	}
	var cid types.ContractID
	copy(cid[:], input[:types.ContractIDLength])
	payload := append([]byte{}, input[types.ContractIDLength:]...)

	return int64(abi.CodeOf(abi.Route(env, c, kind, cid, payload)))
}
