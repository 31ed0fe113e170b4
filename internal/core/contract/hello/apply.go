package hello

import (
	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

func processUpdate(env contract.Env, cid types.ContractID, payload []byte) error {
	update, err := abi.DecodeStateUpdate(payload)
	if err != nil {
		return err
	}
	fn, err := FunctionFromByte(update.Tag)
	if err != nil {
		return err
	}

	switch fn {
	case Hello:
		return helloApply(env, cid, update.Payload)
	}
	return nil
}

// helloApply Hello 不修改状态，但载荷必须为空
func helloApply(_ contract.Env, _ types.ContractID, payload []byte) error {
	if len(payload) != 0 {
		return abi.NewError(abi.Malformed, "Hello 状态更新不应携带载荷: %d 字节", len(payload))
	}
	return nil
}
