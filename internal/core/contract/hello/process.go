package hello

import (
	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

// GreetingMessage Hello 指令处理时写入的诊断消息
const GreetingMessage = "gm world"

func processInstruction(env contract.Env, cid types.ContractID, payload []byte) error {
	calls, call, err := abi.DecodeSelectedCall(payload)
	if err != nil {
		return err
	}
	fn, err := FunctionFromByte(call.Selector)
	if err != nil {
		return err
	}

	var update types.StateUpdate
	switch fn {
	case Hello:
		update, err = helloProcess(env, cid, calls)
	}
	if err != nil {
		return err
	}
	return writeReturn(env, abi.EncodeStateUpdate(update))
}

func helloProcess(env contract.Env, _ types.ContractID, _ types.CallList) (types.StateUpdate, error) {
	env.Msg(GreetingMessage)
	return types.StateUpdate{Tag: uint8(Hello)}, nil
}
