package hello

import (
	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

func getMetadata(env contract.Env, cid types.ContractID, payload []byte) error {
	calls, call, err := abi.DecodeSelectedCall(payload)
	if err != nil {
		return err
	}
	fn, err := FunctionFromByte(call.Selector)
	if err != nil {
		return err
	}

	var meta types.Metadata
	switch fn {
	case Hello:
		meta, err = helloMetadata(cid, calls)
	}
	if err != nil {
		return err
	}

	raw, err := abi.EncodeMetadata(meta)
	if err != nil {
		return err
	}
	return writeReturn(env, raw)
}

// helloMetadata Hello 不需要任何 zk 证明或签名
func helloMetadata(_ types.ContractID, _ types.CallList) (types.Metadata, error) {
	return types.Metadata{
		ZkPublicInputs:   []types.ZkPublicInput{},
		SignaturePubKeys: nil,
	}, nil
}

func writeReturn(env contract.Env, data []byte) error {
	if err := env.SetReturnData(data); err != nil {
		return abi.WrapError(abi.Internal, err, "写入返回缓冲区失败")
	}
	return nil
}
