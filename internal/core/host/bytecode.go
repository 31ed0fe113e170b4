package host

import (
	"github.com/golang/snappy"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/types"
)

// ContractKind 部署记录中的合约类型
type ContractKind uint8

const (
	// KindNative 进程内注册的原生合约，按名称恢复
	KindNative ContractKind = iota
	// KindWASM 由执行引擎从字节码加载
	KindWASM
)

// String 返回类型名称
func (k ContractKind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindWASM:
		return "wasm"
	default:
		return "unknown"
	}
}

// DeployRecord 合约部署记录
type DeployRecord struct {
	Kind ContractKind
	Name string
	Code []byte
}

func contractKey(cid types.ContractID) []byte {
	k := make([]byte, 0, len(contractPrefix)+types.ContractIDLength)
	k = append(k, contractPrefix...)
	return append(k, cid[:]...)
}

// encodeRecord kind(u8) || name || snappy(code)
func encodeRecord(rec DeployRecord) ([]byte, error) {
	enc := abi.NewEncoder()
	enc.WriteU8(uint8(rec.Kind))
	enc.WriteVarString(rec.Name)
	enc.WriteVarBytes(snappy.Encode(nil, rec.Code))
	return enc.Bytes()
}

func decodeRecord(b []byte) (DeployRecord, error) {
	var rec DeployRecord
	dec := abi.NewDecoder(b)
	kind, err := dec.ReadU8("kind")
	if err != nil {
		return rec, err
	}
	if ContractKind(kind) > KindWASM {
		return rec, abi.NewError(abi.Malformed, "未知合约类型: %d", kind)
	}
	rec.Kind = ContractKind(kind)
	if rec.Name, err = dec.ReadVarString("name"); err != nil {
		return rec, err
	}
	compressed, err := dec.ReadVarBytes("code")
	if err != nil {
		return rec, err
	}
	if err := dec.Finish(); err != nil {
		return rec, err
	}
	if rec.Code, err = snappy.Decode(nil, compressed); err != nil {
		return rec, abi.WrapError(abi.Malformed, err, "字节码解压失败")
	}
	return rec, nil
}
