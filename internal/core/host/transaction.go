package host

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"golang.org/x/crypto/blake2b"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/types"
)

// SigHashSize 交易签名哈希长度
const SigHashSize = blake2b.Size256

// Call 交易内的一次合约调用
type Call struct {
	ContractID types.ContractID
	Selector   uint8
	Payload    []byte
}

// Proof 一份 zk 证明，按顺序对应元数据中的公开输入组
type Proof struct {
	Circuit string
	Data    []byte
}

// Transaction 一笔待执行交易
//
// Signatures[i] / Proofs[i] 对应 Calls[i]，数量必须与该调用元数据声明的一致。
type Transaction struct {
	Calls      []Call
	Signatures [][]*schnorr.Signature
	Proofs     [][]Proof
}

// CallList 构造第 idx 个调用的 (call_idx, calls) 载荷
func (tx *Transaction) CallList(idx int) types.CallList {
	calls := make([]types.ContractCall, len(tx.Calls))
	for i, c := range tx.Calls {
		calls[i] = types.NewContractCall(c.Selector, c.Payload)
	}
	return types.CallList{CallIdx: uint32(idx), Calls: calls}
}

func encodeCalls(enc *abi.Encoder, calls []Call) {
	enc.WriteVarInt(uint64(len(calls)))
	for _, c := range calls {
		enc.WriteRaw(c.ContractID[:])
		enc.WriteU8(c.Selector)
		enc.WriteVarBytes(c.Payload)
	}
}

// SigHash 签名哈希：blake2b-256(calls)
func (tx *Transaction) SigHash() ([]byte, error) {
	enc := abi.NewEncoder()
	encodeCalls(enc, tx.Calls)
	b, err := enc.Bytes()
	if err != nil {
		return nil, err
	}
	h := blake2b.Sum256(b)
	return h[:], nil
}

// Sign 用给定私钥为第 idx 个调用追加签名
func (tx *Transaction) Sign(idx int, keys ...*secp256k1.PrivateKey) error {
	if idx < 0 || idx >= len(tx.Calls) {
		return abi.NewError(abi.IndexOutOfRange, "调用索引越界: %d", idx)
	}
	hash, err := tx.SigHash()
	if err != nil {
		return err
	}
	for len(tx.Signatures) < len(tx.Calls) {
		tx.Signatures = append(tx.Signatures, nil)
	}
	for _, k := range keys {
		sig, err := schnorr.Sign(k, hash)
		if err != nil {
			return abi.WrapError(abi.Internal, err, "签名失败")
		}
		tx.Signatures[idx] = append(tx.Signatures[idx], sig)
	}
	return nil
}

// EncodeTransaction 序列化交易
//
//	calls || VarInt(n) || n × (VarInt(k) || k × sig(64)) || VarInt(n) || n × (VarInt(m) || m × (circuit || proof))
func EncodeTransaction(tx *Transaction) ([]byte, error) {
	enc := abi.NewEncoder()
	encodeCalls(enc, tx.Calls)
	enc.WriteVarInt(uint64(len(tx.Signatures)))
	for _, sigs := range tx.Signatures {
		enc.WriteVarInt(uint64(len(sigs)))
		for _, sig := range sigs {
			if sig == nil {
				return nil, abi.NewError(abi.Internal, "签名为空")
			}
			enc.WriteRaw(sig.Serialize())
		}
	}
	enc.WriteVarInt(uint64(len(tx.Proofs)))
	for _, proofs := range tx.Proofs {
		enc.WriteVarInt(uint64(len(proofs)))
		for _, p := range proofs {
			enc.WriteVarString(p.Circuit)
			enc.WriteVarBytes(p.Data)
		}
	}
	return enc.Bytes()
}

// DecodeTransaction 反序列化交易，要求精确消费全部字节；签名组与证明组都不能多于调用
func DecodeTransaction(b []byte) (*Transaction, error) {
	dec := abi.NewDecoder(b)
	tx := &Transaction{}

	n, err := dec.ReadCount("calls", types.ContractIDLength+2)
	if err != nil {
		return nil, err
	}
	tx.Calls = make([]Call, n)
	for i := range tx.Calls {
		raw, err := dec.ReadRaw("contract_id", types.ContractIDLength)
		if err != nil {
			return nil, err
		}
		copy(tx.Calls[i].ContractID[:], raw)
		if tx.Calls[i].Selector, err = dec.ReadU8("selector"); err != nil {
			return nil, err
		}
		if tx.Calls[i].Payload, err = dec.ReadVarBytes("payload"); err != nil {
			return nil, err
		}
	}

	n, err = dec.ReadCount("signatures", 1)
	if err != nil {
		return nil, err
	}
	if n > len(tx.Calls) {
		return nil, abi.NewError(abi.Malformed, "签名组数量超过调用数量: %d > %d", n, len(tx.Calls))
	}
	tx.Signatures = make([][]*schnorr.Signature, n)
	for i := range tx.Signatures {
		k, err := dec.ReadCount("signature", schnorr.SignatureSize)
		if err != nil {
			return nil, err
		}
		sigs := make([]*schnorr.Signature, k)
		for j := range sigs {
			raw, err := dec.ReadRaw("signature", schnorr.SignatureSize)
			if err != nil {
				return nil, err
			}
			if sigs[j], err = schnorr.ParseSignature(raw); err != nil {
				return nil, abi.WrapError(abi.Malformed, err, "签名格式无效")
			}
		}
		tx.Signatures[i] = sigs
	}

	n, err = dec.ReadCount("proofs", 1)
	if err != nil {
		return nil, err
	}
	if n > len(tx.Calls) {
		return nil, abi.NewError(abi.Malformed, "证明组数量超过调用数量: %d > %d", n, len(tx.Calls))
	}
	tx.Proofs = make([][]Proof, n)
	for i := range tx.Proofs {
		m, err := dec.ReadCount("proof", 2)
		if err != nil {
			return nil, err
		}
		proofs := make([]Proof, m)
		for j := range proofs {
			if proofs[j].Circuit, err = dec.ReadVarString("circuit"); err != nil {
				return nil, err
			}
			if proofs[j].Data, err = dec.ReadVarBytes("proof"); err != nil {
				return nil, err
			}
		}
		tx.Proofs[i] = proofs
	}

	if err := dec.Finish(); err != nil {
		return nil, err
	}
	return tx, nil
}
