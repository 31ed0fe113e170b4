package abi

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/weisyn/hellocontract/pkg/types"
)

// zk 公开输入组的最小编码长度：电路名长度前缀 + 输入数量前缀
const minZkGroupSize = 2

// EncodeMetadata 编码元数据
//
//	varint n | n × (varstring circuit | varint m | m × fr)
//	varint k | k × pubkey
func EncodeMetadata(m types.Metadata) ([]byte, error) {
	enc := NewEncoder()
	enc.WriteVarInt(uint64(len(m.ZkPublicInputs)))
	for i := range m.ZkPublicInputs {
		zk := &m.ZkPublicInputs[i]
		enc.WriteVarString(zk.Circuit)
		enc.WriteVarInt(uint64(len(zk.Inputs)))
		for j := range zk.Inputs {
			enc.WriteFieldElement(&zk.Inputs[j])
		}
	}
	enc.WriteVarInt(uint64(len(m.SignaturePubKeys)))
	for _, pk := range m.SignaturePubKeys {
		enc.WritePubKey(pk)
	}
	b, err := enc.Bytes()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// DecodeMetadata 精确解码元数据
func DecodeMetadata(b []byte) (types.Metadata, error) {
	var m types.Metadata
	if err := checkSize(b); err != nil {
		return m, err
	}

	dec := NewDecoder(b)
	n, err := dec.ReadCount("zk_public_inputs", minZkGroupSize)
	if err != nil {
		return m, err
	}
	zks := make([]types.ZkPublicInput, 0, n)
	for i := 0; i < n; i++ {
		circuit, err := dec.ReadVarString("circuit")
		if err != nil {
			return m, err
		}
		cnt, err := dec.ReadCount("public_inputs", FieldElementSize)
		if err != nil {
			return m, err
		}
		inputs := make([]fr.Element, cnt)
		for j := range inputs {
			if inputs[j], err = dec.ReadFieldElement("public_input"); err != nil {
				return m, err
			}
		}
		zks = append(zks, types.ZkPublicInput{Circuit: circuit, Inputs: inputs})
	}

	k, err := dec.ReadCount("signature_pubkeys", PubKeySize)
	if err != nil {
		return m, err
	}
	pks := make([]*secp256k1.PublicKey, 0, k)
	for i := 0; i < k; i++ {
		pk, err := dec.ReadPubKey("signature_pubkey")
		if err != nil {
			return m, err
		}
		pks = append(pks, pk)
	}
	if err := dec.Finish(); err != nil {
		return m, err
	}

	m.ZkPublicInputs = zks
	m.SignaturePubKeys = pks
	return m, nil
}
