package abi

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/hellocontract/pkg/types"
)

func newPubKey(t *testing.T) *secp256k1.PublicKey {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return priv.PubKey()
}

func TestMetadataRoundTrip(t *testing.T) {
	var a, b fr.Element
	a.SetUint64(42)
	b.SetString("21888242871839275222246405745257275088548364400416034343698204186575808495616")

	cases := []struct {
		name string
		meta types.Metadata
	}{
		{"空元数据", types.Metadata{}},
		{"zk公开输入", types.Metadata{ZkPublicInputs: []types.ZkPublicInput{
			{Circuit: "Mint_V1", Inputs: []fr.Element{a, b}},
			{Circuit: "空电路"},
		}}},
		{"签名公钥", types.Metadata{SignaturePubKeys: []*secp256k1.PublicKey{newPubKey(t), newPubKey(t)}}},
		{"混合", types.Metadata{
			ZkPublicInputs:   []types.ZkPublicInput{{Circuit: "Burn_V1", Inputs: []fr.Element{a}}},
			SignaturePubKeys: []*secp256k1.PublicKey{newPubKey(t)},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := EncodeMetadata(tc.meta)
			require.NoError(t, err)
			decoded, err := DecodeMetadata(raw)
			require.NoError(t, err)
			assert.True(t, tc.meta.Equal(decoded))
		})
	}
}

func TestEmptyMetadataEncoding(t *testing.T) {
	raw, err := EncodeMetadata(types.Metadata{})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00}, raw)
}

func TestEncodeMetadataNilPubKey(t *testing.T) {
	_, err := EncodeMetadata(types.Metadata{SignaturePubKeys: []*secp256k1.PublicKey{nil}})
	assert.Equal(t, Internal, CodeOf(err))
}

func TestDecodeMetadataMalformed(t *testing.T) {
	nonCanonical := []byte{0x01, 0x01, 'c', 0x01}
	for i := 0; i < FieldElementSize; i++ {
		nonCanonical = append(nonCanonical, 0xff)
	}
	nonCanonical = append(nonCanonical, 0x00)

	badKey := append([]byte{0x00, 0x01, 0x05}, make([]byte, PubKeySize-1)...)

	cases := []struct {
		name  string
		input []byte
	}{
		{"空输入", nil},
		{"缺少公钥段", []byte{0x00}},
		{"多余字节", []byte{0x00, 0x00, 0x00}},
		{"域元素非规范", nonCanonical},
		{"公钥前缀无效", badKey},
		{"电路名非UTF-8", []byte{0x01, 0x01, 0xff, 0x00, 0x00}},
		{"公钥数量超出载荷", []byte{0x00, 0x02, 0x02}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeMetadata(tc.input)
			assert.Equal(t, Malformed, CodeOf(err), "got %v", err)
		})
	}
}
