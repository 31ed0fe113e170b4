package host

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/pkg/types"
)

func newKey(t *testing.T) *secp256k1.PrivateKey {
	t.Helper()
	k, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	return k
}

func TestTransactionCallList(t *testing.T) {
	tx := &Transaction{Calls: []Call{
		{ContractID: testCID(1), Selector: 0x00},
		{ContractID: testCID(2), Selector: 0x07, Payload: []byte{1, 2}},
	}}
	l := tx.CallList(1)
	assert.Equal(t, uint32(1), l.CallIdx)
	require.Len(t, l.Calls, 2)
	assert.True(t, l.Calls[1].Equal(types.NewContractCall(0x07, []byte{1, 2})))
}

func TestSigHashCoversCalls(t *testing.T) {
	tx := &Transaction{Calls: []Call{{ContractID: testCID(1), Payload: []byte("a")}}}
	h1, err := tx.SigHash()
	require.NoError(t, err)
	assert.Len(t, h1, SigHashSize)

	again, err := tx.SigHash()
	require.NoError(t, err)
	assert.Equal(t, h1, again)

	tx.Calls[0].Payload = []byte("b")
	h2, err := tx.SigHash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	// 签名与证明不参与哈希
	require.NoError(t, tx.Sign(0, newKey(t)))
	h3, err := tx.SigHash()
	require.NoError(t, err)
	assert.Equal(t, h2, h3)
}

func TestTransactionSign(t *testing.T) {
	tx := &Transaction{Calls: []Call{{ContractID: testCID(1)}, {ContractID: testCID(2)}}}
	k1, k2 := newKey(t), newKey(t)
	require.NoError(t, tx.Sign(1, k1, k2))
	require.Len(t, tx.Signatures, 2)
	assert.Empty(t, tx.Signatures[0])
	require.Len(t, tx.Signatures[1], 2)

	hash, err := tx.SigHash()
	require.NoError(t, err)
	assert.True(t, tx.Signatures[1][0].Verify(hash, k1.PubKey()))
	assert.True(t, tx.Signatures[1][1].Verify(hash, k2.PubKey()))

	assert.ErrorIs(t, tx.Sign(2, k1), abi.ErrIndexOutOfRange)
}

func TestTransactionEncoding(t *testing.T) {
	tx := &Transaction{
		Calls: []Call{
			{ContractID: testCID(1), Selector: 0x00, Payload: []byte{}},
			{ContractID: testCID(2), Selector: 0x01, Payload: []byte("payload")},
		},
		Proofs: [][]Proof{nil, {{Circuit: "mint", Data: []byte{9, 9}}}},
	}
	require.NoError(t, tx.Sign(1, newKey(t)))

	b, err := EncodeTransaction(tx)
	require.NoError(t, err)

	got, err := DecodeTransaction(b)
	require.NoError(t, err)
	require.Len(t, got.Calls, 2)
	assert.Equal(t, tx.Calls[1], got.Calls[1])
	assert.Equal(t, tx.Calls[0].ContractID, got.Calls[0].ContractID)
	require.Len(t, got.Signatures, 2)
	require.Len(t, got.Signatures[1], 1)
	assert.True(t, got.Signatures[1][0].IsEqual(tx.Signatures[1][0]))
	require.Len(t, got.Proofs, 2)
	assert.Equal(t, tx.Proofs[1], got.Proofs[1])

	reencoded, err := EncodeTransaction(got)
	require.NoError(t, err)
	assert.Equal(t, b, reencoded)
}

func TestDecodeTransactionMalformed(t *testing.T) {
	tx := &Transaction{Calls: []Call{{ContractID: testCID(1)}}}
	b, err := EncodeTransaction(tx)
	require.NoError(t, err)

	cases := map[string][]byte{
		"空输入":   {},
		"截断":    b[:10],
		"多余字节":  append(append([]byte{}, b...), 0x00),
		"调用数过大": {0xfd, 0xff, 0xff},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTransaction(input)
			assert.ErrorIs(t, err, abi.ErrMalformed)
		})
	}
}

func TestDecodeTransactionRejectsSurplusGroups(t *testing.T) {
	calls := []Call{{ContractID: testCID(1)}}
	for name, tx := range map[string]*Transaction{
		"签名组多于调用": {Calls: calls, Signatures: [][]*schnorr.Signature{nil, nil}},
		"证明组多于调用": {Calls: calls, Proofs: [][]Proof{nil, {{Circuit: "mint", Data: []byte{1}}}}},
	} {
		t.Run(name, func(t *testing.T) {
			b, err := EncodeTransaction(tx)
			require.NoError(t, err)
			_, err = DecodeTransaction(b)
			assert.ErrorIs(t, err, abi.ErrMalformed)
		})
	}

	b, err := EncodeTransaction(&Transaction{Calls: calls, Signatures: [][]*schnorr.Signature{nil}, Proofs: [][]Proof{nil}})
	require.NoError(t, err)
	_, err = DecodeTransaction(b)
	assert.NoError(t, err)
}
