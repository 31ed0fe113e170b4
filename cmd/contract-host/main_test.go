package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/hellocontract/internal/core/host"
	"github.com/weisyn/hellocontract/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCall(t *testing.T) {
	var cid types.ContractID
	cid[0] = 7

	c, err := parseCall(cid.String() + ":0x00:deadbeef")
	require.NoError(t, err)
	assert.Equal(t, cid, c.ContractID)
	assert.Equal(t, uint8(0), c.Selector)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, c.Payload)

	c, err = parseCall(cid.String() + ":3")
	require.NoError(t, err)
	assert.Equal(t, uint8(3), c.Selector)
	assert.Empty(t, c.Payload)

	for _, bad := range []string{
		cid.String(),
		cid.String() + ":256",
		cid.String() + ":0:zz",
		"not-base58:0",
		cid.String() + ":0:00:00",
	} {
		_, err := parseCall(bad)
		assert.Error(t, err, bad)
	}
}

func TestBuildTransactionSigns(t *testing.T) {
	key, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	var cid types.ContractID
	cid[1] = 9

	tx, err := buildTransaction(
		[]string{cid.String() + ":0", cid.String() + ":0:01"},
		[]string{"1:" + hex.EncodeToString(key.Serialize())},
	)
	require.NoError(t, err)
	require.Len(t, tx.Calls, 2)
	require.Len(t, tx.Signatures, 2)
	assert.Empty(t, tx.Signatures[0])
	require.Len(t, tx.Signatures[1], 1)

	hash, err := tx.SigHash()
	require.NoError(t, err)
	assert.True(t, tx.Signatures[1][0].Verify(hash, key.PubKey()))

	_, err = buildTransaction(nil, nil)
	assert.Error(t, err)
	_, err = buildTransaction([]string{cid.String() + ":0"}, []string{"5:" + hex.EncodeToString(key.Serialize())})
	assert.Error(t, err)
}

func TestEncodeCallList(t *testing.T) {
	out, err := execute(t, "encode", "calllist", "--idx", "0", "--call", "0x00")
	require.NoError(t, err)
	assert.Equal(t, "00000000010000\n", out)

	_, err = execute(t, "encode", "calllist", "--idx", "2", "--call", "0x00")
	assert.Error(t, err)
}

func TestEncodeTxRoundTrip(t *testing.T) {
	var cid types.ContractID
	cid[2] = 1
	out, err := execute(t, "encode", "tx", "--call", cid.String()+":0:aa")
	require.NoError(t, err)

	raw, err := parseHex(string(bytes.TrimSpace([]byte(out))))
	require.NoError(t, err)
	tx, err := host.DecodeTransaction(raw)
	require.NoError(t, err)
	require.Len(t, tx.Calls, 1)
	assert.Equal(t, cid, tx.Calls[0].ContractID)
	assert.Equal(t, []byte{0xaa}, tx.Calls[0].Payload)
}

func TestKeygen(t *testing.T) {
	out, err := execute(t, "keygen", "--count", "2")
	require.NoError(t, err)

	var keys []keyView
	require.NoError(t, json.Unmarshal([]byte(out), &keys))
	require.Len(t, keys, 2)
	for _, k := range keys {
		raw, err := parseHex(k.PublicKey)
		require.NoError(t, err)
		_, err = secp256k1.ParsePubKey(raw)
		assert.NoError(t, err)
	}
}

func TestRunHello(t *testing.T) {
	out, err := execute(t, "run", "--in-memory", "--count", "2")
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewBufferString(out))
	var deployed deployView
	require.NoError(t, dec.Decode(&deployed))
	assert.Equal(t, host.NativeHello, deployed.Name)

	var receipt receiptView
	require.NoError(t, dec.Decode(&receipt))
	assert.Empty(t, receipt.Error)
	assert.NotEmpty(t, receipt.ExecID)
	require.Len(t, receipt.Updates, 2)
	assert.Equal(t, uint8(0), receipt.Updates[0].Tag)
	assert.Equal(t, []string{"gm world", "gm world"}, receipt.Messages)
}
