//go:build !tinygo && !wasip1

package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/internal/core/contract/hello"
	"github.com/weisyn/hellocontract/pkg/types"
)

func entryInput(selector uint8) (uint32, uint32) {
	var cid types.ContractID
	cid[31] = 7
	payload := abi.EncodeCallList(types.CallList{
		CallIdx: 0,
		Calls:   []types.ContractCall{types.NewContractCall(selector, nil)},
	})
	return AllocBytes(append(cid[:], payload...))
}

func TestRunHelloExec(t *testing.T) {
	ResetStub()
	ptr, size := entryInput(uint8(hello.Hello))

	res := Run(hello.New(), types.EntrypointExec, ptr, size)
	assert.Equal(t, int64(abi.Success), res)
	assert.Equal(t, []byte{0x00}, Stub.ReturnData)
	assert.Equal(t, []string{hello.GreetingMessage}, Stub.Messages)
	assert.Empty(t, pinned)
}

func TestRunHelloMetadata(t *testing.T) {
	ResetStub()
	ptr, size := entryInput(uint8(hello.Hello))

	res := Run(hello.New(), types.EntrypointMetadata, ptr, size)
	assert.Equal(t, int64(abi.Success), res)
	assert.Equal(t, []byte{0x00, 0x00}, Stub.ReturnData)
}

func TestRunErrorCodes(t *testing.T) {
	ResetStub()
	ptr, size := entryInput(0x05)
	res := Run(hello.New(), types.EntrypointExec, ptr, size)
	assert.Equal(t, int64(abi.UnknownFunction), res)
	assert.False(t, Stub.Returned)
	require.Len(t, Stub.Messages, 1)

	ResetStub()
	ptr, size = AllocBytes([]byte{1, 2, 3})
	res = Run(hello.New(), types.EntrypointExec, ptr, size)
	assert.Equal(t, int64(abi.Malformed), res)
	require.Len(t, Stub.Messages, 1)
}

func TestEnvReturnDataOnce(t *testing.T) {
	ResetStub()
	env := NewEnv()
	require.NoError(t, env.SetReturnData([]byte{1}))
	err := env.SetReturnData([]byte{2})
	assert.ErrorIs(t, err, abi.ErrInternal)
	assert.Equal(t, []byte{1}, Stub.ReturnData)
	Release()
}

func TestStubDatabaseUnavailable(t *testing.T) {
	db := NewEnv().DB()
	var cid types.ContractID
	_, err := db.Lookup(cid, hello.InfoTree)
	assert.ErrorIs(t, err, abi.ErrInternal)
	_, err = db.Get(0, []byte("k"))
	assert.ErrorIs(t, err, abi.ErrInternal)
	assert.ErrorIs(t, db.Set(0, []byte("k"), []byte("v")), abi.ErrInternal)
	Release()
}

func TestCodeError(t *testing.T) {
	assert.NoError(t, codeError("op", 0))
	assert.NoError(t, codeError("op", 5))
	assert.ErrorIs(t, codeError("op", -1), abi.ErrMalformed)
	assert.ErrorIs(t, codeError("op", -3), abi.ErrUnknownFunction)
	assert.ErrorIs(t, codeError("op", -77), abi.ErrInternal)
}
