package host

import (
	"context"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	badgerconfig "github.com/weisyn/hellocontract/internal/config/storage/badger"
	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	"github.com/weisyn/hellocontract/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

// newTestStore 打开内存 Badger
func newTestStore(t *testing.T) *badger.Store {
	t.Helper()
	store, err := badger.New(badgerconfig.NewInMemory(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testCID(b byte) types.ContractID {
	var cid types.ContractID
	for i := range cid {
		cid[i] = b
	}
	return cid
}

const recordTree = "record"

// recorderContract 要求给定公钥签名与 zk 证明，apply 时把所选调用的载荷写入 record 树
type recorderContract struct {
	pubkeys  []*secp256k1.PublicKey
	zk       []types.ZkPublicInput
	execErr  error
	applyErr error
}

func (p *recorderContract) Init(env contract.Env, cid types.ContractID, _ []byte) error {
	_, err := env.DB().Init(cid, recordTree)
	return err
}

func (p *recorderContract) Metadata(env contract.Env, _ types.ContractID, payload []byte) error {
	if _, _, err := abi.DecodeSelectedCall(payload); err != nil {
		return err
	}
	b, err := abi.EncodeMetadata(types.Metadata{ZkPublicInputs: p.zk, SignaturePubKeys: p.pubkeys})
	if err != nil {
		return err
	}
	return env.SetReturnData(b)
}

func (p *recorderContract) Exec(env contract.Env, _ types.ContractID, payload []byte) error {
	if p.execErr != nil {
		return p.execErr
	}
	_, call, err := abi.DecodeSelectedCall(payload)
	if err != nil {
		return err
	}
	return env.SetReturnData(abi.EncodeStateUpdate(types.StateUpdate{Tag: 1, Payload: call.Payload}))
}

func (p *recorderContract) Apply(env contract.Env, cid types.ContractID, payload []byte) error {
	if p.applyErr != nil {
		return p.applyErr
	}
	u, err := abi.DecodeStateUpdate(payload)
	if err != nil {
		return err
	}
	h, err := env.DB().Lookup(cid, recordTree)
	if err != nil {
		return err
	}
	return env.DB().Set(h, []byte("last"), u.Payload)
}

// readRecorded 直接从存储读取 record 树中的 last
func readRecorded(t *testing.T, store *badger.Store, cid types.ContractID) []byte {
	t.Helper()
	state := NewStateDB(store)
	view := state.View(context.Background(), cid, types.EntrypointExec)
	h, err := view.Lookup(cid, recordTree)
	require.NoError(t, err)
	v, err := view.Get(h, []byte("last"))
	require.NoError(t, err)
	return v
}
