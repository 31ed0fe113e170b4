package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/hellocontract/pkg/interfaces/contract"
	"github.com/weisyn/hellocontract/pkg/types"
)

// routeRecorder 记录被调用的入口
type routeRecorder struct {
	called []types.EntrypointKind
	fail   error
}

func (r *routeRecorder) record(kind types.EntrypointKind) error {
	r.called = append(r.called, kind)
	return r.fail
}

func (r *routeRecorder) Init(contract.Env, types.ContractID, []byte) error {
	return r.record(types.EntrypointInit)
}

func (r *routeRecorder) Metadata(contract.Env, types.ContractID, []byte) error {
	return r.record(types.EntrypointMetadata)
}

func (r *routeRecorder) Exec(contract.Env, types.ContractID, []byte) error {
	return r.record(types.EntrypointExec)
}

func (r *routeRecorder) Apply(contract.Env, types.ContractID, []byte) error {
	return r.record(types.EntrypointApply)
}

func TestDispatcherRoutesByKind(t *testing.T) {
	cid := types.ContractID{1}
	rec := &routeRecorder{}
	reg := NewRegistry()
	require.NoError(t, reg.Register(cid, rec))
	d := NewDispatcher(reg, nil)
	env := &recordingEnv{}

	require.NoError(t, d.Init(env, cid, nil))
	require.NoError(t, d.Metadata(env, cid, nil))
	require.NoError(t, d.Exec(env, cid, nil))
	require.NoError(t, d.Apply(env, cid, nil))

	assert.Equal(t, []types.EntrypointKind{
		types.EntrypointInit, types.EntrypointMetadata, types.EntrypointExec, types.EntrypointApply,
	}, rec.called)
	assert.Empty(t, env.msgs)
}

func TestDispatcherFailureDiagnostics(t *testing.T) {
	cid := types.ContractID{2}

	t.Run("合约错误原样返回并写诊断", func(t *testing.T) {
		rec := &routeRecorder{fail: NewError(UnknownFunction, "selector 255")}
		reg := NewRegistry()
		require.NoError(t, reg.Register(cid, rec))
		env := &recordingEnv{}

		err := NewDispatcher(reg, nil).Exec(env, cid, nil)
		assert.Equal(t, UnknownFunction, CodeOf(err))
		require.Len(t, env.msgs, 1)
		assert.Contains(t, env.msgs[0], "exec")
		assert.Nil(t, env.returnData)
	})

	t.Run("未部署合约", func(t *testing.T) {
		env := &recordingEnv{}
		err := NewDispatcher(NewRegistry(), nil).Apply(env, cid, []byte{0x00})
		assert.Equal(t, Internal, CodeOf(err))
		assert.Len(t, env.msgs, 1)
	})

	t.Run("未知入口类型", func(t *testing.T) {
		env := &recordingEnv{}
		err := Route(env, &routeRecorder{}, types.EntrypointKind(9), cid, nil)
		assert.Equal(t, Internal, CodeOf(err))
	})
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	cid := types.ContractID{3}
	require.NoError(t, reg.Register(cid, &routeRecorder{}))
	assert.Equal(t, Internal, CodeOf(reg.Register(cid, &routeRecorder{})))
	assert.Equal(t, Internal, CodeOf(reg.Register(types.ContractID{4}, nil)))
	assert.Equal(t, 1, reg.Len())

	replacement := &routeRecorder{}
	require.NoError(t, reg.Replace(cid, replacement))
	got, err := reg.Lookup(cid)
	require.NoError(t, err)
	assert.Same(t, replacement, got)
	assert.Equal(t, Internal, CodeOf(reg.Replace(cid, nil)))
	assert.Equal(t, 1, reg.Len())

	reg.Unregister(cid)
	_, err = reg.Lookup(cid)
	assert.Equal(t, Internal, CodeOf(err))
}

func TestDispatcherPrepare(t *testing.T) {
	cid := types.ContractID{5}
	d := NewDispatcher(NewRegistry(), nil)

	rec := &routeRecorder{}
	require.NoError(t, d.Prepare(&recordingEnv{}, rec, cid, nil))
	assert.Equal(t, []types.EntrypointKind{types.EntrypointInit}, rec.called)
	assert.Equal(t, 0, d.Registry().Len())

	env := &recordingEnv{}
	err := d.Prepare(env, &routeRecorder{fail: NewError(Malformed, "bad init")}, cid, nil)
	assert.Equal(t, Malformed, CodeOf(err))
	assert.Len(t, env.msgs, 1)
}
