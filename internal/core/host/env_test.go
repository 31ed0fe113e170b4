package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/weisyn/hellocontract/internal/core/contract/abi"
	infralog "github.com/weisyn/hellocontract/internal/core/infrastructure/log"
	"github.com/weisyn/hellocontract/pkg/types"
)

func TestCallEnvReturnDataOnce(t *testing.T) {
	env := NewCallEnv(context.Background(), testCID(1), types.EntrypointExec, nil, nil)
	assert.False(t, env.Returned())
	assert.Nil(t, env.ReturnData())

	data := []byte{0x00}
	require.NoError(t, env.SetReturnData(data))
	data[0] = 0xff
	assert.Equal(t, []byte{0x00}, env.ReturnData())

	err := env.SetReturnData([]byte{0x01})
	assert.ErrorIs(t, err, abi.ErrInternal)
	assert.Equal(t, []byte{0x00}, env.ReturnData())
}

func TestCallEnvMsgLogsWithContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := infralog.NewModuleLogger(infralog.NewFromZap(zap.New(core)), infralog.ModuleContract)

	cid := testCID(2)
	env := NewCallEnv(context.Background(), cid, types.EntrypointExec, base, nil)
	env.Msg("gm world")

	assert.Equal(t, []string{"gm world"}, env.Messages())
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "gm world", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, infralog.ModuleContract, fields["module"])
	assert.Equal(t, cid.String(), fields["contract_id"])
	assert.Equal(t, "exec", fields["phase"])
}

func TestCallEnvDefaultsContext(t *testing.T) {
	env := NewCallEnv(nil, testCID(3), types.EntrypointInit, nil, nil)
	assert.NotNil(t, env.Context())
	assert.Nil(t, env.DB())
}
