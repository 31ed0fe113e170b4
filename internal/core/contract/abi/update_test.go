package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/hellocontract/pkg/types"
)

func TestStateUpdateRoundTrip(t *testing.T) {
	cases := []types.StateUpdate{
		{Tag: 0x00},
		{Tag: 0x00, Payload: []byte{}},
		{Tag: 0x7f, Payload: []byte("tagged payload")},
	}
	for _, u := range cases {
		decoded, err := DecodeStateUpdate(EncodeStateUpdate(u))
		require.NoError(t, err)
		assert.True(t, u.Equal(decoded))
	}
}

func TestStateUpdateEncoding(t *testing.T) {
	assert.Equal(t, []byte{0x00}, EncodeStateUpdate(types.StateUpdate{Tag: 0x00}))
	assert.Equal(t, []byte{0x03, 0x01, 0x02}, EncodeStateUpdate(types.StateUpdate{Tag: 0x03, Payload: []byte{0x01, 0x02}}))
}

func TestDecodeStateUpdateEmpty(t *testing.T) {
	_, err := DecodeStateUpdate(nil)
	assert.Equal(t, Malformed, CodeOf(err))

	_, err = DecodeStateUpdate([]byte{})
	assert.Equal(t, Malformed, CodeOf(err))
}
