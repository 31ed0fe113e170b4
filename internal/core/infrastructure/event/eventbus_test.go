package event

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventconfig "github.com/weisyn/hellocontract/internal/config/event"
	"github.com/weisyn/hellocontract/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/hellocontract/pkg/types"
)

const testTopic event.EventType = "test.topic"

func TestPublishSync(t *testing.T) {
	bus := New(nil, nil)

	var got []string
	handler := func(s string) { got = append(got, s) }
	require.NoError(t, bus.Subscribe(testTopic, handler))
	assert.True(t, bus.HasCallback(testTopic))

	bus.Publish(testTopic, "a")
	bus.Publish(testTopic, "b")
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, bus.Unsubscribe(testTopic, handler))
	assert.False(t, bus.HasCallback(testTopic))
	bus.Publish(testTopic, "c")
	assert.Len(t, got, 2)
}

func TestPublishAsync(t *testing.T) {
	bus := New(nil, nil)

	var n atomic.Int32
	require.NoError(t, bus.SubscribeAsync(testTopic, func(v int) { n.Add(int32(v)) }, true))
	for i := 0; i < 10; i++ {
		bus.Publish(testTopic, 1)
	}
	bus.WaitAsync()
	assert.Equal(t, int32(10), n.Load())
}

func TestDisabledBusIsSilent(t *testing.T) {
	bus := New(eventconfig.New(&types.UserEventConfig{Enabled: types.BoolPtr(false)}), nil)

	called := false
	require.NoError(t, bus.Subscribe(testTopic, func() { called = true }))
	bus.Publish(testTopic)
	assert.False(t, called)
	assert.False(t, bus.HasCallback(testTopic))
}
