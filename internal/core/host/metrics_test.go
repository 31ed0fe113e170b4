package host

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/hellocontract/pkg/types"
)

func TestMetricsRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	m1, err := NewMetrics(reg)
	require.NoError(t, err)
	m2, err := NewMetrics(reg)
	require.NoError(t, err)

	m1.ObserveEntrypoint(types.EntrypointExec, nil)
	m2.ObserveEntrypoint(types.EntrypointExec, errors.New("x"))
	m2.ObserveTransaction(time.Now(), nil)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]int{}
	for _, mf := range families {
		names[mf.GetName()] = len(mf.GetMetric())
	}
	assert.Equal(t, 2, names["hellocontract_host_entrypoint_total"])
	assert.Equal(t, 1, names["hellocontract_host_transaction_duration_seconds"])
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEntrypoint(types.EntrypointApply, nil)
		m.ObserveTransaction(time.Now(), nil)
	})
}
