package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/finance-dashboard/internal/metrics"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	pc := NewPrometheusCollector("finance")
	require.NoError(t, pc.Register(reg))

	pc.RecordIntent("add_transaction", true, 10*time.Millisecond)
	pc.RecordIntent("add_transaction", true, 20*time.Millisecond)
	pc.RecordIntent("add_transaction", false, 5*time.Millisecond)
	pc.RecordLoading(true)
	pc.RecordTransactionCount(7)
	pc.RecordCircuitState("remote", metrics.CircuitOpen)

	assert.Equal(t, 2.0, testutil.ToFloat64(pc.intents.WithLabelValues("add_transaction", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.intents.WithLabelValues("add_transaction", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.loading))
	assert.Equal(t, 7.0, testutil.ToFloat64(pc.transactions))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.circuitState.WithLabelValues("remote")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pc.circuitOpens.WithLabelValues("remote")))

	pc.RecordLoading(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(pc.loading))
}

func TestPrometheusCollector_RegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	pc := NewPrometheusCollector("finance")

	require.NoError(t, pc.Register(reg))
	assert.Error(t, pc.Register(reg))
}
