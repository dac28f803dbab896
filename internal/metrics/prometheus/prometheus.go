package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/simaogato/finance-dashboard/internal/metrics"
)

// PrometheusCollector implements metrics.Collector for Prometheus.
type PrometheusCollector struct {
	namespace string

	intents       *prometheus.CounterVec
	intentLatency *prometheus.HistogramVec

	loading      prometheus.Gauge
	transactions prometheus.Gauge

	circuitState *prometheus.GaugeVec
	circuitOpens *prometheus.CounterVec
}

// NewPrometheusCollector creates a new Prometheus metrics collector.
func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{
		namespace: namespace,
		intents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "intents_total",
				Help:      "Total number of intents per intent and outcome",
			},
			[]string{"intent", "outcome"},
		),
		intentLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "intent_duration_seconds",
				Help:      "Duration of intents including the remote store call",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"intent"},
		),
		loading: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "state_loading",
				Help:      "1 while an intent is waiting on the remote store",
			},
		),
		transactions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "state_transactions",
				Help:      "Number of transactions held in the application state",
			},
		),
		circuitState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"name"},
		),
		circuitOpens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_opens_total",
				Help:      "Total number of times the circuit breaker opened",
			},
			[]string{"name"},
		),
	}
}

// Register registers all metrics with the given registerer.
func (pc *PrometheusCollector) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		pc.intents,
		pc.intentLatency,
		pc.loading,
		pc.transactions,
		pc.circuitState,
		pc.circuitOpens,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// RecordIntent records the outcome and latency of an intent.
func (pc *PrometheusCollector) RecordIntent(intent string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	pc.intents.WithLabelValues(intent, outcome).Inc()
	pc.intentLatency.WithLabelValues(intent).Observe(duration.Seconds())
}

// RecordLoading records the loading flag of the application state.
func (pc *PrometheusCollector) RecordLoading(loading bool) {
	if loading {
		pc.loading.Set(1)
		return
	}
	pc.loading.Set(0)
}

// RecordTransactionCount records the size of the transaction list.
func (pc *PrometheusCollector) RecordTransactionCount(count int) {
	pc.transactions.Set(float64(count))
}

// RecordCircuitState records circuit breaker state changes.
func (pc *PrometheusCollector) RecordCircuitState(name string, state metrics.CircuitState) {
	pc.circuitState.WithLabelValues(name).Set(float64(state))
	if state == metrics.CircuitOpen {
		pc.circuitOpens.WithLabelValues(name).Inc()
	}
}

var _ metrics.Collector = (*PrometheusCollector)(nil)
