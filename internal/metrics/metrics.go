package metrics

import (
	"time"
)

// Collector defines the interface for collecting application metrics.
// Implementations can export metrics to various backends (Prometheus, ...).
type Collector interface {
	// Intents
	RecordIntent(intent string, success bool, duration time.Duration)

	// Application state
	RecordLoading(loading bool)
	RecordTransactionCount(count int)

	// Remote store circuit breaker
	RecordCircuitState(name string, state CircuitState)
}

// CircuitState represents the state of a circuit breaker.
type CircuitState int

const (
	// CircuitClosed means the circuit breaker is allowing requests through.
	CircuitClosed CircuitState = iota
	// CircuitOpen means the circuit breaker is blocking requests.
	CircuitOpen
	// CircuitHalfOpen means the circuit breaker is testing if the remote store has recovered.
	CircuitHalfOpen
)

// String returns the string representation of the circuit state.
func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// NoOpCollector is a no-op implementation of Collector.
// It's used as the default collector when metrics are not needed.
type NoOpCollector struct{}

// RecordIntent does nothing.
func (NoOpCollector) RecordIntent(intent string, success bool, duration time.Duration) {}

// RecordLoading does nothing.
func (NoOpCollector) RecordLoading(loading bool) {}

// RecordTransactionCount does nothing.
func (NoOpCollector) RecordTransactionCount(count int) {}

// RecordCircuitState does nothing.
func (NoOpCollector) RecordCircuitState(name string, state CircuitState) {}
