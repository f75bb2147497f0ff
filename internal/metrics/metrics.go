// Package metrics counts counter operations in a private prometheus registry
// that is written to a text file when the session ends.
package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/weegigs/wee-counter-go/counter"
)

const (
	OutcomeApplied = "applied"
	OutcomeIgnored = "ignored"
)

type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	value      prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "counter_operations_total",
				Help: "Operations requested against the counter, by outcome",
			},
			[]string{"operation", "outcome"},
		),
		value: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "counter_value",
				Help: "Current counter value",
			},
		),
	}
}

// Observe is a counter.Observer recording accepted changes.
func (m *Metrics) Observe(change counter.Change) {
	m.operations.WithLabelValues(change.Operation.String(), OutcomeApplied).Inc()
	m.value.Set(float64(change.After.Counter))
}

// Ignored records an operation that left the state untouched.
func (m *Metrics) Ignored(operation counter.Operation) {
	m.operations.WithLabelValues(operation.String(), OutcomeIgnored).Inc()
}

// Track seeds the value gauge from the store and follows its changes.
func (m *Metrics) Track(store *counter.Store) func() {
	m.value.Set(float64(store.Read().Counter))
	return store.Subscribe(m.Observe)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTo writes the registry in the text exposition format. An empty path
// is a no-op.
func (m *Metrics) WriteTo(path string) error {
	if path == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %s", path)
	}

	return nil
}
