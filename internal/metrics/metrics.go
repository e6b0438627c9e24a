// Package metrics exposes the dashboard's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// Mutation results recorded in the mutations counter.
const (
	ResultSuccess  = "success"
	ResultInvalid  = "invalid"
	ResultNotFound = "not_found"
	ResultDeclined = "declined"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	mutations           *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
	products            prometheus.Gauge
	loadFallbacks       *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutations_total",
				Help:      "Total number of product mutations by operation and result",
			},
			[]string{"operation", "result"},
		),
		persistenceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "persistence_failures_total",
				Help:      "Total number of failed writes of the product collection",
			},
			[]string{"operation"},
		),
		products: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "products",
				Help:      "Number of products in the collection",
			},
		),
		loadFallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "load_fallbacks_total",
				Help:      "Total number of loads that fell back to the seed data",
			},
			[]string{"reason"},
		),
	}
}

// RecordMutation counts one add, edit or delete attempt.
func (m *Metrics) RecordMutation(operation, result string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation, result).Inc()
}

// RecordPersistenceFailure counts a save that the store rejected.
func (m *Metrics) RecordPersistenceFailure(operation string) {
	if m == nil {
		return
	}
	m.persistenceFailures.WithLabelValues(operation).Inc()
}

// SetProductCount updates the collection size gauge.
func (m *Metrics) SetProductCount(n int) {
	if m == nil {
		return
	}
	m.products.Set(float64(n))
}

// RecordLoadFallback counts a load that substituted the seed data.
func (m *Metrics) RecordLoadFallback(reason string) {
	if m == nil {
		return
	}
	m.loadFallbacks.WithLabelValues(reason).Inc()
}
