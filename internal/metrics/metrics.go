// Package metrics exposes Prometheus collectors for graph operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeSuccess       = "success"
	OutcomeNotFound      = "not_found"
	OutcomeAlreadyExists = "already_exists"
	OutcomeInvalid       = "invalid"
	OutcomeError         = "error"
)

var (
	registryOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grafanagraphs_registry_operations_total",
		Help: "Graph registry operations by operation and outcome",
	}, []string{"operation", "outcome"})

	submits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grafanagraphs_submits_total",
		Help: "Submit workflow results by source and outcome",
	}, []string{"source", "outcome"})

	graphsConfigured = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "grafanagraphs_graphs_configured",
		Help: "Number of graphs in the store after the last successful save or reload",
	})
)

// ObserveOperation counts one registry operation.
func ObserveOperation(operation, outcome string) {
	registryOperations.WithLabelValues(operation, outcome).Inc()
}

// ObserveSubmit counts one submit workflow result.
func ObserveSubmit(source, outcome string) {
	submits.WithLabelValues(source, outcome).Inc()
}

// SetGraphsConfigured records the current graph count.
func SetGraphsConfigured(n int) {
	graphsConfigured.Set(float64(n))
}
