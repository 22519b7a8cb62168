// Package metrics exposes Prometheus instrumentation for simulation runs.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the simulator
type Registry struct {
	// Simulation metrics
	RunsTotal       *prometheus.CounterVec
	StepsTotal      *prometheus.CounterVec
	StepDuration    *prometheus.HistogramVec
	RunDuration     *prometheus.HistogramVec
	StatePopulation *prometheus.GaugeVec
	NetworkNodes    prometheus.Gauge
	NetworkEdges    prometheus.Gauge

	// Moderation metrics (moderated variants only)
	ModerationAttempts  *prometheus.CounterVec
	ModerationSuccesses *prometheus.CounterVec
	ToxicMessagesTotal  prometheus.Counter

	// Export/sink metrics
	ExportsTotal      *prometheus.CounterVec
	ExportBytesTotal  *prometheus.CounterVec
	SnapshotsStreamed prometheus.Counter

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// NewRegistry creates a Registry with all metrics initialized and
// registered on a fresh Prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initSimMetrics()
	r.initExportMetrics()
	return r
}

// DefaultRegistry returns the shared global registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// GetPrometheusRegistry exposes the underlying registry for HTTP handlers.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
