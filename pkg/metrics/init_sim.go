package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seizgraph_runs_total",
			Help: "Total number of simulation runs",
		},
		[]string{"model", "status"},
	)

	r.StepsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seizgraph_steps_total",
			Help: "Total number of simulation steps executed",
		},
		[]string{"model"},
	)

	r.StepDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seizgraph_step_duration_seconds",
			Help:    "Simulation step duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"model"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seizgraph_run_duration_seconds",
			Help:    "Full simulation run duration in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
		[]string{"model"},
	)

	r.StatePopulation = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "seizgraph_state_population",
			Help: "Number of agents currently in each compartment",
		},
		[]string{"model", "state"},
	)

	r.NetworkNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "seizgraph_network_nodes",
			Help: "Number of nodes in the simulated network",
		},
	)

	r.NetworkEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "seizgraph_network_edges",
			Help: "Number of edges in the simulated network",
		},
	)

	r.ModerationAttempts = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seizgraph_moderation_attempts_total",
			Help: "Total number of moderator interventions attempted",
		},
		[]string{"model"},
	)

	r.ModerationSuccesses = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seizgraph_moderation_successes_total",
			Help: "Total number of moderator interventions that changed an agent's state",
		},
		[]string{"model"},
	)

	r.ToxicMessagesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "seizgraph_toxic_messages_total",
			Help: "Total number of toxic messages sent by infected agents",
		},
	)
}
