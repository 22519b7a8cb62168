package metrics

import (
	"time"
)

// RecordStep records one simulation step for a model variant
func (r *Registry) RecordStep(model string, duration time.Duration) {
	r.StepsTotal.WithLabelValues(model).Inc()
	r.StepDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordRun records a completed (or failed) simulation run
func (r *Registry) RecordRun(model, status string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(model, status).Inc()
	r.RunDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// UpdateStatePopulation sets the per-compartment population gauges
func (r *Registry) UpdateStatePopulation(model string, counts map[string]int) {
	for state, n := range counts {
		r.StatePopulation.WithLabelValues(model, state).Set(float64(n))
	}
}

// UpdateNetwork sets the network size gauges
func (r *Registry) UpdateNetwork(nodes, edges int) {
	r.NetworkNodes.Set(float64(nodes))
	r.NetworkEdges.Set(float64(edges))
}

// RecordModeration records a moderator intervention attempt
func (r *Registry) RecordModeration(model string, succeeded bool) {
	r.ModerationAttempts.WithLabelValues(model).Inc()
	if succeeded {
		r.ModerationSuccesses.WithLabelValues(model).Inc()
	}
}

// RecordToxicMessage counts one toxic message sent
func (r *Registry) RecordToxicMessage() {
	r.ToxicMessagesTotal.Inc()
}

// RecordExport records an export to a sink with the bytes written
func (r *Registry) RecordExport(sink, status string, bytes int) {
	r.ExportsTotal.WithLabelValues(sink, status).Inc()
	if bytes > 0 {
		r.ExportBytesTotal.WithLabelValues(sink).Add(float64(bytes))
	}
}

// RecordSnapshotStreamed counts one snapshot published on the stream
func (r *Registry) RecordSnapshotStreamed() {
	r.SnapshotsStreamed.Inc()
}
