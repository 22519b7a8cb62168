package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExportMetrics() {
	r.ExportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seizgraph_exports_total",
			Help: "Total number of run exports by sink",
		},
		[]string{"sink", "status"},
	)

	r.ExportBytesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "seizgraph_export_bytes_total",
			Help: "Total bytes written by exports",
		},
		[]string{"sink"},
	)

	r.SnapshotsStreamed = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "seizgraph_snapshots_streamed_total",
			Help: "Total number of snapshots published to the stream socket",
		},
	)
}
