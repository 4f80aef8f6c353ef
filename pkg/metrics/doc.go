// Package metrics exposes the pool's provider-level gauges over Prometheus:
// active request counts, error counts, cumulative request/token counts, and
// per-instance liveness, labeled by family and instance ID.
//
// # Usage
//
//	collector := metrics.NewCollector("llm", nil)
//	collector.Observe(b.Snapshot())
//	http.Handle("/metrics", collector.Handler())
package metrics
