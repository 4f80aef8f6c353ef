package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/relaypath/llmrelay/pkg/balancer"
)

// providerMetrics holds the gauges that mirror a ProviderInstance's live
// state. They are gauges, not counters, because Observe sets them from a
// balancer.Stats snapshot rather than incrementing them on each event.
type providerMetrics struct {
	activeRequests *prometheus.GaugeVec
	errorCount     *prometheus.GaugeVec
	totalRequests  *prometheus.GaugeVec
	totalTokens    *prometheus.GaugeVec
	active         *prometheus.GaugeVec
}

func newProviderMetrics(namespace string, registry *prometheus.Registry) *providerMetrics {
	pm := &providerMetrics{
		activeRequests: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_active_requests",
			Help:      "In-flight requests currently dispatched to a provider instance.",
		}, []string{"family", "instance"}),

		errorCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_error_count",
			Help:      "Error count since the instance was last reactivated; a successful dispatch does not reset it.",
		}, []string{"family", "instance"}),

		totalRequests: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_total_requests",
			Help:      "Cumulative number of requests dispatched to a provider instance.",
		}, []string{"family", "instance"}),

		totalTokens: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_total_tokens",
			Help:      "Cumulative number of tokens billed to a provider instance.",
		}, []string{"family", "instance"}),

		active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "provider_active",
			Help:      "1 if the provider instance's circuit is closed, 0 if it has been opened.",
		}, []string{"family", "instance"}),
	}

	registry.MustRegister(
		pm.activeRequests,
		pm.errorCount,
		pm.totalRequests,
		pm.totalTokens,
		pm.active,
	)
	return pm
}

// observeSnapshot sets every gauge from a stats snapshot produced by
// balancer.Balancer.Snapshot.
func (pm *providerMetrics) observeSnapshot(stats balancer.Stats) {
	for family, instances := range stats {
		for _, inst := range instances {
			labels := prometheus.Labels{"family": family, "instance": inst.ID}
			pm.activeRequests.With(labels).Set(float64(inst.ActiveRequests))
			pm.errorCount.With(labels).Set(float64(inst.ErrorCount))
			pm.totalRequests.With(labels).Set(float64(inst.TotalRequests))
			pm.totalTokens.With(labels).Set(float64(inst.TotalTokens))
			activeVal := 0.0
			if inst.Active {
				activeVal = 1.0
			}
			pm.active.With(labels).Set(activeVal)
		}
	}
}
