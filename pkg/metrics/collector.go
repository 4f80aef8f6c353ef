package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/relaypath/llmrelay/pkg/balancer"
)

// Collector exposes a balancer's provider instances as Prometheus gauges.
// It owns no background goroutine: the caller decides when to Observe, e.g.
// on every scrape via a custom prometheus.Collector, or on a fixed interval.
type Collector struct {
	registry *prometheus.Registry
	provider *providerMetrics
}

// NewCollector creates a Collector under namespace. If registry is nil, a
// fresh prometheus.Registry is created rather than registering against the
// global default, so multiple Collectors in the same process (e.g. in
// tests) never collide.
func NewCollector(namespace string, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return &Collector{
		registry: registry,
		provider: newProviderMetrics(namespace, registry),
	}
}

// Observe refreshes every gauge from a balancer snapshot. Call it before
// each scrape, or on a timer if the balancer is polled rather than hooked
// up via promhttp.HandlerFor's collector.Collect path.
func (c *Collector) Observe(stats balancer.Stats) {
	c.provider.observeSnapshot(stats)
}

// Registry returns the registry metrics are registered against.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
