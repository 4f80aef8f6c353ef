package metrics

import (
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"

	"github.com/relaypath/llmrelay/pkg/balancer"
)

func TestCollector_ObserveSetsGauges(t *testing.T) {
	c := NewCollector("llm", nil)

	stats := balancer.Stats{
		"A": {
			{ID: "A-0", Family: "A", Active: true, ActiveRequests: 2, TotalRequests: 10, TotalTokens: 500, ErrorCount: 1, LastUsedAt: time.Now()},
		},
	}
	c.Observe(stats)

	families, err := c.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}

	found := map[string]float64{}
	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, "llm_provider_") {
			continue
		}
		for _, m := range mf.Metric {
			if labelsMatch(m, "A-0") {
				found[name] = m.GetGauge().GetValue()
			}
		}
	}

	checks := map[string]float64{
		"llm_provider_active_requests": 2,
		"llm_provider_error_count":     1,
		"llm_provider_total_requests":  10,
		"llm_provider_total_tokens":    500,
		"llm_provider_active":          1,
	}
	for name, want := range checks {
		got, ok := found[name]
		if !ok {
			t.Fatalf("metric %s not found", name)
		}
		if got != want {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
}

func labelsMatch(m *dto.Metric, instance string) bool {
	for _, l := range m.Label {
		if l.GetName() == "instance" && l.GetValue() == instance {
			return true
		}
	}
	return false
}
