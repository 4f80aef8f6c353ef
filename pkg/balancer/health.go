package balancer

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/relaypath/llmrelay/pkg/providers"
)

// healthSchedule is the cron expression driving the health-check cadence:
// every 5 minutes, declaratively, so the cadence is a one-line change and
// independently testable rather than baked into a ticker loop.
const healthSchedule = "@every 5m"

// healthChecker wakes on healthSchedule and probes every inactive instance
// in the pool, reactivating any that respond successfully. It is started
// lazily on the balancer's first Dispatch call and stopped at Close.
type healthChecker struct {
	b *Balancer

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

func newHealthChecker(b *Balancer) *healthChecker {
	return &healthChecker{b: b}
}

func (h *healthChecker) ensureStarted() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(healthSchedule, h.runOnce); err != nil {
		h.b.logger.Error("failed to schedule health checks", "error", err)
		return
	}
	c.Start()
	h.cron = c
	h.started = true
}

func (h *healthChecker) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started {
		return
	}
	ctx := h.cron.Stop()
	<-ctx.Done()
	h.started = false
}

// runOnce probes every inactive instance once. A successful probe
// reactivates the instance and clears its error_count; a failed probe
// leaves it inactive for the next cycle.
func (h *healthChecker) runOnce() {
	for _, family := range h.b.pool.Families() {
		adapter, ok := h.b.pool.Adapter(family)
		if !ok {
			continue
		}
		for _, inst := range h.b.pool.Instances(family) {
			if inst.IsActive() {
				continue
			}
			h.probe(adapter, inst)
		}
	}
}

func (h *healthChecker) probe(adapter providers.Adapter, inst *providers.ProviderInstance) {
	kind := providers.KindChat
	if !adapter.Supports(kind) {
		kind = providers.KindEmbed
	}
	if !adapter.Supports(kind) {
		return
	}

	req := &providers.LogicalRequest{
		Kind:  kind,
		Model: inst.Model(),
	}
	if kind == providers.KindChat {
		req.Messages = []providers.Message{{Role: providers.RoleUser, Content: "ping"}}
	} else {
		req.Texts = []string{"ping"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := h.b.dispatchOnce(ctx, inst, req); err != nil {
		h.b.logger.Debug("health probe failed", "provider_id", inst.ID(), "error", err)
		return
	}

	inst.Reactivate()
	h.b.logger.Info("health probe succeeded, instance reactivated", "provider_id", inst.ID())
}
