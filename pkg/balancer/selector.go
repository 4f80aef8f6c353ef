package balancer

import (
	"time"

	"github.com/relaypath/llmrelay/pkg/providers"
)

// selectInstance picks the best candidate from instances for kind. It
// filters to active instances that support kind and (if pin != "") belong to
// family pin, then scores the remainder: lowest Score wins, ties broken by
// oldest LastUsedAt, further ties by insertion order. Returns nil if no
// eligible instance exists, distinguishing "no eligible instance at all"
// from "eligible but all throttled" via the throttled return.
//
// An instance already present in tried (one this Dispatch call has already
// attempted and failed on) is skipped as long as some other candidate has
// capacity. It is only reused when it is the sole remaining candidate with
// capacity — a single-instance pool must still be able to retry on its one
// instance instead of failing with NoProvidersAvailable.
func selectInstance(pool *providers.Pool, kind providers.Kind, pin string, tried map[string]bool, now time.Time) (best *providers.ProviderInstance, throttled []*providers.ProviderInstance) {
	var candidates []*providers.ProviderInstance

	families := pool.Families()
	if pin != "" {
		families = []string{pin}
	}

	for _, family := range families {
		adapter, ok := pool.Adapter(family)
		if !ok || !adapter.Supports(kind) {
			continue
		}
		for _, inst := range pool.Instances(family) {
			if !inst.IsActive() {
				continue
			}
			candidates = append(candidates, inst)
		}
	}

	var fresh, retried []*providers.ProviderInstance
	for _, inst := range candidates {
		if !inst.HasCapacity(now) {
			throttled = append(throttled, inst)
			continue
		}
		if tried[inst.ID()] {
			retried = append(retried, inst)
		} else {
			fresh = append(fresh, inst)
		}
	}

	eligible := fresh
	if len(eligible) == 0 {
		eligible = retried
	}

	if len(eligible) == 0 {
		return nil, throttled
	}

	best = eligible[0]
	bestSnap := best.Snapshot()
	bestScore := best.Score()
	for _, inst := range eligible[1:] {
		score := inst.Score()
		snap := inst.Snapshot()
		switch {
		case score < bestScore:
			best, bestScore, bestSnap = inst, score, snap
		case score == bestScore:
			if snap.LastUsedAt.Before(bestSnap.LastUsedAt) {
				best, bestScore, bestSnap = inst, score, snap
			} else if snap.LastUsedAt.Equal(bestSnap.LastUsedAt) && snap.InsertionOrder < bestSnap.InsertionOrder {
				best, bestScore, bestSnap = inst, score, snap
			}
		}
	}
	return best, throttled
}
