package balancer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/relaypath/llmrelay/pkg/providers"
)

// Stats is a read-only copy of per-family, per-instance counters, per the
// data model's Stats snapshot entity.
type Stats map[string][]providers.InstanceSnapshot

// String renders Stats as a one-line-per-instance report, families in
// alphabetical order. A caller's text formatter picks this up automatically
// since fmt's %v verb respects fmt.Stringer.
func (s Stats) String() string {
	families := make([]string, 0, len(s))
	for family := range s {
		families = append(families, family)
	}
	sort.Strings(families)

	var b strings.Builder
	for _, family := range families {
		for _, snap := range s[family] {
			state := "inactive"
			if snap.Active {
				state = "active"
			}
			fmt.Fprintf(&b, "%-4s %-10s %s  active_requests=%-3d error_count=%-3d total_requests=%-6d total_tokens=%d\n",
				family, snap.ID, state, snap.ActiveRequests, snap.ErrorCount, snap.TotalRequests, snap.TotalTokens)
		}
	}
	return b.String()
}

// Snapshot returns the current stats for every enabled family. Each
// instance's fields are read under its own lock, so the result is a
// consistent per-instance view, not a globally atomic snapshot across
// instances.
func (b *Balancer) Snapshot() Stats {
	out := make(Stats)
	for _, family := range b.pool.Families() {
		instances := b.pool.Instances(family)
		snaps := make([]providers.InstanceSnapshot, 0, len(instances))
		for _, inst := range instances {
			snaps = append(snaps, inst.Snapshot())
		}
		out[family] = snaps
	}
	return out
}
