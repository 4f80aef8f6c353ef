package providers

import (
	"sync"
	"time"

	"github.com/relaypath/llmrelay/pkg/ratelimit"
)

// ProviderInstance is a single (family, api_key, api_base, model, rate_limit)
// tuple with live state. The Load Balancer exclusively owns this state;
// adapters never touch it. All counters and the active flag are guarded by
// mu, since several goroutines may dispatch through the same instance
// concurrently; the rate-limit window guards itself.
type ProviderInstance struct {
	mu sync.Mutex

	id        string
	family    string
	apiKey    string
	apiBase   string
	model     string
	rateLimit int

	active bool

	// window tracks the 60-second sliding request quota, capacity rateLimit.
	window *ratelimit.Window

	activeRequests int
	errorCount     int
	totalRequests  int64
	totalTokens    int64
	lastUsedAt     time.Time

	insertionOrder int
}

// NewProviderInstance constructs an instance in the active state with an
// empty window. insertionOrder breaks ties among otherwise-equal candidates
// in declaration order.
func NewProviderInstance(id, family, apiKey, apiBase, model string, rateLimit, insertionOrder int) *ProviderInstance {
	return &ProviderInstance{
		id:             id,
		family:         family,
		apiKey:         apiKey,
		apiBase:        apiBase,
		model:          model,
		rateLimit:      rateLimit,
		active:         true,
		window:         ratelimit.NewWindow(rateLimit),
		insertionOrder: insertionOrder,
	}
}

func (p *ProviderInstance) ID() string      { return p.id }
func (p *ProviderInstance) Family() string  { return p.family }
func (p *ProviderInstance) APIBase() string { return p.apiBase }
func (p *ProviderInstance) Model() string   { return p.model }

// APIKey returns the current key. Guarded so a secrets-driven hot-swap
// (see pkg/secrets) cannot race a reader.
func (p *ProviderInstance) APIKey() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.apiKey
}

// SetAPIKey swaps the key in place without touching counters, window, or
// health state, for use by a secrets hot-reload.
func (p *ProviderInstance) SetAPIKey(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.apiKey = key
}

// Score computes the selection score the balancer ranks candidates by:
// lower is preferred.
func (p *ProviderInstance) Score() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return float64(p.activeRequests)*1.0 + float64(p.errorCount)*0.1
}

// InstanceSnapshot is a consistent, instance-local read of the fields
// exposed via Stats(). It is not a global atomic snapshot across instances.
type InstanceSnapshot struct {
	ID             string
	Family         string
	Active         bool
	ActiveRequests int
	TotalRequests  int64
	TotalTokens    int64
	ErrorCount     int
	LastUsedAt     time.Time
	InsertionOrder int
}

// Snapshot returns the instance's current stats.
func (p *ProviderInstance) Snapshot() InstanceSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return InstanceSnapshot{
		ID:             p.id,
		Family:         p.family,
		Active:         p.active,
		ActiveRequests: p.activeRequests,
		TotalRequests:  p.totalRequests,
		TotalTokens:    p.totalTokens,
		ErrorCount:     p.errorCount,
		LastUsedAt:     p.lastUsedAt,
		InsertionOrder: p.insertionOrder,
	}
}

// HasCapacity reports whether a slot is free in the 60-second sliding window.
func (p *ProviderInstance) HasCapacity(now time.Time) bool {
	return p.window.HasCapacity(now)
}

// BeginDispatch records a send timestamp in the window and increments
// active_requests. Call only after HasCapacity has been confirmed true by
// the balancer's selection pass; it does not itself reject on capacity.
func (p *ProviderInstance) BeginDispatch(now time.Time) {
	p.window.Record(now)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeRequests++
}

// EndDispatch decrements active_requests. The balancer always defers this
// so it fires on every exit path, including cancellation.
func (p *ProviderInstance) EndDispatch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeRequests--
}

// RecordSuccess updates cumulative stats after a successful dispatch.
func (p *ProviderInstance) RecordSuccess(now time.Time, tokens int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.totalRequests++
	p.totalTokens += int64(tokens)
	p.lastUsedAt = now
}

// RecordFailure increments error_count and opens the circuit breaker once
// error_count reaches 3.
func (p *ProviderInstance) RecordFailure() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errorCount++
	if p.errorCount >= 3 {
		p.active = false
	}
}

// IsActive reports the current circuit-breaker state.
func (p *ProviderInstance) IsActive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Reactivate closes the circuit breaker and clears error_count, called by
// the health checker after a successful probe.
func (p *ProviderInstance) Reactivate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = true
	p.errorCount = 0
}
