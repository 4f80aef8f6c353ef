package balancer

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/relaypath/llmrelay/pkg/logging"
	"github.com/relaypath/llmrelay/pkg/providers"
	"github.com/relaypath/llmrelay/pkg/tokens"
)

// Balancer owns a provider Pool, selects an instance per LogicalRequest,
// dispatches through its adapter, and drives retries, the circuit breaker,
// and the background health-check loop.
type Balancer struct {
	pool       *providers.Pool
	httpClient *http.Client
	logger     *logging.Logger
	estimator  tokens.Estimator

	dispatchTimeout time.Duration

	health *healthChecker
}

// Option configures a Balancer at construction time.
type Option func(*Balancer)

// WithHTTPClient overrides the shared *http.Client used for every dispatch.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Balancer) { b.httpClient = c }
}

// WithLogger overrides the structured logger used for dispatch, retry, and
// circuit-breaker events.
func WithLogger(l *logging.Logger) Option {
	return func(b *Balancer) { b.logger = l }
}

// WithDispatchTimeout overrides the default per-attempt HTTP timeout.
func WithDispatchTimeout(d time.Duration) Option {
	return func(b *Balancer) { b.dispatchTimeout = d }
}

// WithEstimator overrides the fallback token estimator used to fill
// TokenUsage when a reply's upstream response omitted usage data.
func WithEstimator(e tokens.Estimator) Option {
	return func(b *Balancer) { b.estimator = e }
}

// New constructs a Balancer over pool. The health-check loop is not started
// until the first Dispatch call.
func New(pool *providers.Pool, opts ...Option) *Balancer {
	defaultLogger, _ := logging.New(logging.Config{RedactPII: true})
	b := &Balancer{
		pool:            pool,
		httpClient:      &http.Client{},
		logger:          defaultLogger,
		estimator:       tokens.NewSimpleEstimator(),
		dispatchTimeout: DefaultDispatchTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.health = newHealthChecker(b)
	return b
}

// Close stops the health-check loop and releases resources. Safe to call
// even if the loop was never started.
func (b *Balancer) Close() {
	b.health.stop()
}

// Dispatch routes req to one instance, performs the HTTP call through its
// adapter, and applies policy on retries. It lazily starts the health
// checker on first call.
func (b *Balancer) Dispatch(ctx context.Context, req *providers.LogicalRequest, policy RetryPolicy) (*providers.NormalizedReply, error) {
	b.health.ensureStarted()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if err := ctx.Err(); err != nil {
		return nil, &providers.Cancelled{Cause: err}
	}

	tried := make(map[string]bool)
	var lastErr error
	attempt := 0

	maxAttempts := 1
	switch policy {
	case RetryOnce:
		maxAttempts = 2
	case RetryFixed:
		maxAttempts = DefaultFixedAttempts
	case RetryInfinite:
		maxAttempts = -1 // unbounded
	}

	for maxAttempts < 0 || attempt < maxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, &providers.Cancelled{Cause: err}
		}

		inst, err := b.waitForCandidate(ctx, req, tried)
		if err != nil {
			if _, none := err.(*providers.NoProvidersAvailable); none && policy == RetryInfinite {
				select {
				case <-ctx.Done():
					return nil, &providers.Cancelled{Cause: ctx.Err()}
				case <-time.After(earliestFreeIn(nil)):
				}
				continue
			}
			return nil, err
		}

		reply, dispatchErr := b.dispatchOnce(ctx, inst, req)
		if dispatchErr == nil {
			return reply, nil
		}

		lastErr = dispatchErr
		tried[inst.ID()] = true
		attempt++

		b.logger.Warn("dispatch attempt failed",
			"request_id", req.ID,
			"provider_id", inst.ID(),
			"attempt", attempt,
			"error", dispatchErr,
		)

		if policy == RetryOnce && attempt >= maxAttempts {
			break
		}

		wait := backoff(attempt - 1)
		select {
		case <-ctx.Done():
			return nil, &providers.Cancelled{Cause: ctx.Err()}
		case <-time.After(wait):
		}
	}

	b.logger.Error("dispatch exhausted retries",
		"request_id", req.ID,
		"attempts", attempt,
		"error", lastErr,
	)
	if lastErr == nil {
		lastErr = &providers.NoProvidersAvailable{Kind: string(req.Kind)}
	}
	return nil, lastErr
}

// waitForCandidate selects the best eligible instance for req, waiting for
// a rate-limit slot to free if every candidate is currently throttled. It
// returns NoProvidersAvailable immediately if there are no candidates at
// all (no active instance supports the kind). Under RetryInfinite, Dispatch
// then keeps polling until the health checker revives an instance or the
// context is cancelled; every other policy fails with that error.
func (b *Balancer) waitForCandidate(ctx context.Context, req *providers.LogicalRequest, tried map[string]bool) (*providers.ProviderInstance, error) {
	pin := req.Pin
	for {
		inst, throttled := selectInstance(b.pool, req.Kind, pin, tried, time.Now())
		if inst != nil {
			return inst, nil
		}
		if len(throttled) == 0 {
			return nil, &providers.NoProvidersAvailable{Kind: string(req.Kind)}
		}

		wait := earliestFreeIn(throttled)
		select {
		case <-ctx.Done():
			return nil, &providers.Cancelled{Cause: ctx.Err()}
		case <-time.After(wait):
		}
	}
}

// earliestFreeIn estimates how long until the soonest of the throttled
// instances frees a slot. It polls conservatively in small steps rather
// than computing an exact wake time, since the window only exposes a
// boolean HasCapacity check.
func earliestFreeIn(throttled []*providers.ProviderInstance) time.Duration {
	return 250 * time.Millisecond
}

// dispatchOnce performs exactly one HTTP attempt against inst: builds the
// request via the family adapter, sends it, parses the response, and
// updates inst's stats and circuit-breaker state. The active_requests
// increment is always rolled back via defer, on every exit path including
// cancellation.
func (b *Balancer) dispatchOnce(ctx context.Context, inst *providers.ProviderInstance, req *providers.LogicalRequest) (*providers.NormalizedReply, error) {
	adapter, ok := b.pool.Adapter(inst.Family())
	if !ok {
		return nil, &providers.ConfigError{Field: "family", Message: "no adapter for family " + inst.Family()}
	}

	now := time.Now()
	inst.BeginDispatch(now)
	defer inst.EndDispatch()

	method, url, headers, body, err := adapter.BuildRequest(inst, req)
	if err != nil {
		inst.RecordFailure()
		return nil, err
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, b.dispatchTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(dispatchCtx, method, url, bytes.NewReader(body))
	if err != nil {
		inst.RecordFailure()
		return nil, &providers.TransportError{Family: inst.Family(), Cause: err}
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	b.logger.Debug("dispatching request",
		"request_id", req.ID,
		"provider_id", inst.ID(),
		"family", inst.Family(),
		"kind", req.Kind,
	)

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		inst.RecordFailure()
		b.maybeOpenCircuit(inst)
		return nil, &providers.TransportError{Family: inst.Family(), Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		inst.RecordFailure()
		b.maybeOpenCircuit(inst)
		return nil, &providers.TransportError{Family: inst.Family(), Cause: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		inst.RecordFailure()
		b.maybeOpenCircuit(inst)
		return nil, &providers.RateLimited{Family: inst.Family()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		inst.RecordFailure()
		b.maybeOpenCircuit(inst)
		return nil, &providers.UpstreamHTTPError{Family: inst.Family(), Status: resp.StatusCode, Body: string(respBody)}
	}

	reply, err := adapter.ParseResponse(req.Kind, respBody)
	if err != nil {
		inst.RecordFailure()
		b.maybeOpenCircuit(inst)
		return nil, err
	}

	if reply.Usage.TotalTokens == 0 && req.Kind != providers.KindEmbed {
		reply.Usage.PromptTokens = b.estimator.EstimateMessages(req.Messages, inst.Model())
		reply.Usage.CompletionTokens = b.estimator.EstimateText(reply.Text, inst.Model())
		reply.Usage.TotalTokens = reply.Usage.PromptTokens + reply.Usage.CompletionTokens
	}

	inst.RecordSuccess(time.Now(), reply.Usage.TotalTokens)
	reply.ProviderID = inst.ID()
	return reply, nil
}

func (b *Balancer) maybeOpenCircuit(inst *providers.ProviderInstance) {
	if inst.Snapshot().ErrorCount >= CircuitOpenThreshold && !inst.IsActive() {
		b.logger.Info("circuit breaker opened",
			"provider_id", inst.ID(),
			"family", inst.Family(),
		)
	}
}
