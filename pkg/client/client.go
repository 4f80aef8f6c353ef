package client

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/relaypath/llmrelay/pkg/balancer"
	"github.com/relaypath/llmrelay/pkg/providers"
)

// Client is the stateless facade over a Load Balancer. Multiple Clients may
// share one Balancer.
type Client struct {
	balancer *balancer.Balancer

	defaultRetryPolicy         balancer.RetryPolicy
	defaultMaxValidatorRetries int
}

// New constructs a Client over b.
func New(b *balancer.Balancer) *Client {
	return &Client{
		balancer:                   b,
		defaultRetryPolicy:         balancer.RetryFixed,
		defaultMaxValidatorRetries: DefaultMaxValidatorRetries,
	}
}

// Chat sends an ordered list of turns and returns the assistant's text.
func (c *Client) Chat(ctx context.Context, messages []providers.Message, opts ...Option) (string, error) {
	o := buildOptions(c.defaultRetryPolicy, c.defaultMaxValidatorRetries, opts)
	return c.chatWithValidation(ctx, messages, o)
}

// Generate is a convenience wrapper: it builds a single user turn from
// prompt and calls Chat.
func (c *Client) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	return c.Chat(ctx, []providers.Message{{Role: providers.RoleUser, Content: prompt}}, opts...)
}

// chatWithValidation implements the dispatch -> validate -> append addendum
// -> retry loop, capped at o.maxValidatorRetries. Embeddings never reach
// this path.
func (c *Client) chatWithValidation(ctx context.Context, messages []providers.Message, o callOptions) (string, error) {
	conversation := append([]providers.Message(nil), messages...)
	var lastErr string
	var lastReply *providers.NormalizedReply

	maxAttempts := o.maxValidatorRetries + 1
	for attempt := 0; attempt < maxAttempts; attempt++ {
		req := &providers.LogicalRequest{
			ID:       uuid.NewString(),
			Kind:     providers.KindChat,
			Messages: conversation,
			Params:   o.params,
			Pin:      o.pin,
		}

		reply, err := c.balancer.Dispatch(ctx, req, o.retryPolicy)
		if err != nil {
			return "", err
		}

		if o.validator == nil {
			return reply.Text, nil
		}

		outcome := o.validator.Validate(reply.Text)
		if outcome.OK {
			return reply.Text, nil
		}

		lastErr = outcome.ErrorMessage
		lastReply = reply
		conversation = append(conversation,
			providers.Message{Role: providers.RoleAssistant, Content: reply.Text},
			providers.Message{Role: providers.RoleUser, Content: outcome.RetryPromptSuffix},
		)
	}

	return "", &providers.ValidationExhausted{Attempts: maxAttempts, LastError: lastErr, LastReply: lastReply}
}

// Embed returns the embedding vector for a single input text.
func (c *Client) Embed(ctx context.Context, text string, opts ...Option) ([]float64, error) {
	vectors, err := c.EmbedMany(ctx, []string{text}, opts...)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedMany returns embedding vectors for a list of input texts, in order.
//
// Each text is dispatched as its own LogicalRequest rather than one request
// carrying all of them: some families (notably D) accept exactly one input
// per embed call on the wire, and the balancer may route any given text to
// any family that supports embeddings. Per-text dispatch keeps EmbedMany
// correct regardless of which family ends up serving a given text, at the
// cost of the batching a single multi-text call could offer on families
// that do support it.
func (c *Client) EmbedMany(ctx context.Context, texts []string, opts ...Option) ([][]float64, error) {
	o := buildOptions(c.defaultRetryPolicy, c.defaultMaxValidatorRetries, opts)

	vectors := make([][]float64, len(texts))
	errs := make([]error, len(texts))
	done := make(chan int, len(texts))

	for i, text := range texts {
		go func(i int, text string) {
			defer func() { done <- i }()

			req := &providers.LogicalRequest{
				ID:     uuid.NewString(),
				Kind:   providers.KindEmbed,
				Texts:  []string{text},
				Params: o.params,
				Pin:    o.pin,
			}
			reply, err := c.balancer.Dispatch(ctx, req, o.retryPolicy)
			if err != nil {
				errs[i] = err
				return
			}
			if len(reply.Vectors) != 1 {
				errs[i] = &providers.UpstreamFormatError{Cause: fmt.Errorf("expected 1 embedding vector, got %d", len(reply.Vectors))}
				return
			}
			vectors[i] = reply.Vectors[0]
		}(i, text)
	}

	for range texts {
		<-done
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return vectors, nil
}

// BatchResult is one slot of a Batch call's result list: exactly one of
// Text or Err is set.
type BatchResult struct {
	Text string
	Err  error
}

// Batch dispatches every prompt concurrently and returns results index-
// aligned with prompts; a failure occupies its slot rather than aborting
// the whole call. If WithProgress was given, its callback fires after each
// prompt completes with the running completed count.
func (c *Client) Batch(ctx context.Context, prompts []string, opts ...Option) []BatchResult {
	o := buildOptions(c.defaultRetryPolicy, c.defaultMaxValidatorRetries, opts)

	results := make([]BatchResult, len(prompts))
	done := make(chan int, len(prompts))
	var completed int64

	for i, p := range prompts {
		go func(i int, prompt string) {
			text, err := c.Generate(ctx, prompt, opts...)
			results[i] = BatchResult{Text: text, Err: err}
			done <- i
		}(i, p)
	}

	for range prompts {
		<-done
		if o.onProgress != nil {
			o.onProgress(int(atomic.AddInt64(&completed, 1)), len(prompts))
		}
	}
	return results
}

// Stats returns a read-only snapshot of every enabled family's instances.
func (c *Client) Stats() balancer.Stats {
	return c.balancer.Snapshot()
}
