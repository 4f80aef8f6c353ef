package client

import (
	"github.com/relaypath/llmrelay/pkg/balancer"
	"github.com/relaypath/llmrelay/pkg/providers"
	"github.com/relaypath/llmrelay/pkg/validator"
)

// DefaultMaxValidatorRetries is applied when Client is constructed without
// WithMaxValidatorRetries.
const DefaultMaxValidatorRetries = 3

type callOptions struct {
	retryPolicy         balancer.RetryPolicy
	pin                 string
	validator           validator.Validator
	maxValidatorRetries int
	params              providers.Params
	onProgress          func(completed, total int)
}

// Option configures a single Chat/Generate/Embed/Batch call.
type Option func(*callOptions)

// WithRetryPolicy overrides the call's retry policy (default RetryFixed).
func WithRetryPolicy(p balancer.RetryPolicy) Option {
	return func(o *callOptions) { o.retryPolicy = p }
}

// WithProvider restricts selection to one family for this call.
func WithProvider(family string) Option {
	return func(o *callOptions) { o.pin = family }
}

// WithValidator attaches a validator to a Chat/Generate call. Ignored by
// Embed, which is never validated.
func WithValidator(v validator.Validator) Option {
	return func(o *callOptions) { o.validator = v }
}

// WithMaxValidatorRetries overrides the default validator retry cap for
// this call.
func WithMaxValidatorRetries(n int) Option {
	return func(o *callOptions) { o.maxValidatorRetries = n }
}

// WithTemperature sets the recognized temperature parameter.
func WithTemperature(t float64) Option {
	return func(o *callOptions) { o.params.Temperature = &t }
}

// WithMaxTokens sets the recognized max_tokens parameter.
func WithMaxTokens(n int) Option {
	return func(o *callOptions) { o.params.MaxTokens = &n }
}

// WithTopP sets the recognized top_p parameter.
func WithTopP(p float64) Option {
	return func(o *callOptions) { o.params.TopP = &p }
}

// WithEncodingFormat sets the recognized encoding_format parameter for Embed.
func WithEncodingFormat(format string) Option {
	return func(o *callOptions) { o.params.EncodingFormat = format }
}

// WithProgress registers a callback invoked after each prompt in a Batch
// call completes, reporting how many of the total have finished so far.
// Ignored by Chat/Generate/Embed, which have nothing to report progress on.
func WithProgress(f func(completed, total int)) Option {
	return func(o *callOptions) { o.onProgress = f }
}

// WithExtra adds a vendor-specific parameter, carried in Params.Extra; the
// OpenAI-shaped chat body of families A, B, E and F forwards it as a
// top-level field.
func WithExtra(key string, value any) Option {
	return func(o *callOptions) {
		if o.params.Extra == nil {
			o.params.Extra = make(map[string]any)
		}
		o.params.Extra[key] = value
	}
}

func buildOptions(defaultRetry balancer.RetryPolicy, defaultMaxValidatorRetries int, opts []Option) callOptions {
	o := callOptions{
		retryPolicy:         defaultRetry,
		maxValidatorRetries: defaultMaxValidatorRetries,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
