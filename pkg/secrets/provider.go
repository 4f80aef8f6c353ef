package secrets

import "context"

// Provider resolves a named secret to its current value.
type Provider interface {
	// Get resolves name to its current value.
	Get(ctx context.Context, name string) (string, error)
}
