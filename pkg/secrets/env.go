package secrets

import (
	"context"
	"fmt"
	"os"
)

// EnvProvider resolves secrets from the process environment: Get("FOO")
// returns os.Getenv("FOO").
type EnvProvider struct{}

// Get implements Provider.
func (EnvProvider) Get(ctx context.Context, name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("environment variable %q is not set", name)
	}
	return value, nil
}
