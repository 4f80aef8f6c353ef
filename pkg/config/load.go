package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/relaypath/llmrelay/pkg/providers"
)

var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads path, parses it as YAML, expands ${VAR} references inside
// api_key fields, applies defaults, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	expandAPIKeys(&cfg)
	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// expandAPIKeys replaces every ${VAR} reference inside an api_key field with
// the value of the named environment variable. A reference to an unset
// variable is left untouched; Validate rejects an api_key that ends up empty.
func expandAPIKeys(cfg *Config) {
	for family, entries := range cfg.LLM.Families {
		for i, entry := range entries {
			entries[i].APIKey = expandEnvRefs(entry.APIKey)
			_ = family
		}
	}
}

func expandEnvRefs(s string) string {
	return envRefPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := envRefPattern.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// BuildPool loads path and constructs a ready-to-use provider pool from it.
func BuildPool(path string, adapters map[string]providers.Adapter) (*providers.Pool, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	entries := make(map[string][]providers.KeyEntry, len(cfg.LLM.Families))
	for family, keys := range cfg.LLM.Families {
		converted := make([]providers.KeyEntry, len(keys))
		for i, k := range keys {
			converted[i] = providers.KeyEntry{
				APIKey:    k.APIKey,
				APIBase:   k.APIBase,
				Model:     k.Model,
				RateLimit: k.RateLimit,
			}
		}
		entries[family] = converted
	}

	return providers.NewPool(cfg.LLM.Use, entries, adapters)
}
