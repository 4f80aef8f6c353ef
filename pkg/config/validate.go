package config

import (
	"fmt"

	"github.com/relaypath/llmrelay/pkg/providers"
)

// Validate checks the structural parts of Config that providers.NewPool
// cannot check on its own: that at least one family is enabled, and that
// every family named in "use" actually has key entries in the file.
func Validate(cfg *Config) error {
	if len(cfg.LLM.Use) == 0 {
		return &providers.ConfigError{Field: "llm.use", Message: "at least one family must be enabled"}
	}

	seen := make(map[string]bool, len(cfg.LLM.Use))
	for _, family := range cfg.LLM.Use {
		if seen[family] {
			return &providers.ConfigError{Field: "llm.use", Message: fmt.Sprintf("family %q listed more than once", family)}
		}
		seen[family] = true

		entries, ok := cfg.LLM.Families[family]
		if !ok || len(entries) == 0 {
			return &providers.ConfigError{Field: fmt.Sprintf("llm.%s", family), Message: "no key entries configured for an enabled family"}
		}
		for i, e := range entries {
			if e.APIKey == "" {
				return &providers.ConfigError{Field: fmt.Sprintf("llm.%s[%d].api_key", family, i), Message: "api_key is required"}
			}
			if e.APIBase == "" {
				return &providers.ConfigError{Field: fmt.Sprintf("llm.%s[%d].api_base", family, i), Message: "api_base is required"}
			}
			if e.Model == "" {
				return &providers.ConfigError{Field: fmt.Sprintf("llm.%s[%d].model", family, i), Message: "model is required"}
			}
		}
	}
	return nil
}
