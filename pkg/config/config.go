package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure: a single top-level "llm" map
// naming the enabled families and, per family, the key entries to build
// instances from.
type Config struct {
	LLM LLMConfig `yaml:"llm"`
}

// LLMConfig names which families are active and carries their key entries.
// Use is the declared "use" list; Families entries for a family that does
// not appear in Use are loaded but never selected.
type LLMConfig struct {
	// Use lists the family tags that are enabled for selection, e.g. ["A", "C"].
	Use FamilyList `yaml:"use"`

	// Families holds each family's key entries, keyed by family tag. Entries
	// for a family not listed in Use are parsed but ignored at pool build time.
	Families map[string][]KeyEntryConfig `yaml:",inline"`
}

// FamilyList is the "use" field. It accepts either a YAML sequence
// (use: ["A", "D"]) or a single scalar, which may itself be a
// comma-separated list (use: "A, D" or the bare scalar use: A).
type FamilyList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *FamilyList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		var list []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		*f = list
		return nil
	}

	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*f = list
	return nil
}

// KeyEntryConfig is one (api_key, api_base, model, rate_limit) record as it
// appears in the YAML file, before defaults are applied.
type KeyEntryConfig struct {
	APIKey    string `yaml:"api_key"`
	APIBase   string `yaml:"api_base"`
	Model     string `yaml:"model"`
	RateLimit int    `yaml:"rate_limit"`
}
