package config

// ApplyDefaults fills in values the YAML file is allowed to omit. Per-entry
// defaults (rate_limit) are applied again by providers.NewPool, which is the
// authoritative point since it is also reachable from paths that never go
// through config.Load (e.g. a synthetic single-instance config built from an
// environment variable fallback).
func ApplyDefaults(cfg *Config) {
	if cfg.LLM.Families == nil {
		cfg.LLM.Families = make(map[string][]KeyEntryConfig)
	}

	for i, entries := range cfg.LLM.Families {
		for j, e := range entries {
			if e.RateLimit <= 0 {
				entries[j].RateLimit = 20
			}
		}
		cfg.LLM.Families[i] = entries
	}
}
