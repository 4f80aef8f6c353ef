package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/relaypath/llmrelay/pkg/providers"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "llmrelay.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_AppliesRateLimitDefault(t *testing.T) {
	path := writeConfig(t, `
llm:
  use: ["A"]
  A:
    - { api_key: "k1", api_base: "https://api.example.com", model: "m1" }
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.LLM.Families["A"][0].RateLimit; got != 20 {
		t.Fatalf("expected default rate_limit 20, got %d", got)
	}
}

func TestLoad_ExpandsEnvRefInAPIKey(t *testing.T) {
	os.Setenv("LLMRELAY_TEST_KEY", "sk-from-env")
	defer os.Unsetenv("LLMRELAY_TEST_KEY")

	path := writeConfig(t, `
llm:
  use: ["A"]
  A:
    - { api_key: "${LLMRELAY_TEST_KEY}", api_base: "https://api.example.com", model: "m1" }
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.LLM.Families["A"][0].APIKey; got != "sk-from-env" {
		t.Fatalf("expected expanded api_key, got %q", got)
	}
}

func TestLoad_MissingAPIBaseFailsValidation(t *testing.T) {
	path := writeConfig(t, `
llm:
  use: ["A"]
  A:
    - { api_key: "k1", model: "m1" }
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected a validation error for a missing api_base")
	}
}

func TestLoad_UseAcceptsCommaSeparatedScalar(t *testing.T) {
	path := writeConfig(t, `
llm:
  use: A, D
  A:
    - { api_key: "k1", api_base: "https://api.example.com", model: "m1" }
  D:
    - { api_key: "k2", api_base: "https://api.example.com", model: "m2" }
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := []string(cfg.LLM.Use); len(got) != 2 || got[0] != "A" || got[1] != "D" {
		t.Fatalf("expected use [A D], got %v", got)
	}
}

func TestLoad_UnusedFamilyNotRequired(t *testing.T) {
	path := writeConfig(t, `
llm:
  use: ["A"]
  A:
    - { api_key: "k1", api_base: "https://api.example.com", model: "m1" }
  B: []
`)
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestBuildPool_ConstructsInstancesFromFile(t *testing.T) {
	path := writeConfig(t, `
llm:
  use: ["A"]
  A:
    - { api_key: "k1", api_base: "https://api.example.com", model: "m1", rate_limit: 5 }
    - { api_key: "k2", api_base: "https://api.example.com", model: "m2" }
`)
	pool, err := BuildPool(path, providers.DefaultAdapters())
	if err != nil {
		t.Fatalf("BuildPool: %v", err)
	}
	instances := pool.Instances("A")
	if len(instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(instances))
	}
}
