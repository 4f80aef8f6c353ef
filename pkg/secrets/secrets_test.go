package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEnvProvider_GetReturnsValue(t *testing.T) {
	os.Setenv("LLMRELAY_TEST_SECRET", "shh")
	defer os.Unsetenv("LLMRELAY_TEST_SECRET")

	p := EnvProvider{}
	value, err := p.Get(context.Background(), "LLMRELAY_TEST_SECRET")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "shh" {
		t.Fatalf("expected %q, got %q", "shh", value)
	}
}

func TestEnvProvider_GetMissingIsError(t *testing.T) {
	p := EnvProvider{}
	if _, err := p.Get(context.Background(), "LLMRELAY_TEST_SECRET_UNSET"); err == nil {
		t.Fatal("expected an error for an unset variable")
	}
}

func TestFileProvider_ReadsInitialValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api_key")
	if err := os.WriteFile(path, []byte("sk-initial\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("NewFileProvider: %v", err)
	}
	value, err := p.Get(context.Background(), "")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "sk-initial" {
		t.Fatalf("expected trimmed initial value, got %q", value)
	}
}

func TestFileProvider_WatchEmitsRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api_key")
	if err := os.WriteFile(path, []byte("sk-old"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("NewFileProvider: %v", err)
	}
	if err := p.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer p.Close()

	if err := os.WriteFile(path, []byte("sk-new"), 0o600); err != nil {
		t.Fatalf("WriteFile rotate: %v", err)
	}

	select {
	case got := <-p.Rotations:
		if got != "sk-new" {
			t.Fatalf("expected rotated value %q, got %q", "sk-new", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rotation")
	}

	value, err := p.Get(context.Background(), "")
	if err != nil {
		t.Fatalf("Get after rotation: %v", err)
	}
	if value != "sk-new" {
		t.Fatalf("expected Get to reflect the rotated value, got %q", value)
	}
}
