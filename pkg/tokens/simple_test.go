package tokens

import (
	"testing"

	"github.com/relaypath/llmrelay/pkg/providers"
)

func TestSimpleEstimator_EstimateText(t *testing.T) {
	e := NewSimpleEstimator()

	if got := e.EstimateText("", "gpt-4"); got != 0 {
		t.Fatalf("expected 0 tokens for empty text, got %d", got)
	}
	if got := e.EstimateText("a", "gpt-4"); got != 1 {
		t.Fatalf("expected a minimum of 1 token, got %d", got)
	}

	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}
	if got := e.EstimateText(string(long), "gpt-4"); got != 100 {
		t.Fatalf("expected ~100 tokens at 4 chars/token, got %d", got)
	}
}

func TestSimpleEstimator_ModelPrefixMatch(t *testing.T) {
	e := NewSimpleEstimator()
	if got := e.ratioFor("claude-3-opus"); got != 3.5 {
		t.Fatalf("expected claude prefix match, got %v", got)
	}
	if got := e.ratioFor("unknown-model"); got != 4.0 {
		t.Fatalf("expected default fallback, got %v", got)
	}
}

func TestSimpleEstimator_EstimateMessages(t *testing.T) {
	e := NewSimpleEstimator()
	messages := []providers.Message{
		{Role: providers.RoleUser, Content: "hello"},
		{Role: providers.RoleAssistant, Content: "hi there"},
	}
	got := e.EstimateMessages(messages, "gpt-4")
	if got <= 0 {
		t.Fatalf("expected a positive estimate, got %d", got)
	}

	if got2 := e.EstimateMessages(nil, "gpt-4"); got2 != 0 {
		t.Fatalf("expected 0 for no messages, got %d", got2)
	}
}
