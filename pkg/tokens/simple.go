package tokens

import (
	"strings"

	"github.com/relaypath/llmrelay/pkg/providers"
)

// SimpleEstimator is a character-based token estimator: it divides a
// string's length by a model-specific characters-per-token ratio. This is
// not meant to be exact, only good enough to fill TokenUsage when an
// upstream response leaves it at zero.
type SimpleEstimator struct {
	// CharsPerToken maps a model name, or a prefix of one, to its ratio.
	// The key "default" is used when no entry matches.
	CharsPerToken map[string]float64
}

// NewSimpleEstimator returns a SimpleEstimator seeded with the ratios
// observed across the families this module talks to.
func NewSimpleEstimator() *SimpleEstimator {
	return &SimpleEstimator{
		CharsPerToken: map[string]float64{
			"gpt":     4.0,
			"claude":  3.5,
			"gemini":  4.0,
			"default": 4.0,
		},
	}
}

// EstimateText implements Estimator.
func (e *SimpleEstimator) EstimateText(text string, model string) int {
	if text == "" {
		return 0
	}
	ratio := e.ratioFor(model)
	tokens := float64(len(text)) / ratio
	if tokens < 1.0 {
		tokens = 1.0
	}
	return int(tokens + 0.5)
}

// EstimateMessages implements Estimator. It adds a small per-message
// formatting overhead on top of each message's content estimate.
func (e *SimpleEstimator) EstimateMessages(messages []providers.Message, model string) int {
	if len(messages) == 0 {
		return 0
	}
	total := 3 // conversation-level overhead
	for _, msg := range messages {
		total += 3 // role + message framing overhead
		total += e.EstimateText(msg.Content, model)
	}
	return total
}

func (e *SimpleEstimator) ratioFor(model string) float64 {
	if ratio, ok := e.CharsPerToken[model]; ok {
		return ratio
	}
	for prefix, ratio := range e.CharsPerToken {
		if prefix != "default" && strings.HasPrefix(model, prefix) {
			return ratio
		}
	}
	if ratio, ok := e.CharsPerToken["default"]; ok {
		return ratio
	}
	return 4.0
}
