package tokens

import "github.com/relaypath/llmrelay/pkg/providers"

// Estimator produces an approximate token count when a provider's response
// does not report one.
type Estimator interface {
	// EstimateText estimates the token count of a single string.
	EstimateText(text string, model string) int

	// EstimateMessages estimates the prompt token count of a conversation.
	EstimateMessages(messages []providers.Message, model string) int
}
