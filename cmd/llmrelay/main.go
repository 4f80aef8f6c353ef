// Command llmrelay is a thin CLI over the client facade: it loads a YAML
// configuration file, builds a pool and balancer from it, and exercises
// Chat, Generate, Embed, or Stats from the command line.
//
// Usage:
//
//	# Send a single prompt
//	llmrelay generate "summarize this ticket" --config llmrelay.yaml
//
//	# Send a multi-turn conversation from a JSON file
//	llmrelay chat --config llmrelay.yaml --messages conversation.json
//
//	# Embed one or more lines of text
//	llmrelay embed "first line" "second line" --config llmrelay.yaml
//
//	# Print the current pool snapshot
//	llmrelay stats --config llmrelay.yaml --format json
//
// For complete documentation, see the repository README.
package main

func main() {
	Execute()
}
