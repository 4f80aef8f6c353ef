package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relaypath/llmrelay/pkg/cli"
	"github.com/relaypath/llmrelay/pkg/providers"
)

var chatFlags struct {
	messagesPath string
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Send a multi-turn conversation loaded from a JSON file and print the reply",
	Long: `Send a multi-turn conversation and print the assistant's reply.

The --messages file must contain a JSON array of {"role": "...", "content": "..."}
objects, e.g.:

  [
    {"role": "system", "content": "You are terse."},
    {"role": "user", "content": "What is the capital of France?"}
  ]`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatFlags.messagesPath, "messages", "m", "", "path to a JSON file of chat messages (required)")
	chatCmd.MarkFlagRequired("messages")
}

func runChat(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(chatFlags.messagesPath)
	if err != nil {
		return cli.NewCommandError("chat", fmt.Errorf("failed to read messages file: %w", err))
	}

	var messages []providers.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return cli.NewCommandError("chat", fmt.Errorf("failed to parse messages file: %w", err))
	}

	c, closeFn, err := buildClient()
	if err != nil {
		return err
	}
	defer closeFn()

	opts := applyPin(nil)
	ctx := cli.SetupSignalHandler()

	text, err := c.Chat(ctx, messages, opts...)
	if err != nil {
		return cli.NewCommandError("chat", err)
	}
	fmt.Println(text)
	return nil
}
