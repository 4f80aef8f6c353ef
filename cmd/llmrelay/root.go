package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	pinFlag string
)

var rootCmd = &cobra.Command{
	Use:   "llmrelay",
	Short: "llmrelay - client-side load-balanced LLM gateway",
	Long: `llmrelay fans requests out across a pool of provider instances,
picking the least-loaded healthy one and retrying around failures.

It speaks six wire formats (OpenAI-compatible, Azure-style, Anthropic-style,
Gemini-style, and two other OpenAI-compatible variants) behind one interface:
chat, generate, embed, and stats.

For more information, see the repository README.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "llmrelay.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&pinFlag, "pin", "", "pin the request to a single family (e.g. A)")
}
