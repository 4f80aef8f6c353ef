package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relaypath/llmrelay/pkg/cli"
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Send a single prompt and print the reply",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	c, closeFn, err := buildClient()
	if err != nil {
		return err
	}
	defer closeFn()

	opts := applyPin(nil)
	ctx := cli.SetupSignalHandler()

	text, err := c.Generate(ctx, args[0], opts...)
	if err != nil {
		return cli.NewCommandError("generate", err)
	}
	fmt.Println(text)
	return nil
}
