package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relaypath/llmrelay/pkg/cli"
)

var embedCmd = &cobra.Command{
	Use:   "embed [text...]",
	Short: "Embed one or more lines of text and print the vectors as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	c, closeFn, err := buildClient()
	if err != nil {
		return err
	}
	defer closeFn()

	opts := applyPin(nil)
	ctx := cli.SetupSignalHandler()

	vectors, err := c.EmbedMany(ctx, args, opts...)
	if err != nil {
		return cli.NewCommandError("embed", err)
	}

	out, err := json.MarshalIndent(vectors, "", "  ")
	if err != nil {
		return cli.NewCommandError("embed", err)
	}
	fmt.Println(string(out))
	return nil
}
