package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/relaypath/llmrelay/pkg/cli"
)

var statsFlags struct {
	format string
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a snapshot of every enabled provider instance",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVarP(&statsFlags.format, "format", "f", "text", "output format: text, json")
}

func runStats(cmd *cobra.Command, args []string) error {
	c, closeFn, err := buildClient()
	if err != nil {
		return err
	}
	defer closeFn()

	snapshot := c.Stats()

	formatter := cli.NewFormatter(cli.OutputFormat(statsFlags.format))
	if err := formatter.FormatTo(os.Stdout, snapshot); err != nil {
		return cli.NewCommandError("stats", err)
	}
	return nil
}
