package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relaypath/llmrelay/pkg/client"
	"github.com/relaypath/llmrelay/pkg/cli"
)

var batchCmd = &cobra.Command{
	Use:   "batch [prompt...]",
	Short: "Send several prompts concurrently and print each reply in order",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	c, closeFn, err := buildClient()
	if err != nil {
		return err
	}
	defer closeFn()

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(int64(len(args)))

	opts := applyPin([]client.Option{
		client.WithProgress(func(completed, total int) {
			progress.Update(int64(completed))
		}),
	})
	ctx := cli.SetupSignalHandler()

	results := c.Batch(ctx, args, opts...)
	progress.Finish()

	for i, r := range results {
		if r.Err != nil {
			fmt.Printf("[%d] error: %v\n", i, r.Err)
			continue
		}
		fmt.Printf("[%d] %s\n", i, r.Text)
	}
	return nil
}
