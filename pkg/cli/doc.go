/*
Package cli provides command-line interface utilities shared by the
llmrelay command.

The cli package includes output formatters, progress reporters, and common CLI
helpers used by the llmrelay command.

Output Formatting:

The cli package supports text and JSON output for displaying command
results. Text output goes through fmt's %v verb, so any result type that
implements fmt.Stringer (balancer.Stats does) renders as its own report
instead of a bare struct dump:

	formatter := cli.NewFormatter(cli.FormatJSON)
	data := MyCommandResult{...}
	if err := formatter.FormatTo(os.Stdout, data); err != nil {
		return err
	}

Progress Reporting:

For long-running operations, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stdout)
	progress.Start(totalItems)
	for i := 0; i < totalItems; i++ {
		// Do work
		progress.Update(i + 1)
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
