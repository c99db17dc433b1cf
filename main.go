// schedctl is the CLI entry point for the neurosurgery resident
// scheduling engine, grounded on the teacher's main.go: configure a
// JSON slog handler as the default logger, start the metrics endpoint,
// then hand off — here to a cobra command tree instead of a single
// reconcile loop, since each schedctl invocation runs exactly one
// engine operation and exits rather than polling forever.
package main

import (
	"log/slog"
	"os"

	"github.com/neurosx/schedctl/internal/metrics"

	"github.com/neurosx/schedctl/cmd"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	metrics.Serve(":9090")

	if err := cmd.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
