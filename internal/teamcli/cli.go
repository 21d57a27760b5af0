package teamcli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/okian/fpl-tracker/pkg/logger"
)

// SetupLogging initializes the logger on stderr so stdout carries only the
// tables. Verbose enables debug output.
func SetupLogging(verbose bool) error {
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		logger.SetLevel(slog.LevelDebug)
	}
	return nil
}

// ShowHelp prints usage information for the add-teams tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`FPL Tracker Add-Teams Tool
==========================

Adds team IDs to a running tracker service, then prints the points and
rank tables.

Usage:
  go run ./cmd/add-teams -ids 12345,67890 [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -ids string
        Comma separated team IDs to add
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Log every team's result
  -help
        Show this help message

Examples:
  # Add two teams to a local tracker
  go run ./cmd/add-teams -ids 12345,67890

  # Point at another instance
  go run ./cmd/add-teams -url http://tracker:9080 -ids 12345 -verbose
`)
}
