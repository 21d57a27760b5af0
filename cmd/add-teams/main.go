package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/fpl-tracker/internal/teamcli"
	"github.com/okian/fpl-tracker/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		ids     = flag.String("ids", "", "Comma separated team IDs to add")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log every team's result")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		teamcli.ShowHelp()
		return
	}

	if err := teamcli.SetupLogging(*verbose); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &teamcli.Config{
		BaseURL: *baseURL,
		TeamIDs: teamcli.ParseIDs(*ids),
		Timeout: *timeout,
		Verbose: *verbose,
		Out:     os.Stdout,
		Logger:  logger.Named("add-teams"),
	}

	_, err := teamcli.Run(ctx, config)
	cancel()
	if err != nil {
		_, _ = os.Stderr.WriteString("add-teams failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
