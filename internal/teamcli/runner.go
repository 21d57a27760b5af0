// Package teamcli adds a list of team IDs to a running tracker service and
// prints the resulting tables.
package teamcli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/okian/fpl-tracker/pkg/logger"
)

// Sentinel errors for a run.
var (
	ErrNoTeamIDs   = errors.New("no team IDs given")
	ErrTeamsFailed = errors.New("some teams could not be added")
)

// Run adds every configured team, one at a time, then prints both tables.
// It returns ErrTeamsFailed when any team failed; the tables are still printed.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	if len(config.TeamIDs) == 0 {
		return nil, ErrNoTeamIDs
	}
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	base := strings.TrimSuffix(config.BaseURL, "/")
	log := config.Logger
	if log == nil {
		log = logger.Nop()
	}
	client := newHTTPClient(config.Timeout)

	stats := &Stats{Requested: len(config.TeamIDs), StartTime: time.Now()}

	log.Info(ctx, "adding teams",
		logger.String("baseURL", base),
		logger.Int("teams", len(config.TeamIDs)),
		logger.String("timeout", config.Timeout.String()))

	if err := checkServiceHealth(ctx, client, base+healthPath); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	for _, id := range config.TeamIDs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		result, msg := addTeam(ctx, client, base+teamsPath, id)
		switch result {
		case resultAdded:
			stats.Added++
		case resultSkipped:
			stats.Skipped++
		default:
			stats.Failed++
		}
		fields := []logger.Field{logger.String("team_id", id), logger.String("result", result), logger.String("message", msg)}
		if result == resultFailed {
			log.Warn(ctx, "team not added", fields...)
		} else if config.Verbose {
			log.Info(ctx, "team processed", fields...)
		}
	}

	view, err := fetchTables(ctx, client, base+tablesPath)
	if err != nil {
		return stats, err
	}
	if view.Points.Empty() {
		if _, err := fmt.Fprintln(out, "No team data available."); err != nil {
			return stats, err
		}
	} else {
		if err := printTable(out, view.Points); err != nil {
			return stats, err
		}
		if err := printTable(out, view.Ranks); err != nil {
			return stats, err
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrTeamsFailed, stats.Failed, stats.Requested)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, url string) error {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	// The service answers with Prometheus metrics; any 200 is healthy.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	return nil
}

// displayFinalStats logs the run's counts.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	log.Info(ctx, "final statistics",
		logger.Int("requested", stats.Requested),
		logger.Int("added", stats.Added),
		logger.Int("skipped", stats.Skipped),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration))
}
