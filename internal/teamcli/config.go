package teamcli

import (
	"io"
	"strings"
	"time"

	"github.com/okian/fpl-tracker/pkg/logger"
)

// Config holds configuration for one add-teams run.
type Config struct {
	BaseURL string        // Base URL of the tracker service
	TeamIDs []string      // Team IDs to add, in order
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every response
	Out     io.Writer     // Where the tables are printed
	Logger  logger.Logger // Progress and summary logging
}

// Stats holds run statistics.
type Stats struct {
	Requested int
	Added     int
	Skipped   int
	Failed    int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// ParseIDs splits a comma separated list of team IDs, dropping blanks and
// repeats while keeping the first-seen order.
func ParseIDs(raw string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
