package teamcli

// Service routes used by the tool.
const (
	healthPath = "/healthz"
	teamsPath  = "/api/teams"
	tablesPath = "/api/tables"
)

// Per-team results.
const (
	resultAdded   = "added"
	resultSkipped = "skipped"
	resultFailed  = "failed"
)

// errorBodyLimit caps how much of an error response is read.
const errorBodyLimit = 4 << 10
