package fpl

import (
	"errors"
	"fmt"
)

// Sentinel kinds for upstream errors.
var (
	ErrEmptyTeamID = errors.New("team id must not be empty")
	ErrTransport   = errors.New("upstream transport failed")
)

// StatusError reports a non-200 response for a team's history.
// Its message is shown to the user as-is.
type StatusError struct {
	TeamID     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to retrieve data for team ID %s. Status code: %d", e.TeamID, e.StatusCode)
}

// ParseError reports a 200 response whose body does not match History.
type ParseError struct {
	TeamID string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode history for team ID %s: %v", e.TeamID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
