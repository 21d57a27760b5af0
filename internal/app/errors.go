package service

import (
	"errors"

	"github.com/okian/fpl-tracker/internal/adapters/upstream/fpl"
)

// User-facing messages.
const (
	MsgEmptyTeamID = "Please enter a valid team ID."
	MsgNoData      = "No team data available. Please add a team ID."
)

// Sentinel kinds for service errors.
var (
	ErrEmptyTeamID = errors.New("team id is required")
	ErrNotStarted  = errors.New("service not started")
)

// ErrorKind groups action errors by how the dashboard reports them.
type ErrorKind int

// Error kinds.
const (
	KindNone ErrorKind = iota
	// KindValidation: bad input, shown inline, no state change.
	KindValidation
	// KindUpstream: upstream answered with a non-200 status, shown inline.
	KindUpstream
	// KindFatal: transport, decode or persistence failure.
	KindFatal
)

// Classify maps an error returned by AddTeam or Apply to its kind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyTeamID):
		return KindValidation
	}
	if _, ok := fpl.AsStatusError(err); ok {
		return KindUpstream
	}
	return KindFatal
}

// UserMessage returns the inline message for validation and upstream errors,
// and the raw error text otherwise.
func UserMessage(err error) string {
	switch Classify(err) {
	case KindNone:
		return ""
	case KindValidation:
		return MsgEmptyTeamID
	case KindUpstream:
		se, _ := fpl.AsStatusError(err)
		return se.Error()
	default:
		return err.Error()
	}
}
