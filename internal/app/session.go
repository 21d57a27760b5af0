package service

import "github.com/okian/fpl-tracker/internal/domain/model"

// State is the dashboard's observable state.
type State string

// Dashboard states.
const (
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
)

// Session is the dashboard's state: every tracked team and its seasons.
// A Session is a value; WithTeam returns a new one and never mutates the
// receiver, so a failed action can simply keep the previous Session.
type Session struct {
	teams model.TeamsData
}

// NewSession seeds a session from data. data is copied.
func NewSession(data model.TeamsData) Session {
	return Session{teams: data.Clone()}
}

// WithTeam returns a session where id maps to rec, replacing any previous
// record for id.
func (s Session) WithTeam(id model.TeamID, rec model.TeamRecord) Session {
	next := s.teams.Clone()
	next[id] = rec.Clone()
	return Session{teams: next}
}

// Teams returns a copy of the tracked data.
func (s Session) Teams() model.TeamsData {
	return s.teams.Clone()
}

// Len returns the number of tracked teams.
func (s Session) Len() int {
	return len(s.teams)
}

// State reports whether any team is tracked.
func (s Session) State() State {
	if len(s.teams) == 0 {
		return StateEmpty
	}
	return StatePopulated
}
