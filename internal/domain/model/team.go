// Package model contains domain models passed between layers.
package model

import (
	"maps"
	"slices"
)

// TeamID identifies a fantasy team. It is used verbatim in the upstream
// request path and as the key of TeamsData.
type TeamID string

// SeasonStats holds a team's aggregate totals for one season.
// The JSON names match the persisted team_data.json layout.
type SeasonStats struct {
	TotalPoints int `json:"Total Points"`
	Rank        int `json:"Rank"`
}

// TeamRecord maps a season label (e.g. "2022/23") to that season's stats.
type TeamRecord map[string]SeasonStats

// Clone returns an independent copy of the record.
func (r TeamRecord) Clone() TeamRecord {
	if r == nil {
		return TeamRecord{}
	}
	return maps.Clone(r)
}

// Seasons returns the record's season labels in ascending order.
func (r TeamRecord) Seasons() []string {
	return slices.Sorted(maps.Keys(r))
}

// TeamsData is the whole tracked state: every team ever added and its seasons.
type TeamsData map[TeamID]TeamRecord

// Clone returns a deep copy so callers can mutate without touching the source.
func (d TeamsData) Clone() TeamsData {
	out := make(TeamsData, len(d))
	for id, rec := range d {
		out[id] = rec.Clone()
	}
	return out
}

// TeamIDs returns the tracked team IDs in ascending order.
func (d TeamsData) TeamIDs() []TeamID {
	return slices.Sorted(maps.Keys(d))
}

// Seasons returns the union of season labels across all teams, ascending.
func (d TeamsData) Seasons() []string {
	seen := make(map[string]struct{})
	for _, rec := range d {
		for season := range rec {
			seen[season] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// SeasonCount returns the number of (team, season) cells held.
func (d TeamsData) SeasonCount() int {
	n := 0
	for _, rec := range d {
		n += len(rec)
	}
	return n
}

// Equal reports whether two TeamsData values hold the same teams and stats.
func (d TeamsData) Equal(other TeamsData) bool {
	return maps.EqualFunc(d, other, func(a, b TeamRecord) bool {
		return maps.Equal(a, b)
	})
}
