// Package summary projects an upstream entry history into per-season stats.
package summary

import "github.com/okian/fpl-tracker/internal/domain/model"

// Summarize builds a TeamRecord keyed by season name from h.Past.
//
// A nil history, or one without past seasons, yields an empty record.
// Values are copied as-is; a repeated season name keeps the last entry.
func Summarize(h *model.History) model.TeamRecord {
	rec := model.TeamRecord{}
	if h == nil {
		return rec
	}
	for _, past := range h.Past {
		rec[past.SeasonName] = model.SeasonStats{
			TotalPoints: past.TotalPoints,
			Rank:        past.Rank,
		}
	}
	return rec
}
