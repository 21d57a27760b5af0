// Package pivot derives the dashboard tables from tracked team data.
package pivot

import (
	"github.com/okian/fpl-tracker/internal/domain/model"
	"github.com/okian/fpl-tracker/internal/domain/types"
)

// Table titles shown on the dashboard.
const (
	PointsTitle = "Total Points by Season"
	RanksTitle  = "Rank by Season"
)

// Points pivots data into TeamID x season -> total points.
func Points(data model.TeamsData) types.Table {
	return Build(data, PointsTitle, func(s model.SeasonStats) int { return s.TotalPoints })
}

// Ranks pivots data into TeamID x season -> overall rank.
func Ranks(data model.TeamsData) types.Table {
	return Build(data, RanksTitle, func(s model.SeasonStats) int { return s.Rank })
}

// Build pivots data using pick to select the cell value. Rows follow
// ascending team ID and columns ascending season label.
func Build(data model.TeamsData, title string, pick func(model.SeasonStats) int) types.Table {
	seasons := data.Seasons()
	table := types.Table{
		Title:   title,
		Seasons: seasons,
		Rows:    make([]types.Row, 0, len(data)),
	}
	for _, id := range data.TeamIDs() {
		rec := data[id]
		row := types.Row{TeamID: string(id), Values: make([]*int, len(seasons))}
		for i, season := range seasons {
			if stats, ok := rec[season]; ok {
				v := pick(stats)
				row.Values[i] = &v
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
