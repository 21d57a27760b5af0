// Package types contains common types used across the application
package types

// Table is a pivoted view: one row per team, one column per season.
type Table struct {
	Title   string   `json:"title"`
	Seasons []string `json:"seasons"`
	Rows    []Row    `json:"rows"`
}

// Row holds one team's values aligned with Table.Seasons.
// A nil value means the team has no stats for that season.
type Row struct {
	TeamID string `json:"team_id"`
	Values []*int `json:"values"`
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}
