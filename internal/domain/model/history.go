package model

// History is the subset of the upstream entry history payload this service
// consumes. Fields not listed here are ignored on decode.
type History struct {
	// Past is nil when the upstream body has no "past" key.
	Past []PastSeason `json:"past"`
}

// PastSeason is one completed season in an entry's history.
type PastSeason struct {
	SeasonName  string `json:"season_name"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}
