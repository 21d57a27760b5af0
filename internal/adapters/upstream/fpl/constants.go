package fpl

const (
	defaultBaseURL   = "https://fantasy.premierleague.com/api"
	defaultUserAgent = "fpl-tracker/1.0"
	historyPath      = "/entry/%s/history/"
	errorBodyLimit   = 512
)
