// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/fpl-tracker/internal/app"
	"github.com/okian/fpl-tracker/internal/domain/model"
	"github.com/okian/fpl-tracker/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// AddTeam runs the add-team action for the raw team ID input.
	AddTeam(ctx context.Context, input string) (service.Result, error)

	// Read operations expose the tracked data.
	Teams() model.TeamsData
	View() service.View
}

// Server wires HTTP routes for the JSON API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	teamsHandler  *TeamsHandler
	tablesHandler *TablesHandler
}

// Option configures a Server.
type Option func(*options)

type options struct {
	logger logger.Logger
}

// WithLogger sets the logger used by the handlers.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := options{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		teamsHandler:  NewTeamsHandler(deps, o.logger),
		tablesHandler: NewTablesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/teams", MetricsMiddleware(s.teamsHandler.HandleTeams, "api_teams"))
	mux.HandleFunc("/api/teams/", MetricsMiddleware(s.teamsHandler.HandleGetTeam, "api_team"))
	mux.HandleFunc("/api/tables", MetricsMiddleware(s.tablesHandler.HandleGetTables, "api_tables"))
}

// addTeamRequest mirrors the OpenAPI schema for POST /api/teams.
type addTeamRequest struct {
	TeamID string `json:"team_id"`
}

type addTeamResponse struct {
	TeamID  model.TeamID    `json:"team_id"`
	Outcome service.Outcome `json:"outcome"`
	Seasons int             `json:"seasons"`
	Message string          `json:"message"`
}

type teamResponse struct {
	TeamID  model.TeamID     `json:"team_id"`
	Seasons model.TeamRecord `json:"seasons"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
