package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/fpl-tracker/internal/app"
	"github.com/okian/fpl-tracker/internal/domain/model"
	"github.com/okian/fpl-tracker/pkg/logger"
)

// maxRequestBody caps the POST /api/teams body.
const maxRequestBody = 1 << 10

// TeamsDependencies defines the operations the teams handler needs.
type TeamsDependencies interface {
	AddTeam(ctx context.Context, input string) (service.Result, error)
	Teams() model.TeamsData
}

// TeamsHandler handles /api/teams requests.
type TeamsHandler struct {
	deps   TeamsDependencies
	logger logger.Logger
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamsDependencies, l logger.Logger) *TeamsHandler {
	if l == nil {
		l = logger.Nop()
	}
	return &TeamsHandler{deps: deps, logger: l}
}

// HandleTeams dispatches GET and POST /api/teams.
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Teams())
	case http.MethodPost:
		h.handlePostTeam(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *TeamsHandler) handlePostTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_team"
	var req addTeamRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.AddTeam(r.Context(), req.TeamID)
	if err != nil {
		h.writeActionError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, addTeamResponse{
		TeamID:  res.TeamID,
		Outcome: res.Outcome,
		Seasons: res.Seasons,
		Message: res.Message(),
	})
}

// writeActionError maps an add-team failure to its status and error code.
// Validation and upstream failures carry the same text the dashboard shows.
func (h *TeamsHandler) writeActionError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, service.ErrNotStarted) {
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	switch service.Classify(err) {
	case service.KindValidation:
		writeError(w, http.StatusBadRequest, "validation_error", errors.New(service.UserMessage(err)))
	case service.KindUpstream:
		writeError(w, http.StatusBadGateway, "upstream_error", errors.New(service.UserMessage(err)))
	default:
		RequestLogger(r.Context(), h.logger).Error(r.Context(), "add team failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// HandleGetTeam handles GET /api/teams/{team_id} requests.
func (h *TeamsHandler) HandleGetTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_team"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/teams/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	rec, ok := h.deps.Teams()[model.TeamID(id)]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, teamResponse{TeamID: model.TeamID(id), Seasons: rec})
}
