// Package site serves the dashboard page: the add-team form and the two
// pivoted tables.
package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/okian/fpl-tracker/internal/adapters/http/api"
	service "github.com/okian/fpl-tracker/internal/app"
	"github.com/okian/fpl-tracker/pkg/logger"
)

// Page texts.
const (
	PageTitle = "Fantasy Premier League Team Tracker"
	formField = "team_id"
)

// Error constants.
var (
	ErrRender = errors.New("dashboard render failed")
)

// Tracker is what the dashboard needs from the controller.
type Tracker interface {
	AddTeam(ctx context.Context, input string) (service.Result, error)
	View() service.View
}

// Handler renders the dashboard.
type Handler struct {
	tracker Tracker
	logger  logger.Logger
}

// NewHandler creates a dashboard handler.
func NewHandler(tracker Tracker, l logger.Logger) *Handler {
	if l == nil {
		l = logger.Nop()
	}
	return &Handler{tracker: tracker, logger: l}
}

// Register attaches the dashboard routes to mux.
func Register(_ context.Context, mux *http.ServeMux, tracker Tracker, l logger.Logger) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewHandler(tracker, l)
	mux.HandleFunc("/", api.MetricsMiddleware(h.HandleRoot, "dashboard"))
	mux.HandleFunc("/teams", api.MetricsMiddleware(h.HandleAddTeam, "add_team"))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

// page is the template data for the dashboard.
type page struct {
	Title       string
	Input       string
	Error       string
	Notice      string
	Placeholder string
	View        service.View
}

// Empty reports whether the placeholder replaces the tables.
func (p page) Empty() bool {
	return p.View.State == service.StateEmpty
}

// HandleRoot handles GET / requests.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, http.StatusOK, page{})
}

// HandleAddTeam handles POST /teams, the "Add Team ID" form action.
// Validation and upstream failures re-render the page with an inline
// message; any other failure is logged and answered with a bare 500.
func (h *Handler) HandleAddTeam(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	input := r.PostFormValue(formField)

	res, err := h.tracker.AddTeam(r.Context(), input)
	switch service.Classify(err) {
	case service.KindNone:
		h.render(w, r, http.StatusOK, page{Notice: res.Message()})
	case service.KindValidation:
		h.render(w, r, http.StatusBadRequest, page{Input: input, Error: service.UserMessage(err)})
	case service.KindUpstream:
		h.render(w, r, http.StatusBadGateway, page{Input: input, Error: service.UserMessage(err)})
	default:
		api.RequestLogger(r.Context(), h.logger).Error(r.Context(), "add team failed",
			logger.String("input", input), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, p page) {
	p.Title = PageTitle
	p.Placeholder = service.MsgNoData
	p.View = h.tracker.View()

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, p); err != nil {
		api.RequestLogger(r.Context(), h.logger).Error(r.Context(), "render dashboard",
			logger.Error(errors.Join(ErrRender, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
