package api

import (
	"net/http"

	service "github.com/okian/fpl-tracker/internal/app"
)

// TablesDependencies defines the interface for table reads.
type TablesDependencies interface {
	View() service.View
}

// TablesHandler handles tables requests.
type TablesHandler struct {
	deps TablesDependencies
}

// NewTablesHandler creates a new tables handler.
func NewTablesHandler(deps TablesDependencies) *TablesHandler {
	return &TablesHandler{deps: deps}
}

// HandleGetTables handles GET /api/tables requests and returns both pivoted
// tables derived from the current session.
func (h *TablesHandler) HandleGetTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.View())
}
