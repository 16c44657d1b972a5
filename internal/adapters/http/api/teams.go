// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/aldeia/rankboard/internal/domain/model"
)

// TeamsDependencies defines the interface for team KPI queries.
type TeamsDependencies interface {
	CalculateTeamKPIs(ctx context.Context, selectedPeriod string) map[string]model.TeamKPI
}

// TeamsHandler handles team KPI requests.
type TeamsHandler struct {
	deps TeamsDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamsDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleGetTeams handles GET /teams?period=P requests.
func (h *TeamsHandler) HandleGetTeams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.CalculateTeamKPIs(r.Context(), selectedPeriod(r)))
}
