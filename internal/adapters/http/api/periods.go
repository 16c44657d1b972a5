// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/aldeia/rankboard/internal/domain/model"
)

// PeriodsDependencies defines the interface for period option listings.
type PeriodsDependencies interface {
	AvailablePeriods(ctx context.Context) []model.PeriodOption
}

// PeriodsHandler handles period listing requests.
type PeriodsHandler struct {
	deps PeriodsDependencies
}

// NewPeriodsHandler creates a new periods handler.
func NewPeriodsHandler(deps PeriodsDependencies) *PeriodsHandler {
	return &PeriodsHandler{deps: deps}
}

// HandleGetPeriods handles GET /periods requests.
func (h *PeriodsHandler) HandleGetPeriods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.AvailablePeriods(r.Context()))
}
