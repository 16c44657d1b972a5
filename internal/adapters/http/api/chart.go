// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/aldeia/rankboard/internal/domain/model"
)

// ChartDependencies defines the interface for chart data queries.
type ChartDependencies interface {
	ChartData(ctx context.Context, selectedPeriod string) []model.ChartPoint
}

// ChartHandler handles chart data requests.
type ChartHandler struct {
	deps ChartDependencies
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(deps ChartDependencies) *ChartHandler {
	return &ChartHandler{deps: deps}
}

// HandleGetChart handles GET /chart?period=P requests.
func (h *ChartHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ChartData(r.Context(), selectedPeriod(r)))
}
