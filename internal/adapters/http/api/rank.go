// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aldeia/rankboard/internal/app"
	"github.com/aldeia/rankboard/internal/domain/model"
)

// RankDependencies defines the interface for single-broker rank lookups.
type RankDependencies interface {
	RankOf(ctx context.Context, brokerName, rankingType, selectedPeriod string) (Entry, error)
}

// RankHandler handles rank requests.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{broker}?type=T&period=P requests.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rank"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	broker := strings.TrimPrefix(r.URL.Path, "/rank/")
	if broker == "" || strings.Contains(broker, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	rankingType := r.URL.Query().Get("type")
	if rankingType == "" {
		rankingType = model.RankingValue
	}
	if !validRankingType(rankingType) {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	entry, err := h.deps.RankOf(r.Context(), broker, rankingType, selectedPeriod(r))
	if err != nil {
		if errors.Is(err, app.ErrBrokerNotFound) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
