// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/aldeia/rankboard/internal/app"
	"github.com/aldeia/rankboard/internal/domain/model"
)

// LeaderboardDependencies defines the interface for leaderboard queries.
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, rankingType, selectedPeriod string, limit int) ([]Entry, error)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetLeaderboard handles GET /leaderboard?type=T&period=P&limit=N.
// type defaults to "value", period to "all", and limit to no cap.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
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

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	entries, err := h.deps.Leaderboard(r.Context(), rankingType, selectedPeriod(r), limit)
	if err != nil {
		if errors.Is(err, app.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, "limit_exceeded", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func validRankingType(t string) bool {
	switch t {
	case model.RankingValue, model.RankingActivation, model.RankingGeneral:
		return true
	default:
		return false
	}
}
