// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aldeia/rankboard/internal/adapters/repository"
	"github.com/aldeia/rankboard/internal/domain/model"
)

// EventDependencies defines the interface for dataset ingestion.
type EventDependencies interface {
	ReplaceEvents(ctx context.Context, rows []model.Raw) (int, error)
}

// EventsHandler handles dataset ingestion requests.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// HandlePostEvents handles POST /events. The body is the full raw dataset
// as a JSON array; it replaces whatever was loaded before.
func (h *EventsHandler) HandlePostEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_events"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var rows []model.Raw
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	n, err := h.deps.ReplaceEvents(r.Context(), rows)
	if err != nil {
		if errors.Is(err, repository.ErrCapacityExceeded) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Rows: n})
}
