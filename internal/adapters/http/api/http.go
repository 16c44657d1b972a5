// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aldeia/rankboard/internal/app"
	"github.com/aldeia/rankboard/internal/domain/model"
)

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = app.LeaderboardEntry

// Dependencies required by HTTP handlers. An interface bundle keeps the
// handler layer loosely coupled to the service implementation.
type Dependencies interface {
	ReplaceEvents(ctx context.Context, rows []model.Raw) (int, error)
	Leaderboard(ctx context.Context, rankingType, selectedPeriod string, limit int) ([]Entry, error)
	RankOf(ctx context.Context, brokerName, rankingType, selectedPeriod string) (Entry, error)
	CalculateTeamKPIs(ctx context.Context, selectedPeriod string) map[string]model.TeamKPI
	AvailablePeriods(ctx context.Context) []model.PeriodOption
	ChartData(ctx context.Context, selectedPeriod string) []model.ChartPoint
}

// StatsProvider exposes service statistics for the /stats endpoint.
type StatsProvider interface {
	GetStats() map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	eventsHandler      *EventsHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
	teamsHandler       *TeamsHandler
	periodsHandler     *PeriodsHandler
	chartHandler       *ChartHandler
}

// NewServer creates an API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		eventsHandler:      NewEventsHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		rankHandler:        NewRankHandler(deps),
		teamsHandler:       NewTeamsHandler(deps),
		periodsHandler:     NewPeriodsHandler(deps),
		chartHandler:       NewChartHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvents, "events"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleGetTeams, "teams"))
	mux.HandleFunc("/periods", MetricsMiddleware(s.periodsHandler.HandleGetPeriods, "periods"))
	mux.HandleFunc("/chart", MetricsMiddleware(s.chartHandler.HandleGetChart, "chart"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
}

type ackResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
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

// selectedPeriod reads the period query parameter, defaulting to "all".
func selectedPeriod(r *http.Request) string {
	if p := r.URL.Query().Get("period"); p != "" {
		return p
	}
	return "all"
}
