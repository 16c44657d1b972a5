// Package app provides the core service that implements the dependencies
// required by the HTTP API: period filtering, aggregation, ranking, and
// rank-delta bookkeeping over the current dataset.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/aldeia/rankboard/internal/adapters/repository"
	"github.com/aldeia/rankboard/internal/domain/delta"
	"github.com/aldeia/rankboard/internal/domain/model"
	"github.com/aldeia/rankboard/internal/domain/period"
	"github.com/aldeia/rankboard/internal/domain/ranking"
	"github.com/aldeia/rankboard/internal/domain/roster"
	"github.com/aldeia/rankboard/pkg/logger"
	"github.com/aldeia/rankboard/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxLeaderboardLimit = 100
	defaultChartTopN           = 15
)

// LeaderboardEntry is one ranked row served to clients: the aggregate, its
// 1-based rank, and its movement since the last committed cycle.
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	model.BrokerAggregate
	Change model.RankChange `json:"change"`
}

// Service implements the board operations over the current dataset.
//
// The tracker's previous-rank state is the only cross-cycle mutable
// resource; cycleMu serializes refresh cycles so delta reads never
// interleave with a concurrent commit.
type Service struct {
	cycleMu sync.Mutex

	store    repository.Store
	resolver *roster.Resolver
	filter   *period.Filter
	engine   *ranking.Engine
	tracker  *delta.Tracker

	maxLeaderboardLimit int
	chartTopN           int

	// rankings of the last completed cycle; guarded by cycleMu. The tracker
	// baseline always trails this by one cycle so leaderboard reads between
	// refreshes still see the movement the latest data change caused.
	lastRankings *model.Rankings

	mu            sync.RWMutex // guards currentPeriod and lastRefresh
	currentPeriod string
	lastRefresh   time.Time

	logger logger.Logger
}

// New constructs a Service. Collaborators default to production-configured
// instances unless overridden by options.
func New(opts ...Option) *Service {
	s := &Service{
		maxLeaderboardLimit: defaultMaxLeaderboardLimit,
		chartTopN:           defaultChartTopN,
		currentPeriod:       period.All,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.resolver == nil {
		s.resolver = roster.New()
	}
	if s.filter == nil {
		s.filter = period.NewFilter()
	}
	if s.engine == nil {
		s.engine = ranking.New(s.resolver)
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.tracker == nil {
		s.tracker = delta.NewTracker()
	}
	if s.logger == nil {
		s.logger = logger.Named("app")
	}

	return s
}

// ReplaceEvents swaps the dataset wholesale and runs a refresh cycle over
// the newly stored rows.
func (s *Service) ReplaceEvents(ctx context.Context, rows []model.Raw) (int, error) {
	n, err := s.store.Replace(ctx, rows)
	if err != nil {
		return 0, err
	}

	metrics.RecordEventsIngested(n)
	metrics.UpdateDatasetSize(n)
	s.logger.Info(ctx, "dataset replaced", logger.Int("rows", n))

	s.Refresh(ctx)
	return n, nil
}

// ProcessData enriches every stored row (parsed date, resolved team) and
// returns the ones matching the selected period.
func (s *Service) ProcessData(ctx context.Context, selectedPeriod string) []model.Enriched {
	rows := s.store.Snapshot(ctx)

	out := make([]model.Enriched, 0, len(rows))
	for _, row := range rows {
		ev := model.Enriched{
			Raw:        row,
			ParsedDate: period.ParseDate(row.StringField(model.FieldDate)),
			Team:       s.resolver.Team(row.StringField(model.FieldBroker)),
		}
		if s.filter.Include(ev.ParsedDate, selectedPeriod) {
			out = append(out, ev)
		}
	}
	return out
}

// CalculateRankings aggregates the filtered events and returns the three
// sorted views with blended scores.
func (s *Service) CalculateRankings(ctx context.Context, selectedPeriod string) model.Rankings {
	events := s.ProcessData(ctx, selectedPeriod)
	return s.engine.Rankings(s.engine.AggregateBrokers(events))
}

// Leaderboard returns the ranked entries for one ranking type, annotated
// with rank changes against the last committed cycle. Read-only: it never
// commits. limit <= 0 means no cap.
func (s *Service) Leaderboard(ctx context.Context, rankingType, selectedPeriod string, limit int) ([]LeaderboardEntry, error) {
	if limit > s.maxLeaderboardLimit {
		return nil, ErrInvalidLimit
	}

	view := s.CalculateRankings(ctx, selectedPeriod).View(rankingType)
	if limit > 0 && len(view) > limit {
		view = view[:limit]
	}

	entries := make([]LeaderboardEntry, len(view))
	for i, agg := range view {
		rank := i + 1
		entries[i] = LeaderboardEntry{
			Rank:            rank,
			BrokerAggregate: *agg,
			Change:          s.tracker.Change(agg.BrokerName, rank, rankingType),
		}
	}
	return entries, nil
}

// RankOf locates one broker (by canonical or raw name) in a ranking view.
func (s *Service) RankOf(ctx context.Context, brokerName, rankingType, selectedPeriod string) (LeaderboardEntry, error) {
	shortName := s.resolver.ShortName(brokerName)
	view := s.CalculateRankings(ctx, selectedPeriod).View(rankingType)
	for i, agg := range view {
		if agg.BrokerName == shortName {
			rank := i + 1
			return LeaderboardEntry{
				Rank:            rank,
				BrokerAggregate: *agg,
				Change:          s.tracker.Change(agg.BrokerName, rank, rankingType),
			}, nil
		}
	}
	return LeaderboardEntry{}, ErrBrokerNotFound
}

// CalculateTeamKPIs returns per-team KPIs over the filtered events.
func (s *Service) CalculateTeamKPIs(ctx context.Context, selectedPeriod string) map[string]model.TeamKPI {
	return s.engine.AggregateTeams(s.ProcessData(ctx, selectedPeriod))
}

// AvailablePeriods lists the month/year filter options present in the data.
func (s *Service) AvailablePeriods(ctx context.Context) []model.PeriodOption {
	return s.filter.Available(s.store.Snapshot(ctx))
}

// ChartData returns per-broker deposit summaries for chart rendering.
func (s *Service) ChartData(ctx context.Context, selectedPeriod string) []model.ChartPoint {
	return s.engine.ChartData(s.ProcessData(ctx, selectedPeriod), s.chartTopN)
}

// GetRankChange classifies one broker's movement for a ranking type.
func (s *Service) GetRankChange(brokerName string, currentRank int, rankingType string) model.RankChange {
	return s.tracker.Change(brokerName, currentRank, rankingType)
}

// UpdatePreviousRankings commits a ranking snapshot as the new baseline.
func (s *Service) UpdatePreviousRankings(rankings model.Rankings) {
	s.tracker.Commit(rankings)
}

// SetPeriod selects the period used by refresh cycles.
func (s *Service) SetPeriod(selectedPeriod string) {
	s.mu.Lock()
	s.currentPeriod = selectedPeriod
	s.mu.Unlock()
}

// Period returns the currently selected refresh period.
func (s *Service) Period() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPeriod
}

// Refresh runs one full aggregation cycle on the selected period. The
// previous cycle's rankings become the tracker baseline, so reads compare
// the fresh cycle against the one before it. Cycles run to completion;
// concurrent callers queue behind cycleMu.
func (s *Service) Refresh(ctx context.Context) {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	start := time.Now()
	rankings := s.CalculateRankings(ctx, s.Period())

	if s.lastRankings != nil {
		s.tracker.Commit(*s.lastRankings)
		s.recordShifts(rankings)
	} else {
		// First-ever cycle seeds the baseline with itself so the initial
		// render shows no deltas.
		s.tracker.Commit(rankings)
	}
	s.lastRankings = &rankings

	s.mu.Lock()
	s.lastRefresh = time.Now()
	s.mu.Unlock()

	metrics.RecordRefreshCycle(float64(time.Since(start).Milliseconds()))
	metrics.UpdateLastRefresh(float64(time.Now().Unix()))
	metrics.UpdateBrokersRanked(len(rankings.ByValue))
	metrics.UpdateDatasetSize(s.store.Count(ctx))

	s.logger.Debug(ctx, "refresh cycle completed",
		logger.String("period", s.Period()),
		logger.Int("brokers", len(rankings.ByValue)),
		logger.Duration("took", time.Since(start)),
	)
}

// recordShifts reads the fresh cycle's deltas against the committed
// baseline and feeds the movement counters.
func (s *Service) recordShifts(rankings model.Rankings) {
	for _, rankingType := range []string{model.RankingValue, model.RankingActivation, model.RankingGeneral} {
		for i, agg := range rankings.View(rankingType) {
			change := s.tracker.Change(agg.BrokerName, i+1, rankingType)
			if change.Change != 0 {
				metrics.RecordRankShift(rankingType, change.Indicator)
			}
		}
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	ctx := context.Background()

	s.mu.RLock()
	selectedPeriod := s.currentPeriod
	lastRefresh := s.lastRefresh
	s.mu.RUnlock()

	stats := map[string]any{
		"datasetSize": s.store.Count(ctx),
		"period":      selectedPeriod,
		"teams":       s.resolver.Teams(),
	}
	if !lastRefresh.IsZero() {
		stats["lastRefresh"] = lastRefresh.Format(time.RFC3339)
	}
	return stats
}
