// Package delta tracks rank movement between consecutive refresh cycles.
//
// A Tracker holds one previous-rank map per ranking type, always exactly one
// cycle back. It is an explicit state object rather than package state so
// independent boards can coexist and tests run in isolation. Callers must
// serialize cycles: read all changes for a cycle, then Commit once.
package delta

import (
	"sync"

	"github.com/aldeia/rankboard/internal/domain/model"
)

// Movement indicators and their presentation classes.
const (
	indicatorUp     = "up"
	indicatorDown   = "down"
	indicatorStable = "stable"

	classUp     = "rank-up"
	classDown   = "rank-down"
	classStable = "rank-stable"
)

// Tracker remembers each broker's rank per ranking type as of the last
// committed cycle.
type Tracker struct {
	mu       sync.Mutex
	previous map[string]map[string]int // ranking type -> short name -> 1-based rank
}

// NewTracker creates an empty Tracker. Until the first Commit every broker
// reports as new.
func NewTracker() *Tracker {
	return &Tracker{
		previous: make(map[string]map[string]int),
	}
}

// Change classifies a broker's movement for one ranking type. Lower rank is
// better; "down" changes report the magnitude of the regression, never a
// negative number.
func (t *Tracker) Change(brokerName string, currentRank int, rankingType string) model.RankChange {
	t.mu.Lock()
	defer t.mu.Unlock()

	previousRank, ok := t.previous[rankingType][brokerName]
	if !ok {
		return model.RankChange{Indicator: indicatorStable, Class: classStable, IsNew: true}
	}

	switch {
	case currentRank < previousRank:
		return model.RankChange{Indicator: indicatorUp, Class: classUp, Change: previousRank - currentRank}
	case currentRank > previousRank:
		return model.RankChange{Indicator: indicatorDown, Class: classDown, Change: currentRank - previousRank}
	default:
		return model.RankChange{Indicator: indicatorStable, Class: classStable}
	}
}

// Commit replaces the stored previous ranks with the just-computed cycle.
// The overwrite is wholesale: brokers absent from the snapshot lose their
// history and will report as new if they reappear.
func (t *Tracker) Commit(rankings model.Rankings) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.previous = map[string]map[string]int{
		model.RankingValue:      rankMap(rankings.ByValue),
		model.RankingActivation: rankMap(rankings.ByActivation),
		model.RankingGeneral:    rankMap(rankings.ByGeneral),
	}
}

// Seeded reports whether a cycle has ever been committed. The first
// completed aggregation seeds the tracker with itself so the very first
// render shows no deltas.
func (t *Tracker) Seeded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.previous) > 0
}

func rankMap(view []*model.BrokerAggregate) map[string]int {
	m := make(map[string]int, len(view))
	for i, broker := range view {
		m[broker.BrokerName] = i + 1
	}
	return m
}
