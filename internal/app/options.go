// Package app provides the core service behind the HTTP API.
package app

import (
	"github.com/aldeia/rankboard/internal/adapters/repository"
	"github.com/aldeia/rankboard/internal/domain/delta"
	"github.com/aldeia/rankboard/internal/domain/period"
	"github.com/aldeia/rankboard/internal/domain/ranking"
	"github.com/aldeia/rankboard/internal/domain/roster"
	"github.com/aldeia/rankboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the dataset store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithResolver sets the roster resolver.
func WithResolver(resolver *roster.Resolver) Option {
	return func(s *Service) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

// WithFilter sets the period filter.
func WithFilter(filter *period.Filter) Option {
	return func(s *Service) {
		if filter != nil {
			s.filter = filter
		}
	}
}

// WithEngine sets the ranking engine.
func WithEngine(engine *ranking.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithTracker sets the rank-delta tracker.
func WithTracker(tracker *delta.Tracker) Option {
	return func(s *Service) {
		if tracker != nil {
			s.tracker = tracker
		}
	}
}

// WithMaxLeaderboardLimit caps leaderboard query limits.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLeaderboardLimit = limit
		}
	}
}

// WithChartTopN caps the number of brokers in chart data.
func WithChartTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.chartTopN = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
