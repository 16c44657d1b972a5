// Package feed polls the upstream webhook that serves raw deposit rows and
// hands each fetched dataset to the board service.
//
// Upstream calls run through a circuit breaker so a flapping webhook is not
// hammered every cycle. While no dataset has ever been delivered, a fetch
// failure loads the built-in sample rows so the board has something to
// render; once real data has landed, failures keep the previous dataset.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/aldeia/rankboard/internal/domain/model"
	"github.com/aldeia/rankboard/pkg/logger"
	"github.com/aldeia/rankboard/pkg/metrics"
)

// Default feed configuration constants.
const (
	defaultInterval       = 30 * time.Minute
	defaultRequestTimeout = 30 * time.Second

	breakerMaxFailures = 3
	breakerOpenFor     = 2 * time.Minute

	outcomeSuccess  = "success"
	outcomeFailure  = "failure"
	outcomeRejected = "breaker_open"
)

// Sink receives each fetched dataset. Implemented by app.Service.
type Sink interface {
	ReplaceEvents(ctx context.Context, rows []model.Raw) (int, error)
}

// Poller periodically fetches the upstream webhook.
type Poller struct {
	sink     Sink
	url      string
	interval time.Duration
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	samples  []model.Raw

	delivered bool // a real dataset has been handed to the sink

	logger logger.Logger
}

// New creates a Poller delivering to sink.
func New(sink Sink, opts ...Option) *Poller {
	p := &Poller{
		sink:     sink,
		interval: defaultInterval,
		client:   &http.Client{Timeout: defaultRequestTimeout},
		samples:  SampleRows(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = logger.Named("feed")
	}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "webhook-feed",
		Timeout: breakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
	})

	return p
}

// Run fetches once immediately and then on every interval tick until ctx is
// canceled. Always returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	p.FetchOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.FetchOnce(ctx)
		}
	}
}

// FetchOnce performs one fetch cycle. Failures never propagate; they are
// logged, counted, and covered by the sample fallback when no real dataset
// has been delivered yet.
func (p *Poller) FetchOnce(ctx context.Context) {
	cycleID := uuid.New().String()

	if p.url == "" {
		p.fallback(ctx, cycleID, ErrNoURL)
		return
	}

	result, err := p.breaker.Execute(func() (any, error) {
		return p.fetch(ctx)
	})
	if err != nil {
		outcome := outcomeFailure
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			outcome = outcomeRejected
		}
		metrics.RecordFeedFetch(outcome)
		p.logger.Warn(ctx, "feed fetch failed",
			logger.String("cycle", cycleID),
			logger.String("outcome", outcome),
			logger.Error(err),
		)
		p.fallback(ctx, cycleID, err)
		return
	}

	rows := result.([]model.Raw)
	metrics.RecordFeedFetch(outcomeSuccess)

	n, err := p.sink.ReplaceEvents(ctx, rows)
	if err != nil {
		p.logger.Error(ctx, "feed delivery rejected",
			logger.String("cycle", cycleID),
			logger.Error(err),
		)
		return
	}

	p.delivered = true
	p.logger.Info(ctx, "feed delivered",
		logger.String("cycle", cycleID),
		logger.Int("rows", n),
	)
}

func (p *Poller) fetch(ctx context.Context) ([]model.Raw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamStatus, resp.Status)
	}

	var rows []model.Raw
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode feed payload: %w", err)
	}
	return rows, nil
}

// fallback loads the sample dataset, but only while no real dataset has
// ever been delivered. A blip must not wipe real data.
func (p *Poller) fallback(ctx context.Context, cycleID string, cause error) {
	if p.delivered || len(p.samples) == 0 {
		return
	}

	if _, err := p.sink.ReplaceEvents(ctx, p.samples); err != nil {
		p.logger.Error(ctx, "sample fallback rejected",
			logger.String("cycle", cycleID),
			logger.Error(err),
		)
		return
	}

	metrics.RecordFeedFallback()
	p.logger.Warn(ctx, "loaded sample dataset",
		logger.String("cycle", cycleID),
		logger.Int("rows", len(p.samples)),
		logger.Error(cause),
	)
}
