// Package feed polls the upstream webhook for raw deposit rows.
package feed

import (
	"net/http"
	"time"

	"github.com/aldeia/rankboard/internal/domain/model"
	"github.com/aldeia/rankboard/pkg/logger"
)

// Option applies a configuration option to the Poller.
type Option func(*Poller)

// WithURL sets the upstream webhook URL. Empty means no upstream; only the
// sample fallback (and POST /events) can populate the board.
func WithURL(url string) Option {
	return func(p *Poller) {
		p.url = url
	}
}

// WithInterval sets the polling cadence.
func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithHTTPClient sets a custom HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Poller) {
		if client != nil {
			p.client = client
		}
	}
}

// WithSamples replaces the built-in fallback dataset. Nil disables the
// fallback entirely.
func WithSamples(rows []model.Raw) Option {
	return func(p *Poller) {
		p.samples = rows
	}
}

// WithLogger sets a custom logger for the poller.
func WithLogger(l logger.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}
