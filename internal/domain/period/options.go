// Package period classifies events into time-window buckets.
package period

import "time"

// Option applies a configuration option to the Filter.
type Option func(*Filter)

// WithMinDate sets the minimum-date floor. The time of day is zeroed.
func WithMinDate(minDate time.Time) Option {
	return func(f *Filter) {
		if !minDate.IsZero() {
			f.minDate = truncateDay(minDate)
		}
	}
}

// WithClock overrides the time source, pinning "today" for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Filter) {
		if now != nil {
			f.now = now
		}
	}
}
