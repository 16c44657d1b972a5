// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults and Load(ctx) layering defaults -> file -> env.
// - External errors are wrapped with this package's sentinels.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// WebhookURL is the upstream feed that serves the raw event rows.
	// Empty disables polling; data then arrives only via POST /events.
	WebhookURL string `koanf:"webhook_url"`

	// RefreshIntervalSeconds is the feed polling / re-aggregation cadence.
	RefreshIntervalSeconds int `koanf:"refresh_interval_seconds"`

	// MinDate is the minimum-date floor in YYYY-MM-DD form. Events dated
	// before it are excluded from every period.
	MinDate string `koanf:"min_date"`

	// DepositWeight and ActivationWeight blend the general score.
	DepositWeight    float64 `koanf:"deposit_weight"`
	ActivationWeight float64 `koanf:"activation_weight"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// ChartTopN caps the number of brokers in chart data.
	ChartTopN int `koanf:"chart_top_n"`

	// Teams maps team name to its static roster of canonical short names.
	// Empty uses the production rosters.
	Teams map[string][]string `koanf:"teams"`

	// BrokerMap maps raw broker names to canonical short names.
	// Empty uses the production mapping.
	BrokerMap map[string]string `koanf:"broker_map"`
}

// New returns the configuration defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		Addr:                   ":8090",
		WebhookURL:             "",
		RefreshIntervalSeconds: 1800,
		MinDate:                "2025-07-01",
		DepositWeight:          0.6,
		ActivationWeight:       0.4,
		MaxLeaderboardLimit:    100,
		ChartTopN:              15,
	}
}

// RefreshInterval returns the polling cadence as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// MinDateTime parses the configured floor. Load validates the format, so
// callers receive a usable date.
func (c *Config) MinDateTime() time.Time {
	t, err := time.ParseInLocation("2006-01-02", c.MinDate, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
