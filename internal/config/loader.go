package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RANKBOARD_CONFIG is set
//  3. env (prefix RANKBOARD_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("RANKBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RANKBOARD_ADDR, RANKBOARD_MIN_DATE, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("RANKBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "rankboard_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if _, err := time.ParseInLocation("2006-01-02", c.MinDate, time.Local); err != nil {
		return fmt.Errorf("%w: min_date must be YYYY-MM-DD: %w", ErrInvalidConfig, err)
	}
	if c.RefreshIntervalSeconds <= 0 {
		return fmt.Errorf("%w: refresh_interval_seconds must be positive", ErrInvalidConfig)
	}
	if c.DepositWeight <= 0 || c.ActivationWeight <= 0 {
		return fmt.Errorf("%w: score weights must be positive", ErrInvalidConfig)
	}
	if c.MaxLeaderboardLimit < 1 {
		return fmt.Errorf("%w: max_leaderboard_limit must be at least 1", ErrInvalidConfig)
	}
	return nil
}
