package app

import "errors"

// Sentinel kinds for board query errors.
var (
	ErrBrokerNotFound = errors.New("broker not found")
	ErrInvalidLimit   = errors.New("invalid leaderboard limit")
)
