package feed

import "errors"

// Sentinel kinds for feed errors.
var (
	ErrNoURL          = errors.New("no webhook url configured")
	ErrUpstreamStatus = errors.New("unexpected upstream status")
)
