package repository

import "errors"

// Sentinel kinds for dataset store errors.
var (
	ErrCapacityExceeded = errors.New("dataset exceeds store capacity")
)
