// Package ranking folds filtered events into aggregates and sorted views.
package ranking

import "math"

const weightSumTolerance = 1e-9

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights sets the blended-score weights. Both must be positive and
// sum to 1; anything else keeps the defaults.
func WithWeights(deposit, activation float64) Option {
	return func(e *Engine) {
		if deposit > 0 && activation > 0 && math.Abs(deposit+activation-1) < weightSumTolerance {
			e.depositWeight = deposit
			e.activationWeight = activation
		}
	}
}
