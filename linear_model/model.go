// Package linear_model implements the per-node linear model used to predict
// a key's slot: pos = clamp(floor(a*key + b), 0, numItems-1).
//
// Model and Predict are adapted directly from alex-go's
// linear_model.LinearModel / LinearModel.Predict; the clamp-to-range form is
// adopted from the original lipp.h predict(), which clamps rather than
// returning an unbounded position the way alex-go's version does.
package linear_model

import (
	"math"

	"lippgo/shared"
)

// Model is a single-node linear regression model (a, b).
type Model struct {
	A float64
	B float64
}

// Predict computes the clamped slot position for key within a node of
// numItems slots. It is pure and must be called identically by builders and
// by the lookup/insert walk so rounding never diverges.
func Predict[K shared.Number](m Model, key K, numItems int) int {
	v := m.A*float64(key) + m.B
	switch {
	case v > math.MaxInt32/2:
		return numItems - 1
	case v < 0:
		return 0
	default:
		pos := int(v)
		if pos >= numItems {
			pos = numItems - 1
		}
		return pos
	}
}
