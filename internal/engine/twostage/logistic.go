// internal/engine/twostage/logistic.go
package twostage

import "math"

// Sigmoid is a numerically stable logistic function. Beyond +-700 the exact
// value underflows float64, so it saturates to 1-1e-300 / 1e-300 instead of
// overflowing inside math.Exp.
func Sigmoid(x float64) float64 {
	if x > 700 {
		return 1 - 1e-300
	}
	if x < -700 {
		return 1e-300
	}
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// Logit is the inverse of Sigmoid for p in (0, 1).
func Logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

// AdjustLogOdds shifts a probability by an additive effect on the log-odds
// scale. Degenerate probabilities 0 and 1 are returned unchanged without
// computing a logit.
func AdjustLogOdds(p, effect float64) float64 {
	if p <= 0 || p >= 1 {
		return p
	}
	return Sigmoid(Logit(p) + effect)
}
