// Package competitiveness maps the two academic scalars to the calibrated
// latent score C and classifies it into applicant-strength tiers.
package competitiveness

import (
	"math"

	"medadmit-engine/internal/calibration"
)

// Tier labels for the latent score. Cutpoints are calibration outputs and
// fixed per model version.
const (
	TierExceptional = "exceptional"
	TierStrong      = "strong"
	TierCompetitive = "competitive"
	TierDeveloping  = "developing"
	TierChallenging = "challenging"
)

// Score returns the latent competitiveness score C: the sum of the two
// monotone table transforms. The anchor pair (GPA 3.75, MCAT 512) yields
// exactly 0. Out-of-domain inputs are clamped by the tables.
func Score(b *calibration.Bundle, gpa, mcat float64) float64 {
	return b.GPATable.Lookup(gpa) + b.MCATTable.Lookup(mcat)
}

// Tier classifies a latent score into one of the five strength tiers.
func Tier(c float64) string {
	switch {
	case c >= 0.60:
		return TierExceptional
	case c >= 0.20:
		return TierStrong
	case c >= -0.40:
		return TierCompetitive
	case c >= -1.20:
		return TierDeveloping
	default:
		return TierChallenging
	}
}

// LogitToOddsRatio converts a log-odds value to an odds ratio. Together with
// OddsRatioToLogit it forms the stable conversion interface consumed by the
// legacy point-scoring system.
func LogitToOddsRatio(logit float64) float64 {
	return math.Exp(logit)
}

// OddsRatioToLogit is the inverse of LogitToOddsRatio.
func OddsRatioToLogit(or float64) float64 {
	return math.Log(or)
}
