// Package experience evaluates the saturating-returns contributions of
// accumulated experience and publications.
package experience

import (
	"math"

	"medadmit-engine/internal/calibration"
	"medadmit-engine/internal/models"
)

// SaturatingContribution computes alpha * (1 - exp(-quantity/tau)): zero at
// quantity 0, asymptotically alpha, strictly increasing and concave.
// Non-positive quantity or tau yields exactly 0, never a negative value.
func SaturatingContribution(quantity, tau, alpha float64) float64 {
	if quantity <= 0 || tau <= 0 {
		return 0
	}
	return alpha * (1 - math.Exp(-quantity/tau))
}

// ThresholdedContribution applies the domain's threshold policy around the
// base saturating contribution.
//
// hard: a quantity below the threshold signals near-disqualification and
// forces the bundle's fixed penalty. soft: the base contribution is reduced
// in proportion to the fractional deficit below the threshold. none: the
// threshold is ignored.
func ThresholdedContribution(quantity float64, p calibration.SaturationParams, hardPenalty float64) float64 {
	base := SaturatingContribution(quantity, p.Tau, p.Alpha)

	if p.Threshold <= 0 {
		return base
	}

	switch p.Policy {
	case calibration.ThresholdHard:
		if quantity < p.Threshold {
			return hardPenalty
		}
		return base
	case calibration.ThresholdSoft:
		if quantity < p.Threshold {
			deficit := (p.Threshold - quantity) / p.Threshold
			return base - p.Alpha*deficit
		}
		return base
	default:
		return base
	}
}

// PublicationContribution sums the per-tier base values across all
// publications, applying the global geometric diminishing factor in rank
// order: first-author publications are counted first, then co-author, then
// other. The k-th publication counted, regardless of tier, is worth
// diminishing^(k-1) of its tier's base value.
func PublicationContribution(rec models.PublicationRecord, p calibration.PublicationParams) float64 {
	total := 0.0
	rank := 0

	for _, tier := range []struct {
		count int
		value float64
	}{
		{rec.FirstAuthor, p.FirstAuthorValue},
		{rec.CoAuthor, p.CoAuthorValue},
		{rec.Other, p.OtherValue},
	} {
		for i := 0; i < tier.count; i++ {
			total += tier.value * math.Pow(p.Diminishing, float64(rank))
			rank++
		}
	}

	return total
}

// Effect returns the applicant's combined experience effect: the sum of all
// thresholded domain contributions plus the publication contribution.
func Effect(b *calibration.Bundle, a *models.ApplicantProfile) float64 {
	total := 0.0
	for domain, params := range b.Experience {
		total += ThresholdedContribution(a.Hours(domain), params, b.HardThresholdPenalty)
	}
	return total + PublicationContribution(a.Publications, b.Publications)
}

// Breakdown reports the per-domain contributions plus publications; the map
// values sum to Effect's result.
func Breakdown(b *calibration.Bundle, a *models.ApplicantProfile) map[string]float64 {
	out := make(map[string]float64, len(b.Experience)+1)
	for domain, params := range b.Experience {
		out[domain] = ThresholdedContribution(a.Hours(domain), params, b.HardThresholdPenalty)
	}
	out["publications"] = PublicationContribution(a.Publications, b.Publications)
	return out
}
