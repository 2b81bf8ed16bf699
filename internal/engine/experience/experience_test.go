// internal/engine/experience/experience_test.go
package experience

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"medadmit-engine/internal/calibration"
	"medadmit-engine/internal/models"
)

func TestSaturatingContribution(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		tau      float64
		alpha    float64
		expected float64
	}{
		{name: "zero quantity", quantity: 0, tau: 400, alpha: 0.3, expected: 0},
		{name: "negative quantity", quantity: -50, tau: 400, alpha: 0.3, expected: 0},
		{name: "non-positive tau", quantity: 100, tau: 0, alpha: 0.3, expected: 0},
		{name: "one tau of hours", quantity: 400, tau: 400, alpha: 0.3, expected: 0.3 * (1 - math.Exp(-1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SaturatingContribution(tt.quantity, tt.tau, tt.alpha), 1e-12)
		})
	}
}

func TestSaturatingContribution_IncreasingConcaveBounded(t *testing.T) {
	tau, alpha := 400.0, 0.3

	prev := 0.0
	prevGain := math.Inf(1)
	for q := 100.0; q <= 3000; q += 100 {
		v := SaturatingContribution(q, tau, alpha)
		gain := v - prev

		assert.Greater(t, v, prev, "not increasing at %v hours", q)
		assert.Less(t, gain, prevGain, "marginal gain not shrinking at %v hours", q)
		assert.Less(t, v, alpha, "exceeded asymptote at %v hours", q)

		prev = v
		prevGain = gain
	}
}

func TestThresholdedContribution(t *testing.T) {
	const hardPenalty = -2.0

	soft := calibration.SaturationParams{Tau: 400, Alpha: 0.3, Threshold: 100, Policy: calibration.ThresholdSoft}
	hard := calibration.SaturationParams{Tau: 400, Alpha: 0.3, Threshold: 100, Policy: calibration.ThresholdHard}
	none := calibration.SaturationParams{Tau: 400, Alpha: 0.3, Threshold: 100, Policy: calibration.ThresholdNone}
	noThreshold := calibration.SaturationParams{Tau: 400, Alpha: 0.3, Policy: calibration.ThresholdHard}

	base50 := SaturatingContribution(50, 400, 0.3)

	tests := []struct {
		name     string
		quantity float64
		params   calibration.SaturationParams
		expected float64
	}{
		{name: "soft below threshold", quantity: 50, params: soft, expected: base50 - 0.3*0.5},
		{name: "soft at threshold", quantity: 100, params: soft, expected: SaturatingContribution(100, 400, 0.3)},
		{name: "hard below threshold", quantity: 50, params: hard, expected: hardPenalty},
		{name: "hard at threshold", quantity: 100, params: hard, expected: SaturatingContribution(100, 400, 0.3)},
		{name: "none ignores threshold", quantity: 50, params: none, expected: base50},
		{name: "zero threshold disables policy", quantity: 50, params: noThreshold, expected: base50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ThresholdedContribution(tt.quantity, tt.params, hardPenalty), 1e-12)
		})
	}
}

func TestPublicationContribution_RankOrder(t *testing.T) {
	p := calibration.PublicationParams{
		FirstAuthorValue: 0.15,
		CoAuthorValue:    0.08,
		OtherValue:       0.04,
		Diminishing:      0.75,
	}

	// Two first-author, one co-author, one other: ranks 0..3 in that order.
	rec := models.PublicationRecord{FirstAuthor: 2, CoAuthor: 1, Other: 1}
	expected := 0.15 + 0.15*0.75 + 0.08*0.75*0.75 + 0.04*0.75*0.75*0.75
	assert.InDelta(t, expected, PublicationContribution(rec, p), 1e-12)
}

func TestPublicationContribution_EmptyRecord(t *testing.T) {
	p := calibration.PublicationParams{FirstAuthorValue: 0.15, CoAuthorValue: 0.08, OtherValue: 0.04, Diminishing: 0.75}
	assert.Equal(t, 0.0, PublicationContribution(models.PublicationRecord{}, p))
}

func TestPublicationContribution_FirstAuthorCountedFirst(t *testing.T) {
	p := calibration.PublicationParams{FirstAuthorValue: 0.15, CoAuthorValue: 0.08, OtherValue: 0.04, Diminishing: 0.5}

	// A first-author publication always takes the earliest (least diminished)
	// rank, so swapping one co-author for one first-author strictly helps.
	lower := PublicationContribution(models.PublicationRecord{CoAuthor: 2}, p)
	higher := PublicationContribution(models.PublicationRecord{FirstAuthor: 1, CoAuthor: 1}, p)
	assert.Greater(t, higher, lower)
}

func TestEffect_MatchesBreakdownSum(t *testing.T) {
	b := calibration.DefaultBundle()
	a := &models.ApplicantProfile{
		ExperienceHours: map[string]float64{
			models.ExperienceClinical:  600,
			models.ExperienceResearch:  1200,
			models.ExperienceVolunteer: 150,
			models.ExperienceShadowing: 40,
		},
		Publications: models.PublicationRecord{FirstAuthor: 1, CoAuthor: 2},
	}

	breakdown := Breakdown(b, a)
	sum := 0.0
	for _, v := range breakdown {
		sum += v
	}
	assert.InDelta(t, Effect(b, a), sum, 1e-12)
	assert.Contains(t, breakdown, "publications")
}

func TestEffect_NoExperience(t *testing.T) {
	b := calibration.DefaultBundle()
	a := &models.ApplicantProfile{}

	// Clinical uses the soft policy, so zero hours carries the full
	// proportional deficit; every other domain contributes zero.
	expected := ThresholdedContribution(0, b.Experience[models.ExperienceClinical], b.HardThresholdPenalty)
	assert.InDelta(t, expected, Effect(b, a), 1e-12)
}
