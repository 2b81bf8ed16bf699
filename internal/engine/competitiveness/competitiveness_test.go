// internal/engine/competitiveness/competitiveness_test.go
package competitiveness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medadmit-engine/internal/calibration"
)

func TestScore_AnchorIsZero(t *testing.T) {
	b := calibration.DefaultBundle()
	assert.Equal(t, 0.0, Score(b, 3.75, 512))
}

func TestScore_MonotoneInGPA(t *testing.T) {
	b := calibration.DefaultBundle()

	prev := Score(b, 2.0, 510)
	for gpa := 2.1; gpa <= 4.0; gpa += 0.1 {
		c := Score(b, gpa, 510)
		assert.GreaterOrEqual(t, c, prev, "score decreased at GPA %.1f", gpa)
		prev = c
	}
}

func TestScore_MonotoneInMCAT(t *testing.T) {
	b := calibration.DefaultBundle()

	prev := Score(b, 3.6, 472)
	for mcat := 473.0; mcat <= 528; mcat++ {
		c := Score(b, 3.6, mcat)
		assert.GreaterOrEqual(t, c, prev, "score decreased at MCAT %.0f", mcat)
		prev = c
	}
}

func TestScore_ClampsOutOfDomain(t *testing.T) {
	b := calibration.DefaultBundle()

	assert.Equal(t, Score(b, 2.0, 472), Score(b, 0.5, 400))
	assert.Equal(t, Score(b, 4.0, 528), Score(b, 5.0, 600))
}

func TestTier(t *testing.T) {
	tests := []struct {
		name     string
		c        float64
		expected string
	}{
		{name: "well above top cut", c: 1.5, expected: TierExceptional},
		{name: "exceptional boundary", c: 0.60, expected: TierExceptional},
		{name: "strong boundary", c: 0.20, expected: TierStrong},
		{name: "just under strong", c: 0.199, expected: TierCompetitive},
		{name: "competitive boundary", c: -0.40, expected: TierCompetitive},
		{name: "developing boundary", c: -1.20, expected: TierDeveloping},
		{name: "below all cuts", c: -3.0, expected: TierChallenging},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tier(tt.c))
		})
	}
}

func TestOddsRatioConversion_RoundTrip(t *testing.T) {
	for _, logit := range []float64{-3, -0.5, 0, 0.5, 3} {
		assert.InDelta(t, logit, OddsRatioToLogit(LogitToOddsRatio(logit)), 1e-12)
	}
	assert.Equal(t, 1.0, LogitToOddsRatio(0))
}
