// Package demographics computes the additive demographic and mission-fit
// effect of an applicant at an institution.
package demographics

import (
	"strings"

	"medadmit-engine/internal/calibration"
	"medadmit-engine/internal/common/logger"
	"medadmit-engine/internal/models"
)

// hbcuMatchCategory is the applicant category the HBCU mission interaction
// matches against.
const hbcuMatchCategory = "black_or_african_american"

// NormalizeCategory canonicalizes a demographic category key: lowercase,
// punctuation and whitespace collapsed to single underscores. Matching is
// therefore case- and punctuation-insensitive.
func NormalizeCategory(s string) string {
	var sb strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				sb.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "_")
}

// CategoryEffect looks up the effect for a demographic category. Unknown or
// empty categories contribute exactly 0; unknown non-empty keys are logged
// as informational, never an error.
func CategoryEffect(t calibration.DemographicTable, category string, log logger.Logger) float64 {
	if category == "" {
		return 0
	}
	key := NormalizeCategory(category)
	if effect, ok := t.Categories[key]; ok {
		return effect
	}
	if log != nil {
		log.Info("unknown demographic category, zero effect applied", map[string]interface{}{
			"category":   category,
			"normalized": key,
		})
	}
	return 0
}

// IsURM reports whether a category counts as underrepresented for the
// diversity-focus interaction.
func IsURM(t calibration.DemographicTable, category string) bool {
	if category == "" {
		return false
	}
	key := NormalizeCategory(category)
	for _, c := range t.URMCategories {
		if c == key {
			return true
		}
	}
	return false
}

// Breakdown decomposes the demographic effect by named component.
// Total always equals the exact sum of the components.
type Breakdown struct {
	Category          float64 `json:"category"`
	SES               float64 `json:"ses"`
	RuralMission      float64 `json:"ruralMission"`
	ResearchIntensive float64 `json:"researchIntensive"`
	HBCU              float64 `json:"hbcu"`
	DiversityFocus    float64 `json:"diversityFocus"`
	PublicInState     float64 `json:"publicInState"`
	PrimaryCareFocus  float64 `json:"primaryCareFocus"`
	Total             float64 `json:"total"`
}

// GetBreakdown computes the full decomposition for one applicant at one
// institution.
func GetBreakdown(t calibration.DemographicTable, a *models.ApplicantProfile, s models.SchoolData, log logger.Logger) Breakdown {
	var b Breakdown

	b.Category = CategoryEffect(t, a.RaceEthnicity, log)

	if a.FirstGeneration {
		b.SES += t.SES.FirstGeneration
	}
	if a.Disadvantaged {
		b.SES += t.SES.Disadvantaged
	}
	if a.RuralBackground {
		b.SES += t.SES.RuralBackground
	}

	// Interaction terms fire only when the institution's mission feature and
	// the matching applicant attribute hold simultaneously.
	if s.Mission.RuralMission && a.RuralBackground {
		b.RuralMission = t.Interactions.RuralMission
	}
	if s.Mission.ResearchIntensive && a.ResearchOriented {
		b.ResearchIntensive = t.Interactions.ResearchIntensive
	}
	if s.Mission.HBCU && NormalizeCategory(a.RaceEthnicity) == hbcuMatchCategory {
		b.HBCU = t.Interactions.HBCU
	}
	if s.Mission.DiversityFocus && IsURM(t, a.RaceEthnicity) {
		b.DiversityFocus = t.Interactions.DiversityFocus
	}
	if s.Public && strings.EqualFold(a.State, s.State) && a.State != "" {
		b.PublicInState = t.Interactions.PublicInState
	}
	if s.Mission.PrimaryCareFocus && a.PrimaryCareInterest {
		b.PrimaryCareFocus = t.Interactions.PrimaryCareFocus
	}

	b.Total = b.Category + b.SES +
		b.RuralMission + b.ResearchIntensive + b.HBCU +
		b.DiversityFocus + b.PublicInState + b.PrimaryCareFocus

	return b
}

// Effect returns the total demographic effect for one applicant at one
// institution.
func Effect(t calibration.DemographicTable, a *models.ApplicantProfile, s models.SchoolData, log logger.Logger) float64 {
	return GetBreakdown(t, a, s, log).Total
}
