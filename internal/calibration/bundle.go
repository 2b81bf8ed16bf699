// Package calibration holds the versioned, immutable parameter bundle the
// prediction engine runs against. A Bundle is loaded once at process start
// and shared read-only across all concurrent invocations.
package calibration

import (
	"math"

	"medadmit-engine/internal/models"
)

// Table is an equally spaced monotone lookup table produced offline by the
// spline calibration. Values[i] corresponds to x = XMin + i*Step.
type Table struct {
	XMin   float64   `json:"xMin"`
	XMax   float64   `json:"xMax"`
	Step   float64   `json:"step"`
	Values []float64 `json:"values"`
}

// Lookup evaluates the table at x with linear interpolation. Out-of-domain
// inputs are clamped to the table bounds, never extrapolated.
func (t Table) Lookup(x float64) float64 {
	if len(t.Values) == 0 {
		return 0
	}
	if x <= t.XMin {
		return t.Values[0]
	}
	if x >= t.XMax {
		return t.Values[len(t.Values)-1]
	}

	pos := (x - t.XMin) / t.Step
	i := int(math.Floor(pos))
	if i >= len(t.Values)-1 {
		return t.Values[len(t.Values)-1]
	}
	frac := pos - float64(i)
	return t.Values[i] + frac*(t.Values[i+1]-t.Values[i])
}

// InDomain reports whether x lies inside the table bounds.
func (t Table) InDomain(x float64) bool {
	return x >= t.XMin && x <= t.XMax
}

// ThresholdPolicy selects how an experience domain treats quantities below
// its calibrated minimum.
type ThresholdPolicy string

const (
	ThresholdNone ThresholdPolicy = "none"
	ThresholdSoft ThresholdPolicy = "soft"
	ThresholdHard ThresholdPolicy = "hard"
)

// SaturationParams calibrates one experience domain's saturating-returns
// curve alpha*(1-exp(-q/tau)) and its threshold behavior.
type SaturationParams struct {
	Tau       float64         `json:"tau"`
	Alpha     float64         `json:"alpha"`
	Threshold float64         `json:"threshold"`
	Policy    ThresholdPolicy `json:"policy"`
}

// PublicationParams calibrates per-tier publication base values and the
// global geometric diminishing factor applied across all publications in
// rank order.
type PublicationParams struct {
	FirstAuthorValue float64 `json:"firstAuthorValue"`
	CoAuthorValue    float64 `json:"coAuthorValue"`
	OtherValue       float64 `json:"otherValue"`
	Diminishing      float64 `json:"diminishing"`
}

// SESEffects holds the additive effects of the socioeconomic flags.
type SESEffects struct {
	FirstGeneration float64 `json:"firstGeneration"`
	Disadvantaged   float64 `json:"disadvantaged"`
	RuralBackground float64 `json:"ruralBackground"`
}

// InteractionEffects holds the six applicant-institution interaction terms.
type InteractionEffects struct {
	RuralMission      float64 `json:"ruralMission"`
	ResearchIntensive float64 `json:"researchIntensive"`
	HBCU              float64 `json:"hbcu"`
	DiversityFocus    float64 `json:"diversityFocus"`
	PublicInState     float64 `json:"publicInState"`
	PrimaryCareFocus  float64 `json:"primaryCareFocus"`
}

// DemographicTable maps normalized demographic categories to additive
// effects. URMCategories lists the categories treated as underrepresented
// for the diversity-focus interaction.
type DemographicTable struct {
	Categories    map[string]float64 `json:"categories"`
	URMCategories []string           `json:"urmCategories"`
	SES           SESEffects         `json:"ses"`
	Interactions  InteractionEffects `json:"interactions"`
}

// SchoolModelParams is one institution's two-stage calibrated constants.
// The engine never mutates these.
type SchoolModelParams struct {
	InterceptInterview    float64 `json:"interceptInterview"`
	InterceptAccept       float64 `json:"interceptAccept"`
	SlopeInterview        float64 `json:"slopeInterview"`
	SlopeAccept           float64 `json:"slopeAccept"`
	InStateBonusInterview float64 `json:"inStateBonusInterview"`
	InStateBonusAccept    float64 `json:"inStateBonusAccept"`
}

// School pairs an institution's descriptive record with its calibrated
// constants.
type School struct {
	Info   models.SchoolData `json:"info"`
	Params SchoolModelParams `json:"params"`
}

// ReferenceCell is one bucket of the aggregate acceptance grid used by the
// validation framework: bin centers, observed rate, applicant-share weight.
type ReferenceCell struct {
	GPA    float64 `json:"gpa"`
	MCAT   float64 `json:"mcat"`
	Rate   float64 `json:"rate"`
	Weight float64 `json:"weight"`
}

// Bundle is the complete calibration data set for one model version.
type Bundle struct {
	Version string `json:"version"`

	// GlobalIntercept is the logit of the aggregate acceptance probability
	// at the anchor point (GPA 3.75, MCAT 512).
	GlobalIntercept float64 `json:"globalIntercept"`

	GPATable  Table `json:"gpaTable"`
	MCATTable Table `json:"mcatTable"`

	Experience           map[string]SaturationParams `json:"experience"`
	HardThresholdPenalty float64                     `json:"hardThresholdPenalty"`
	Publications         PublicationParams           `json:"publications"`
	Demographics         DemographicTable            `json:"demographics"`

	Schools map[string]School `json:"schools"`

	ReferenceCells []ReferenceCell `json:"referenceCells"`
}

// SchoolParams returns an institution's calibrated constants, reporting
// absence instead of failing.
func (b *Bundle) SchoolParams(id string) (SchoolModelParams, bool) {
	s, ok := b.Schools[id]
	return s.Params, ok
}

// SchoolInfo returns the descriptive record for an institution in the
// bundle's directory.
func (b *Bundle) SchoolInfo(id string) (models.SchoolData, bool) {
	s, ok := b.Schools[id]
	return s.Info, ok
}

// SchoolList returns the bundle's institution directory as a slice.
func (b *Bundle) SchoolList() []models.SchoolData {
	out := make([]models.SchoolData, 0, len(b.Schools))
	for _, s := range b.Schools {
		out = append(out, s.Info)
	}
	return out
}
