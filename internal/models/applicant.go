// internal/models/applicant.go
package models

// Experience domain keys used in ApplicantProfile.ExperienceHours and the
// calibration experience table.
const (
	ExperienceClinical  = "clinical"
	ExperienceResearch  = "research"
	ExperienceVolunteer = "volunteer"
	ExperienceShadowing = "shadowing"
)

// PublicationRecord holds publication counts by authorship tier.
type PublicationRecord struct {
	FirstAuthor int `json:"firstAuthor"`
	CoAuthor    int `json:"coAuthor"`
	Other       int `json:"other"`
}

// Total returns the number of publications across all tiers.
func (p PublicationRecord) Total() int {
	return p.FirstAuthor + p.CoAuthor + p.Other
}

// ApplicantProfile is the immutable applicant input to a prediction request.
// Hour and count fields are expected to be non-negative; academic scalars
// outside their documented ranges are clamped before lookup, never rejected.
type ApplicantProfile struct {
	GPA   float64 `json:"gpa"`  // 0.0 - 4.0
	MCAT  float64 `json:"mcat"` // 472 - 528
	State string  `json:"state"`

	// RaceEthnicity is optional; unknown values contribute zero effect.
	RaceEthnicity string `json:"raceEthnicity,omitempty"`

	FirstGeneration bool `json:"firstGeneration"`
	Disadvantaged   bool `json:"disadvantaged"`
	RuralBackground bool `json:"ruralBackground"`

	// Interest flags, used only for applicant-institution interaction
	// matching.
	ResearchOriented    bool `json:"researchOriented"`
	PrimaryCareInterest bool `json:"primaryCareInterest"`

	ExperienceHours map[string]float64 `json:"experienceHours"`
	Publications    PublicationRecord  `json:"publications"`
}

// Hours returns the accumulated quantity for one experience domain, zero when
// the domain is absent.
func (a *ApplicantProfile) Hours(domain string) float64 {
	if a.ExperienceHours == nil {
		return 0
	}
	return a.ExperienceHours[domain]
}
