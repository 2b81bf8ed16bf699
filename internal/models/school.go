// internal/models/school.go
package models

// MissionFeatures flags institutional mission emphases that interact with
// matching applicant attributes.
type MissionFeatures struct {
	RuralMission      bool `json:"ruralMission"`
	ResearchIntensive bool `json:"researchIntensive"`
	PrimaryCareFocus  bool `json:"primaryCareFocus"`
	HBCU              bool `json:"hbcu"`
	DiversityFocus    bool `json:"diversityFocus"`
}

// SchoolData describes one target institution. Calibrated model constants
// live separately in the calibration bundle, keyed by ID.
type SchoolData struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	State   string          `json:"state"`
	Public  bool            `json:"public"`
	Tier    int             `json:"tier"` // 1 (most selective) - 4
	Mission MissionFeatures `json:"mission"`
}
