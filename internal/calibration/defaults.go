// internal/calibration/defaults.go
package calibration

import "medadmit-engine/internal/models"

// DefaultBundle returns the v1 calibration shipped with the engine. The
// lookup tables come from the offline monotone spline fit, centered so the
// anchor point (GPA 3.75, MCAT 512) evaluates to exactly 0 at a grid point.
func DefaultBundle() *Bundle {
	return &Bundle{
		Version:         "v1",
		GlobalIntercept: 1.1,

		GPATable: Table{
			XMin: 2.0, XMax: 4.0, Step: 0.05,
			Values: []float64{
				-3.54351, -3.41929, -3.29661, -3.17546, -3.05581, -2.93765,
				-2.82095, -2.7057, -2.59189, -2.47949, -2.36848, -2.25886,
				-2.15059, -2.04368, -1.93808, -1.83381, -1.73082, -1.62912,
				-1.52868, -1.42948, -1.33152, -1.23478, -1.13924, -1.04488,
				-0.951697, -0.859671, -0.768788, -0.679034, -0.590396, -0.502858,
				-0.416408, -0.331031, -0.246715, -0.163447, -0.0812126, 0,
				0.0802037, 0.159411, 0.237635, 0.314887, 0.391179,
			},
		},
		MCATTable: Table{
			XMin: 472, XMax: 528, Step: 1,
			Values: []float64{
				-2.63348, -2.53556, -2.43977, -2.34607, -2.2544, -2.16473,
				-2.07701, -1.9912, -1.90726, -1.82514, -1.74481, -1.66623,
				-1.58936, -1.51416, -1.4406, -1.36863, -1.29824, -1.22937,
				-1.16201, -1.09611, -1.03164, -0.968577, -0.906886, -0.846538,
				-0.787502, -0.729751, -0.673257, -0.617992, -0.563929, -0.511043,
				-0.459308, -0.408698, -0.35919, -0.310759, -0.263382, -0.217036,
				-0.171698, -0.127347, -0.0839606, -0.0415185, 0, 0.0406151,
				0.0803464, 0.119213, 0.157234, 0.194428, 0.230812, 0.266405,
				0.301223, 0.335284, 0.368603, 0.401198, 0.433083, 0.464274,
				0.494787, 0.524635, 0.553835,
			},
		},

		Experience: map[string]SaturationParams{
			models.ExperienceClinical:  {Tau: 400, Alpha: 0.30, Threshold: 100, Policy: ThresholdSoft},
			models.ExperienceResearch:  {Tau: 800, Alpha: 0.35, Policy: ThresholdNone},
			models.ExperienceVolunteer: {Tau: 300, Alpha: 0.15, Policy: ThresholdNone},
			models.ExperienceShadowing: {Tau: 50, Alpha: 0.10, Policy: ThresholdNone},
		},
		HardThresholdPenalty: -2.0,

		Publications: PublicationParams{
			FirstAuthorValue: 0.15,
			CoAuthorValue:    0.08,
			OtherValue:       0.04,
			Diminishing:      0.75,
		},

		Demographics: DemographicTable{
			Categories: map[string]float64{
				"black_or_african_american":           1.86,
				"hispanic_latino":                     1.25,
				"american_indian_or_alaska_native":    1.40,
				"native_hawaiian_or_pacific_islander": 1.10,
				"asian":                               -0.10,
				"white":                               0,
				"multiple_race_ethnicity":             0.45,
			},
			URMCategories: []string{
				"black_or_african_american",
				"hispanic_latino",
				"american_indian_or_alaska_native",
				"native_hawaiian_or_pacific_islander",
			},
			SES: SESEffects{
				FirstGeneration: 0.15,
				Disadvantaged:   0.22,
				RuralBackground: 0.20,
			},
			Interactions: InteractionEffects{
				RuralMission:      0.40,
				ResearchIntensive: 0.20,
				HBCU:              0.50,
				DiversityFocus:    0.25,
				PublicInState:     0.80,
				PrimaryCareFocus:  0.15,
			},
		},

		Schools: map[string]School{
			"harvard-med": {
				Info: models.SchoolData{
					ID: "harvard-med", Name: "Harvard Medical School", State: "MA",
					Public: false, Tier: 1,
					Mission: models.MissionFeatures{ResearchIntensive: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -3.3168, InterceptAccept: 0.2007,
					SlopeInterview: 1.2, SlopeAccept: 0.6,
					InStateBonusInterview: 0.0, InStateBonusAccept: 0.0,
				},
			},
			"stanford-med": {
				Info: models.SchoolData{
					ID: "stanford-med", Name: "Stanford School of Medicine", State: "CA",
					Public: false, Tier: 1,
					Mission: models.MissionFeatures{ResearchIntensive: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -3.4761, InterceptAccept: 0.2007,
					SlopeInterview: 1.2, SlopeAccept: 0.6,
					InStateBonusInterview: 0.0, InStateBonusAccept: 0.0,
				},
			},
			"johns-hopkins": {
				Info: models.SchoolData{
					ID: "johns-hopkins", Name: "Johns Hopkins School of Medicine", State: "MD",
					Public: false, Tier: 1,
					Mission: models.MissionFeatures{ResearchIntensive: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -3.1781, InterceptAccept: 0.08,
					SlopeInterview: 1.2, SlopeAccept: 0.6,
					InStateBonusInterview: 0.0, InStateBonusAccept: 0.0,
				},
			},
			"umich-med": {
				Info: models.SchoolData{
					ID: "umich-med", Name: "University of Michigan Medical School", State: "MI",
					Public: true, Tier: 2,
					Mission: models.MissionFeatures{ResearchIntensive: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -2.7515, InterceptAccept: -0.2007,
					SlopeInterview: 1.0, SlopeAccept: 0.5,
					InStateBonusInterview: 0.6, InStateBonusAccept: 0.18,
				},
			},
			"ohio-state-med": {
				Info: models.SchoolData{
					ID: "ohio-state-med", Name: "Ohio State University College of Medicine", State: "OH",
					Public: true, Tier: 2,
					Mission: models.MissionFeatures{},
				},
				Params: SchoolModelParams{
					InterceptInterview: -2.4423, InterceptAccept: -0.2007,
					SlopeInterview: 1.0, SlopeAccept: 0.5,
					InStateBonusInterview: 0.7, InStateBonusAccept: 0.21,
				},
			},
			"uw-som": {
				Info: models.SchoolData{
					ID: "uw-som", Name: "University of Washington School of Medicine", State: "WA",
					Public: true, Tier: 2,
					Mission: models.MissionFeatures{RuralMission: true, PrimaryCareFocus: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -2.5867, InterceptAccept: -0.08,
					SlopeInterview: 1.0, SlopeAccept: 0.5,
					InStateBonusInterview: 1.1, InStateBonusAccept: 0.33,
				},
			},
			"unc-som": {
				Info: models.SchoolData{
					ID: "unc-som", Name: "UNC School of Medicine", State: "NC",
					Public: true, Tier: 2,
					Mission: models.MissionFeatures{},
				},
				Params: SchoolModelParams{
					InterceptInterview: -2.5867, InterceptAccept: -0.1603,
					SlopeInterview: 1.0, SlopeAccept: 0.5,
					InStateBonusInterview: 1.0, InStateBonusAccept: 0.3,
				},
			},
			"howard-com": {
				Info: models.SchoolData{
					ID: "howard-com", Name: "Howard University College of Medicine", State: "DC",
					Public: false, Tier: 3,
					Mission: models.MissionFeatures{HBCU: true, DiversityFocus: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -2.3136, InterceptAccept: -0.3228,
					SlopeInterview: 0.8, SlopeAccept: 0.4,
					InStateBonusInterview: 0.0, InStateBonusAccept: 0.0,
				},
			},
			"msu-chm": {
				Info: models.SchoolData{
					ID: "msu-chm", Name: "Michigan State College of Human Medicine", State: "MI",
					Public: true, Tier: 3,
					Mission: models.MissionFeatures{RuralMission: true, PrimaryCareFocus: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -2.1972, InterceptAccept: -0.3228,
					SlopeInterview: 0.8, SlopeAccept: 0.4,
					InStateBonusInterview: 0.8, InStateBonusAccept: 0.24,
				},
			},
			"ttu-hsc": {
				Info: models.SchoolData{
					ID: "ttu-hsc", Name: "Texas Tech Health Sciences Center", State: "TX",
					Public: true, Tier: 3,
					Mission: models.MissionFeatures{PrimaryCareFocus: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -1.9924, InterceptAccept: -0.3228,
					SlopeInterview: 0.8, SlopeAccept: 0.4,
					InStateBonusInterview: 1.2, InStateBonusAccept: 0.36,
				},
			},
			"uvm-larner": {
				Info: models.SchoolData{
					ID: "uvm-larner", Name: "University of Vermont Larner College of Medicine", State: "VT",
					Public: true, Tier: 3,
					Mission: models.MissionFeatures{PrimaryCareFocus: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -2.0907, InterceptAccept: -0.2412,
					SlopeInterview: 0.8, SlopeAccept: 0.4,
					InStateBonusInterview: 0.5, InStateBonusAccept: 0.15,
				},
			},
			"ecu-brody": {
				Info: models.SchoolData{
					ID: "ecu-brody", Name: "East Carolina Brody School of Medicine", State: "NC",
					Public: true, Tier: 4,
					Mission: models.MissionFeatures{RuralMission: true, PrimaryCareFocus: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -1.7346, InterceptAccept: -0.2007,
					SlopeInterview: 0.6, SlopeAccept: 0.3,
					InStateBonusInterview: 1.5, InStateBonusAccept: 0.45,
				},
			},
			"morehouse-som": {
				Info: models.SchoolData{
					ID: "morehouse-som", Name: "Morehouse School of Medicine", State: "GA",
					Public: false, Tier: 3,
					Mission: models.MissionFeatures{PrimaryCareFocus: true, HBCU: true, DiversityFocus: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -2.4423, InterceptAccept: -0.4055,
					SlopeInterview: 0.8, SlopeAccept: 0.4,
					InStateBonusInterview: 0.0, InStateBonusAccept: 0.0,
				},
			},
			"wright-state-bsom": {
				Info: models.SchoolData{
					ID: "wright-state-bsom", Name: "Wright State Boonshoft School of Medicine", State: "OH",
					Public: true, Tier: 4,
					Mission: models.MissionFeatures{PrimaryCareFocus: true},
				},
				Params: SchoolModelParams{
					InterceptInterview: -1.8153, InterceptAccept: -0.2412,
					SlopeInterview: 0.6, SlopeAccept: 0.3,
					InStateBonusInterview: 0.9, InStateBonusAccept: 0.27,
				},
			},
		},

		ReferenceCells: defaultReferenceCells(),
	}
}

// DefaultSchoolProfile is the synthetic institution used by the validation
// framework's fixtures. It is never substituted into production predictions.
func DefaultSchoolProfile() School {
	return School{
		Info: models.SchoolData{
			ID: "validation-fixture", Name: "Validation Fixture", State: "XX",
			Public: false, Tier: 3,
		},
		Params: SchoolModelParams{
			InterceptInterview: -2.1972, InterceptAccept: -0.4055,
			SlopeInterview: 0.8, SlopeAccept: 0.4,
		},
	}
}

// defaultReferenceCells is the aggregate acceptance-rate grid over GPA and
// MCAT bin centers. Weights are each cell's share of applicants.
func defaultReferenceCells() []ReferenceCell {
	return []ReferenceCell{
		{GPA: 2.00, MCAT: 483.0, Rate: 0.0161, Weight: 0.000007},
		{GPA: 2.00, MCAT: 487.5, Rate: 0.0224, Weight: 0.000007},
		{GPA: 2.00, MCAT: 491.5, Rate: 0.0291, Weight: 0.000007},
		{GPA: 2.00, MCAT: 495.5, Rate: 0.0370, Weight: 0.000007},
		{GPA: 2.00, MCAT: 499.5, Rate: 0.0459, Weight: 0.000007},
		{GPA: 2.00, MCAT: 503.5, Rate: 0.0559, Weight: 0.000007},
		{GPA: 2.00, MCAT: 507.5, Rate: 0.0667, Weight: 0.000007},
		{GPA: 2.00, MCAT: 511.5, Rate: 0.0784, Weight: 0.000007},
		{GPA: 2.00, MCAT: 515.5, Rate: 0.0907, Weight: 0.000007},
		{GPA: 2.00, MCAT: 521.0, Rate: 0.1083, Weight: 0.000007},
		{GPA: 2.30, MCAT: 483.0, Rate: 0.0327, Weight: 0.000007},
		{GPA: 2.30, MCAT: 487.5, Rate: 0.0450, Weight: 0.000007},
		{GPA: 2.30, MCAT: 491.5, Rate: 0.0582, Weight: 0.000007},
		{GPA: 2.30, MCAT: 495.5, Rate: 0.0732, Weight: 0.000010},
		{GPA: 2.30, MCAT: 499.5, Rate: 0.0902, Weight: 0.000021},
		{GPA: 2.30, MCAT: 503.5, Rate: 0.1086, Weight: 0.000030},
		{GPA: 2.30, MCAT: 507.5, Rate: 0.1284, Weight: 0.000028},
		{GPA: 2.30, MCAT: 511.5, Rate: 0.1491, Weight: 0.000018},
		{GPA: 2.30, MCAT: 515.5, Rate: 0.1704, Weight: 0.000008},
		{GPA: 2.30, MCAT: 521.0, Rate: 0.2001, Weight: 0.000007},
		{GPA: 2.50, MCAT: 483.0, Rate: 0.0505, Weight: 0.000007},
		{GPA: 2.50, MCAT: 487.5, Rate: 0.0690, Weight: 0.000007},
		{GPA: 2.50, MCAT: 491.5, Rate: 0.0885, Weight: 0.000031},
		{GPA: 2.50, MCAT: 495.5, Rate: 0.1105, Weight: 0.000098},
		{GPA: 2.50, MCAT: 499.5, Rate: 0.1348, Weight: 0.000205},
		{GPA: 2.50, MCAT: 503.5, Rate: 0.1608, Weight: 0.000289},
		{GPA: 2.50, MCAT: 507.5, Rate: 0.1881, Weight: 0.000275},
		{GPA: 2.50, MCAT: 511.5, Rate: 0.2160, Weight: 0.000177},
		{GPA: 2.50, MCAT: 515.5, Rate: 0.2441, Weight: 0.000076},
		{GPA: 2.50, MCAT: 521.0, Rate: 0.2823, Weight: 0.000013},
		{GPA: 2.70, MCAT: 483.0, Rate: 0.0756, Weight: 0.000007},
		{GPA: 2.70, MCAT: 487.5, Rate: 0.1024, Weight: 0.000044},
		{GPA: 2.70, MCAT: 491.5, Rate: 0.1299, Weight: 0.000205},
		{GPA: 2.70, MCAT: 495.5, Rate: 0.1604, Weight: 0.000637},
		{GPA: 2.70, MCAT: 499.5, Rate: 0.1933, Weight: 0.001337},
		{GPA: 2.70, MCAT: 503.5, Rate: 0.2276, Weight: 0.001889},
		{GPA: 2.70, MCAT: 507.5, Rate: 0.2626, Weight: 0.001798},
		{GPA: 2.70, MCAT: 511.5, Rate: 0.2976, Weight: 0.001153},
		{GPA: 2.70, MCAT: 515.5, Rate: 0.3319, Weight: 0.000498},
		{GPA: 2.70, MCAT: 521.0, Rate: 0.3769, Weight: 0.000082},
		{GPA: 2.90, MCAT: 483.0, Rate: 0.1096, Weight: 0.000022},
		{GPA: 2.90, MCAT: 487.5, Rate: 0.1466, Weight: 0.000195},
		{GPA: 2.90, MCAT: 491.5, Rate: 0.1836, Weight: 0.000901},
		{GPA: 2.90, MCAT: 495.5, Rate: 0.2235, Weight: 0.002805},
		{GPA: 2.90, MCAT: 499.5, Rate: 0.2651, Weight: 0.005883},
		{GPA: 2.90, MCAT: 503.5, Rate: 0.3074, Weight: 0.008312},
		{GPA: 2.90, MCAT: 507.5, Rate: 0.3491, Weight: 0.007911},
		{GPA: 2.90, MCAT: 511.5, Rate: 0.3895, Weight: 0.005073},
		{GPA: 2.90, MCAT: 515.5, Rate: 0.4279, Weight: 0.002191},
		{GPA: 2.90, MCAT: 521.0, Rate: 0.4767, Weight: 0.000362},
		{GPA: 3.10, MCAT: 483.0, Rate: 0.1538, Weight: 0.000064},
		{GPA: 3.10, MCAT: 487.5, Rate: 0.2022, Weight: 0.000578},
		{GPA: 3.10, MCAT: 491.5, Rate: 0.2492, Weight: 0.002669},
		{GPA: 3.10, MCAT: 495.5, Rate: 0.2982, Weight: 0.008312},
		{GPA: 3.10, MCAT: 499.5, Rate: 0.3475, Weight: 0.017434},
		{GPA: 3.10, MCAT: 503.5, Rate: 0.3958, Weight: 0.024633},
		{GPA: 3.10, MCAT: 507.5, Rate: 0.4419, Weight: 0.023446},
		{GPA: 3.10, MCAT: 511.5, Rate: 0.4850, Weight: 0.015033},
		{GPA: 3.10, MCAT: 515.5, Rate: 0.5248, Weight: 0.006493},
		{GPA: 3.10, MCAT: 521.0, Rate: 0.5735, Weight: 0.001074},
		{GPA: 3.30, MCAT: 483.0, Rate: 0.2083, Weight: 0.000128},
		{GPA: 3.30, MCAT: 487.5, Rate: 0.2685, Weight: 0.001153},
		{GPA: 3.30, MCAT: 491.5, Rate: 0.3246, Weight: 0.005329},
		{GPA: 3.30, MCAT: 495.5, Rate: 0.3809, Weight: 0.016594},
		{GPA: 3.30, MCAT: 499.5, Rate: 0.4355, Weight: 0.034806},
		{GPA: 3.30, MCAT: 503.5, Rate: 0.4869, Weight: 0.049179},
		{GPA: 3.30, MCAT: 507.5, Rate: 0.5342, Weight: 0.046809},
		{GPA: 3.30, MCAT: 511.5, Rate: 0.5770, Weight: 0.030013},
		{GPA: 3.30, MCAT: 515.5, Rate: 0.6153, Weight: 0.012963},
		{GPA: 3.30, MCAT: 521.0, Rate: 0.6607, Weight: 0.002144},
		{GPA: 3.50, MCAT: 483.0, Rate: 0.2724, Weight: 0.000173},
		{GPA: 3.50, MCAT: 487.5, Rate: 0.3431, Weight: 0.001551},
		{GPA: 3.50, MCAT: 491.5, Rate: 0.4061, Weight: 0.007167},
		{GPA: 3.50, MCAT: 495.5, Rate: 0.4667, Weight: 0.022317},
		{GPA: 3.50, MCAT: 499.5, Rate: 0.5232, Weight: 0.046809},
		{GPA: 3.50, MCAT: 503.5, Rate: 0.5744, Weight: 0.066139},
		{GPA: 3.50, MCAT: 507.5, Rate: 0.6200, Weight: 0.062952},
		{GPA: 3.50, MCAT: 511.5, Rate: 0.6599, Weight: 0.040364},
		{GPA: 3.50, MCAT: 515.5, Rate: 0.6946, Weight: 0.017434},
		{GPA: 3.50, MCAT: 521.0, Rate: 0.7348, Weight: 0.002884},
		{GPA: 3.70, MCAT: 483.0, Rate: 0.3436, Weight: 0.000157},
		{GPA: 3.70, MCAT: 487.5, Rate: 0.4220, Weight: 0.001405},
		{GPA: 3.70, MCAT: 491.5, Rate: 0.4888, Weight: 0.006493},
		{GPA: 3.70, MCAT: 495.5, Rate: 0.5503, Weight: 0.020218},
		{GPA: 3.70, MCAT: 499.5, Rate: 0.6054, Weight: 0.042407},
		{GPA: 3.70, MCAT: 503.5, Rate: 0.6536, Weight: 0.059919},
		{GPA: 3.70, MCAT: 507.5, Rate: 0.6952, Weight: 0.057032},
		{GPA: 3.70, MCAT: 511.5, Rate: 0.7307, Weight: 0.036568},
		{GPA: 3.70, MCAT: 515.5, Rate: 0.7608, Weight: 0.015794},
		{GPA: 3.70, MCAT: 521.0, Rate: 0.7948, Weight: 0.002612},
		{GPA: 3.90, MCAT: 483.0, Rate: 0.4186, Weight: 0.000096},
		{GPA: 3.90, MCAT: 487.5, Rate: 0.5011, Weight: 0.000857},
		{GPA: 3.90, MCAT: 491.5, Rate: 0.5681, Weight: 0.003963},
		{GPA: 3.90, MCAT: 495.5, Rate: 0.6273, Weight: 0.012339},
		{GPA: 3.90, MCAT: 499.5, Rate: 0.6785, Weight: 0.025880},
		{GPA: 3.90, MCAT: 503.5, Rate: 0.7219, Weight: 0.036568},
		{GPA: 3.90, MCAT: 507.5, Rate: 0.7583, Weight: 0.034806},
		{GPA: 3.90, MCAT: 511.5, Rate: 0.7887, Weight: 0.022317},
		{GPA: 3.90, MCAT: 515.5, Rate: 0.8140, Weight: 0.009639},
		{GPA: 3.90, MCAT: 521.0, Rate: 0.8420, Weight: 0.001594},
	}
}
