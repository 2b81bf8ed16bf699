// internal/models/prediction.go
package models

// Category buckets a combined probability into application-list advice.
type Category string

const (
	CategoryReach  Category = "reach"
	CategoryTarget Category = "target"
	CategoryLikely Category = "likely"
	CategorySafety Category = "safety"
)

// Interval is an 80% credible interval around a point estimate.
// Invariant: Lower <= Mean <= Upper.
type Interval struct {
	Mean  float64 `json:"mean"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns the interval width.
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// PointInterval collapses a known value to a zero-width interval.
func PointInterval(v float64) Interval {
	return Interval{Mean: v, Lower: v, Upper: v}
}

// FactorBreakdown decomposes the stage-1 linear predictor into its additive
// inputs (the intercept is excluded; it is a school constant, not an
// applicant factor).
type FactorBreakdown struct {
	Competitiveness float64 `json:"competitiveness"`
	Experience      float64 `json:"experience"`
	Demographic     float64 `json:"demographic"`
	Residency       float64 `json:"residency"`
}

// OutcomeDistribution is the simulated distribution over final acceptance
// counts, expressed as trial fractions. The four buckets sum to 1.
type OutcomeDistribution struct {
	Zero       float64 `json:"zero"`
	One        float64 `json:"one"`
	TwoToThree float64 `json:"twoToThree"`
	FourPlus   float64 `json:"fourPlus"`
}

// SchoolPredictionResponse is the per-institution output of a prediction
// request.
type SchoolPredictionResponse struct {
	SchoolID              string          `json:"schoolId"`
	Name                  string          `json:"name,omitempty"`
	PInterview            Interval        `json:"pInterview"`
	PAcceptGivenInterview Interval        `json:"pAcceptGivenInterview"`
	PCombined             Interval        `json:"pCombined"`
	Category              Category        `json:"category"`
	Breakdown             FactorBreakdown `json:"breakdown"`
}

// ListMetricsResponse aggregates a full application list.
type ListMetricsResponse struct {
	ExpectedInterviews      Interval            `json:"expectedInterviews"`
	ExpectedAcceptances     Interval            `json:"expectedAcceptances"`
	PAtLeastOne             Interval            `json:"pAtLeastOne"`
	Distribution            OutcomeDistribution `json:"distribution"`
	PerSchoolRates          map[string]float64  `json:"perSchoolRates,omitempty"`
	CountVariance           float64             `json:"countVariance"`
	MeanPairwiseCorrelation float64             `json:"meanPairwiseCorrelation"`
	Trials                  int                 `json:"trials"`
}
