// Package validation regression-tests a calibration bundle against the
// aggregate reference grid and the model's ordering invariants. It is a
// read-only consumer of the engine components.
package validation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"medadmit-engine/internal/calibration"
	"medadmit-engine/internal/common/logger"
	"medadmit-engine/internal/common/metrics"
	"medadmit-engine/internal/engine/competitiveness"
	"medadmit-engine/internal/engine/experience"
	"medadmit-engine/internal/engine/twostage"
	"medadmit-engine/internal/models"
)

const (
	aggregateRMSEThreshold = 0.03
	monotonicityTolerance  = 1e-9

	// Documented plausible range for any single-school combined
	// probability without demographic effects.
	plausibleMin = 0.0
	plausibleMax = 0.60
)

// CheckResult is one validation check's verdict plus its diagnostics.
type CheckResult struct {
	Name    string             `json:"name"`
	Passed  bool               `json:"passed"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
	Details string             `json:"details,omitempty"`
}

type Framework struct {
	bundle *calibration.Bundle
	model  *twostage.Model
	logger logger.Logger
}

func New(b *calibration.Bundle, log logger.Logger) *Framework {
	return &Framework{
		bundle: b,
		model:  twostage.New(b, log),
		logger: log.WithFields(map[string]interface{}{"component": "validation"}),
	}
}

// aggregateProbability is the model-implied aggregate acceptance probability
// for a GPA/MCAT cell: the latent score plus the single global calibration
// intercept, through the logistic.
func (f *Framework) aggregateProbability(gpa, mcat float64) float64 {
	return twostage.Sigmoid(f.bundle.GlobalIntercept + competitiveness.Score(f.bundle, gpa, mcat))
}

// AggregateReproduction compares model-implied cell probabilities against
// the reference grid. Pass requires weighted RMSE below 0.03.
func (f *Framework) AggregateReproduction() CheckResult {
	cells := f.bundle.ReferenceCells
	if len(cells) == 0 {
		return CheckResult{
			Name:    "aggregate_reproduction",
			Passed:  false,
			Details: "no reference cells in bundle",
		}
	}

	var (
		weightSum, sqErrSum, absErrSum, maxErr float64
		predicted, observed                    []float64
	)
	for _, c := range cells {
		p := f.aggregateProbability(c.GPA, c.MCAT)
		err := p - c.Rate
		weightSum += c.Weight
		sqErrSum += c.Weight * err * err
		absErrSum += c.Weight * math.Abs(err)
		if math.Abs(err) > maxErr {
			maxErr = math.Abs(err)
		}
		predicted = append(predicted, p)
		observed = append(observed, c.Rate)
	}

	rmse := 0.0
	mae := 0.0
	if weightSum > 0 {
		rmse = math.Sqrt(sqErrSum / weightSum)
		mae = absErrSum / weightSum
	}

	return CheckResult{
		Name:   "aggregate_reproduction",
		Passed: rmse < aggregateRMSEThreshold,
		Metrics: map[string]float64{
			"rmse":    rmse,
			"mae":     mae,
			"maxErr":  maxErr,
			"pearson": pearson(predicted, observed),
			"cells":   float64(len(cells)),
		},
	}
}

// medianApplicant is the fixture used by the ordering checks: a mid-range
// profile with no demographic or residency effects anywhere.
func medianApplicant() *models.ApplicantProfile {
	return &models.ApplicantProfile{GPA: 3.7, MCAT: 511, State: "ZZ"}
}

// SensitivityChecks runs the monotonicity and ordering invariants.
func (f *Framework) SensitivityChecks() []CheckResult {
	return []CheckResult{
		f.checkMonotoneGPA(),
		f.checkMonotoneMCAT(),
		f.checkTierOrdering(),
		f.checkInStateAdvantage(),
		f.checkPlausibleRange(),
		f.checkDiminishingReturns(),
		f.checkFixtureMonotone(),
	}
}

// checkFixtureMonotone runs the two-stage model against the synthetic
// fixture institution, covering the combined probability rather than the
// aggregate shortcut. The fixture never leaves this framework.
func (f *Framework) checkFixtureMonotone() CheckResult {
	fixture := calibration.DefaultSchoolProfile()
	violations := 0
	prev := math.Inf(-1)
	for gpa := 2.0; gpa <= 4.0001; gpa += 0.1 {
		c := competitiveness.Score(f.bundle, gpa, 510)
		p1, p2 := twostage.StageProbabilities(fixture.Params, c, 0, 0, false)
		pc := p1 * p2
		if pc < prev-monotonicityTolerance {
			violations++
		}
		prev = pc
	}
	return CheckResult{
		Name:    "fixture_monotone_combined",
		Passed:  violations == 0,
		Metrics: map[string]float64{"violations": float64(violations)},
	}
}

func (f *Framework) checkMonotoneGPA() CheckResult {
	violations := 0
	for _, mcat := range []float64{490, 505, 520} {
		prev := math.Inf(-1)
		for gpa := 2.0; gpa <= 4.0001; gpa += 0.1 {
			p := f.aggregateProbability(gpa, mcat)
			if p < prev-monotonicityTolerance {
				violations++
			}
			prev = p
		}
	}
	return CheckResult{
		Name:    "monotone_gpa",
		Passed:  violations == 0,
		Metrics: map[string]float64{"violations": float64(violations)},
	}
}

func (f *Framework) checkMonotoneMCAT() CheckResult {
	violations := 0
	for _, gpa := range []float64{2.8, 3.4, 3.9} {
		prev := math.Inf(-1)
		for mcat := 472.0; mcat <= 528.0001; mcat += 2 {
			p := f.aggregateProbability(gpa, mcat)
			if p < prev-monotonicityTolerance {
				violations++
			}
			prev = p
		}
	}
	return CheckResult{
		Name:    "monotone_mcat",
		Passed:  violations == 0,
		Metrics: map[string]float64{"violations": float64(violations)},
	}
}

// checkTierOrdering verifies the documented ordering: for a median
// applicant, mean combined probability rises from tier 1 (most selective)
// to tier 4.
func (f *Framework) checkTierOrdering() CheckResult {
	a := medianApplicant()
	sums := map[int]float64{}
	counts := map[int]float64{}
	for _, info := range f.bundle.SchoolList() {
		pred, ok := f.model.Predict(a, info)
		if !ok {
			continue
		}
		sums[info.Tier] += pred.PCombined
		counts[info.Tier]++
	}

	tiers := make([]int, 0, len(sums))
	for t := range sums {
		tiers = append(tiers, t)
	}
	sort.Ints(tiers)

	m := map[string]float64{}
	passed := len(tiers) >= 2
	prev := -1.0
	for _, t := range tiers {
		mean := sums[t] / counts[t]
		m[fmt.Sprintf("tier%d_mean", t)] = mean
		if mean <= prev {
			passed = false
		}
		prev = mean
	}

	return CheckResult{Name: "tier_ordering", Passed: passed, Metrics: m}
}

// checkInStateAdvantage verifies a same-state applicant strictly beats an
// otherwise-identical out-of-state applicant at every public institution.
func (f *Framework) checkInStateAdvantage() CheckResult {
	violations := 0
	checked := 0
	for _, info := range f.bundle.SchoolList() {
		if !info.Public {
			continue
		}
		inState := medianApplicant()
		inState.State = info.State
		outState := medianApplicant()

		pIn, ok1 := f.model.Predict(inState, info)
		pOut, ok2 := f.model.Predict(outState, info)
		if !ok1 || !ok2 {
			continue
		}
		checked++
		if pIn.PCombined <= pOut.PCombined {
			violations++
		}
	}
	return CheckResult{
		Name:   "instate_advantage",
		Passed: checked > 0 && violations == 0,
		Metrics: map[string]float64{
			"checked":    float64(checked),
			"violations": float64(violations),
		},
	}
}

// checkPlausibleRange samples applicant profiles across every school and
// requires all combined probabilities inside the documented range.
func (f *Framework) checkPlausibleRange() CheckResult {
	violations := 0
	sampled := 0
	minP, maxP := 1.0, 0.0
	for _, gpa := range []float64{2.5, 3.0, 3.5, 3.9, 4.0} {
		for _, mcat := range []float64{490, 500, 510, 520, 528} {
			for _, info := range f.bundle.SchoolList() {
				a := &models.ApplicantProfile{GPA: gpa, MCAT: mcat, State: info.State}
				pred, ok := f.model.Predict(a, info)
				if !ok {
					continue
				}
				sampled++
				if pred.PCombined < minP {
					minP = pred.PCombined
				}
				if pred.PCombined > maxP {
					maxP = pred.PCombined
				}
				if pred.PCombined < plausibleMin || pred.PCombined > plausibleMax {
					violations++
				}
			}
		}
	}
	return CheckResult{
		Name:   "plausible_range",
		Passed: sampled > 0 && violations == 0,
		Metrics: map[string]float64{
			"sampled":    float64(sampled),
			"violations": float64(violations),
			"min":        minP,
			"max":        maxP,
		},
	}
}

// checkDiminishingReturns verifies numerically that each experience domain's
// successive finite differences never increase.
func (f *Framework) checkDiminishingReturns() CheckResult {
	violations := 0
	for _, params := range f.bundle.Experience {
		step := params.Tau / 10
		prevDiff := math.Inf(1)
		for q := step; q <= params.Tau*5; q += step {
			diff := experience.SaturatingContribution(q, params.Tau, params.Alpha) -
				experience.SaturatingContribution(q-step, params.Tau, params.Alpha)
			if diff > prevDiff+monotonicityTolerance {
				violations++
			}
			prevDiff = diff
		}
	}
	return CheckResult{
		Name:    "diminishing_returns",
		Passed:  violations == 0,
		Metrics: map[string]float64{"violations": float64(violations)},
	}
}

// edgeFixture pins one academic-scalar pair to an expected aggregate
// probability range. These must hold after any recalibration.
type edgeFixture struct {
	gpa, mcat float64
	min, max  float64
}

var edgeFixtures = []edgeFixture{
	{4.00, 528, 0.85, 1.00},
	{3.75, 512, 0.70, 0.80},
	{2.00, 472, 0.00, 0.05},
	{3.00, 500, 0.25, 0.40},
	{3.50, 508, 0.55, 0.70},
	{3.90, 520, 0.78, 0.88},
}

// EdgeCases evaluates the six fixed academic-profile fixtures.
func (f *Framework) EdgeCases() CheckResult {
	violations := 0
	m := map[string]float64{}
	for _, fx := range edgeFixtures {
		p := f.aggregateProbability(fx.gpa, fx.mcat)
		m[fmt.Sprintf("p_%.2f_%.0f", fx.gpa, fx.mcat)] = p
		if p < fx.min || p > fx.max {
			violations++
		}
	}
	return CheckResult{
		Name:    "edge_cases",
		Passed:  violations == 0,
		Metrics: m,
	}
}

// RunAll executes every check family and assembles the report. Failures are
// counted in the validation metrics.
func (f *Framework) RunAll() *Report {
	checks := []CheckResult{f.AggregateReproduction()}
	checks = append(checks, f.SensitivityChecks()...)
	checks = append(checks, f.EdgeCases())

	report := &Report{
		BundleVersion: f.bundle.Version,
		Checks:        checks,
		Passed:        true,
		GeneratedAt:   time.Now().UTC(),
	}
	for _, c := range checks {
		if !c.Passed {
			report.Passed = false
			metrics.ValidationFailures.WithLabelValues(c.Name).Inc()
			f.logger.Warn("validation check failed", map[string]interface{}{
				"check":   c.Name,
				"metrics": c.Metrics,
			})
		}
	}

	f.logger.Info("validation complete", map[string]interface{}{
		"checks": len(checks),
		"passed": report.Passed,
	})
	return report
}

// pearson is the plain correlation of two equal-length series, 0 when
// either side is degenerate.
func pearson(xs, ys []float64) float64 {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0
	}
	mx, my := 0.0, 0.0
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	n := float64(len(xs))
	mx /= n
	my /= n

	var sxy, sxx, syy float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}
