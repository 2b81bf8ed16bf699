// Package bootstrap quantifies prediction uncertainty with a parametric
// bootstrap: calibrated constants and latent inputs are perturbed according
// to their estimation uncertainty and the two-stage model is re-run per
// draw. Parameter uncertainty and applicant random-effect uncertainty are
// tracked separately so they can be decomposed.
package bootstrap

import (
	"math"
	"strings"

	"medadmit-engine/internal/calibration"
	"medadmit-engine/internal/common/logger"
	"medadmit-engine/internal/engine/competitiveness"
	"medadmit-engine/internal/engine/demographics"
	"medadmit-engine/internal/engine/experience"
	"medadmit-engine/internal/engine/montecarlo"
	"medadmit-engine/internal/engine/twostage"
	"medadmit-engine/internal/models"
)

// Config controls a bootstrap run. The SDs describe the known estimation
// uncertainty of each calibrated constant type; slope noise is
// multiplicative to preserve sign.
type Config struct {
	Iterations           int
	InterceptSD          float64
	SlopeSD              float64
	BonusSD              float64
	CompetitivenessSD    float64
	ExperienceSD         float64
	IncludeRandomEffects bool
	FileQualitySD        float64
	InterviewSkillSD     float64
	Seed                 int64
}

// SchoolUncertainty is the bootstrap output for one institution.
type SchoolUncertainty struct {
	SchoolID      string
	PInterview    models.Interval
	PAccept       models.Interval
	PCombined     models.Interval
	TotalVariance float64
}

// Decomposition splits total predictive variance into marginal parameter
// and random-effect contributions plus a non-negative interaction residual.
type Decomposition struct {
	ParameterVariance    float64
	RandomEffectVariance float64
	CombinedVariance     float64
	Interaction          float64
}

// QuickUncertainty is the delta-method shortcut output.
type QuickUncertainty struct {
	PCombined float64
	Variance  float64
	CIWidth   float64
	Level     string
}

// Uncertainty levels by 80% credible-interval width.
const (
	LevelVeryLow  = "very_low"
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
	LevelVeryHigh = "very_high"
)

// UncertaintyLevel classifies a credible-interval width into one of the five
// ordered levels.
func UncertaintyLevel(width float64) string {
	switch {
	case width < 0.05:
		return LevelVeryLow
	case width < 0.10:
		return LevelLow
	case width < 0.20:
		return LevelModerate
	case width < 0.30:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

type Engine struct {
	bundle *calibration.Bundle
	cfg    Config
	logger logger.Logger
}

func New(b *calibration.Bundle, cfg Config, log logger.Logger) *Engine {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 200
	}
	return &Engine{
		bundle: b,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "bootstrap"}),
	}
}

// baseInputs carries the unperturbed inputs of one entity, computed once per
// run.
type baseInputs struct {
	schoolID   string
	params     calibration.SchoolModelParams
	c          float64
	expEffect  float64
	demoEffect float64
	inState    bool
}

func (e *Engine) base(a *models.ApplicantProfile, s models.SchoolData) (baseInputs, bool) {
	params, ok := e.bundle.SchoolParams(s.ID)
	if !ok {
		e.logger.Warn("no calibrated constants for institution", map[string]interface{}{
			"schoolId": s.ID,
		})
		return baseInputs{}, false
	}
	return baseInputs{
		schoolID:   s.ID,
		params:     params,
		c:          competitiveness.Score(e.bundle, a.GPA, a.MCAT),
		expEffect:  experience.Effect(e.bundle, a),
		demoEffect: demographics.Effect(e.bundle.Demographics, a, s, e.logger),
		inState:    a.State != "" && strings.EqualFold(a.State, s.State),
	}, true
}

// perturbParams draws one set of perturbed constants. Intercepts and bonuses
// move additively, slopes multiplicatively.
func (e *Engine) perturbParams(rng montecarlo.Source, p calibration.SchoolModelParams) calibration.SchoolModelParams {
	return calibration.SchoolModelParams{
		InterceptInterview:    p.InterceptInterview + rng.NormFloat64()*e.cfg.InterceptSD,
		InterceptAccept:       p.InterceptAccept + rng.NormFloat64()*e.cfg.InterceptSD,
		SlopeInterview:        p.SlopeInterview * (1 + rng.NormFloat64()*e.cfg.SlopeSD),
		SlopeAccept:           p.SlopeAccept * (1 + rng.NormFloat64()*e.cfg.SlopeSD),
		InStateBonusInterview: p.InStateBonusInterview + rng.NormFloat64()*e.cfg.BonusSD,
		InStateBonusAccept:    p.InStateBonusAccept + rng.NormFloat64()*e.cfg.BonusSD,
	}
}

type sample struct {
	p1, p2, pc float64
}

// run executes the iteration loop for one entity. withParams and withRE
// select which uncertainty sources are active; the decomposition passes use
// them to isolate marginals.
func (e *Engine) run(rng montecarlo.Source, in baseInputs, withParams, withRE bool) []sample {
	samples := make([]sample, 0, e.cfg.Iterations)

	for i := 0; i < e.cfg.Iterations; i++ {
		params := in.params
		c := in.c
		exp := in.expEffect
		if withParams {
			params = e.perturbParams(rng, params)
			c += rng.NormFloat64() * e.cfg.CompetitivenessSD
			exp += rng.NormFloat64() * e.cfg.ExperienceSD
		}

		p1, p2 := twostage.StageProbabilities(params, c, exp, in.demoEffect, in.inState)
		if withRE {
			p1 = twostage.AdjustLogOdds(p1, rng.NormFloat64()*e.cfg.FileQualitySD)
			p2 = twostage.AdjustLogOdds(p2, rng.NormFloat64()*e.cfg.InterviewSkillSD)
		}

		samples = append(samples, sample{p1: p1, p2: p2, pc: p1 * p2})
	}

	return samples
}

func aggregate(schoolID string, samples []sample) *SchoolUncertainty {
	p1s := make([]float64, len(samples))
	p2s := make([]float64, len(samples))
	pcs := make([]float64, len(samples))
	for i, s := range samples {
		p1s[i] = s.p1
		p2s[i] = s.p2
		pcs[i] = s.pc
	}
	return &SchoolUncertainty{
		SchoolID:      schoolID,
		PInterview:    montecarlo.CI80(p1s),
		PAccept:       montecarlo.CI80(p2s),
		PCombined:     montecarlo.CI80(pcs),
		TotalVariance: montecarlo.Variance(pcs),
	}
}

// PredictWithUncertainty runs the full bootstrap for one institution. The
// second return is false when the institution has no calibrated constants.
func (e *Engine) PredictWithUncertainty(a *models.ApplicantProfile, s models.SchoolData) (*SchoolUncertainty, bool) {
	in, ok := e.base(a, s)
	if !ok {
		return nil, false
	}
	rng := montecarlo.NewRand(e.cfg.Seed)
	samples := e.run(rng, in, true, e.cfg.IncludeRandomEffects)
	return aggregate(s.ID, samples), true
}

// DecomposeUncertainty runs three bootstrap passes (parameter-only,
// random-effect-only, combined) and reports the marginal variances plus the
// clamped interaction residual.
func (e *Engine) DecomposeUncertainty(a *models.ApplicantProfile, s models.SchoolData) (*Decomposition, bool) {
	in, ok := e.base(a, s)
	if !ok {
		return nil, false
	}

	variance := func(stream int, withParams, withRE bool) float64 {
		rng := montecarlo.NewRand(montecarlo.DeriveSeed(e.cfg.Seed, stream))
		samples := e.run(rng, in, withParams, withRE)
		pcs := make([]float64, len(samples))
		for i, sm := range samples {
			pcs[i] = sm.pc
		}
		return montecarlo.Variance(pcs)
	}

	d := &Decomposition{
		ParameterVariance:    variance(0, true, false),
		RandomEffectVariance: variance(1, false, true),
		CombinedVariance:     variance(2, true, true),
	}
	d.Interaction = d.CombinedVariance - d.ParameterVariance - d.RandomEffectVariance
	if d.Interaction < 0 {
		d.Interaction = 0
	}
	return d, true
}

// QuickEstimate approximates the bootstrap output analytically with the
// delta method, Var(sigmoid(eta)) ~= [p(1-p)]^2 * Var(eta), for callers that
// cannot afford the iteration loop. It degrades to the same qualitative
// uncertainty level as the full bootstrap.
func (e *Engine) QuickEstimate(a *models.ApplicantProfile, s models.SchoolData) (*QuickUncertainty, bool) {
	in, ok := e.base(a, s)
	if !ok {
		return nil, false
	}

	p1, p2 := twostage.StageProbabilities(in.params, in.c, in.expEffect, in.demoEffect, in.inState)

	varEta1 := e.cfg.InterceptSD*e.cfg.InterceptSD +
		(in.params.SlopeInterview*in.c)*(in.params.SlopeInterview*in.c)*e.cfg.SlopeSD*e.cfg.SlopeSD +
		in.params.SlopeInterview*in.params.SlopeInterview*e.cfg.CompetitivenessSD*e.cfg.CompetitivenessSD +
		0.25*e.cfg.ExperienceSD*e.cfg.ExperienceSD
	varEta2 := e.cfg.InterceptSD*e.cfg.InterceptSD +
		(in.params.SlopeAccept*in.c)*(in.params.SlopeAccept*in.c)*e.cfg.SlopeSD*e.cfg.SlopeSD +
		in.params.SlopeAccept*in.params.SlopeAccept*e.cfg.CompetitivenessSD*e.cfg.CompetitivenessSD
	if in.inState {
		varEta1 += e.cfg.BonusSD * e.cfg.BonusSD
		varEta2 += e.cfg.BonusSD * e.cfg.BonusSD
	}
	if e.cfg.IncludeRandomEffects {
		varEta1 += e.cfg.FileQualitySD * e.cfg.FileQualitySD
		varEta2 += e.cfg.InterviewSkillSD * e.cfg.InterviewSkillSD
	}

	varP1 := p1 * (1 - p1) * p1 * (1 - p1) * varEta1
	varP2 := p2 * (1 - p2) * p2 * (1 - p2) * varEta2
	varPC := p2*p2*varP1 + p1*p1*varP2

	width := 2 * 1.28 * math.Sqrt(varPC)

	return &QuickUncertainty{
		PCombined: p1 * p2,
		Variance:  varPC,
		CIWidth:   width,
		Level:     UncertaintyLevel(width),
	}, true
}
