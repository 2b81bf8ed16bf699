// internal/engine/bootstrap/list.go
package bootstrap

import (
	"medadmit-engine/internal/engine/montecarlo"
	"medadmit-engine/internal/engine/twostage"
	"medadmit-engine/internal/models"
)

// ListUncertainty is the bootstrap output for a full application list.
type ListUncertainty struct {
	ExpectedAcceptances models.Interval
	PAtLeastOne         models.Interval
	Iterations          int
	Skipped             []string
}

// PredictListWithUncertainty bootstraps the list-level aggregates. Within
// each iteration the competitiveness and experience perturbations and the
// shared random effects are drawn once and applied to every entity, while
// the constant perturbations stay independent per entity; both sources of
// cross-entity correlation therefore propagate into the aggregates.
func (e *Engine) PredictListWithUncertainty(a *models.ApplicantProfile, schools []models.SchoolData) *ListUncertainty {
	out := &ListUncertainty{Iterations: e.cfg.Iterations}

	bases := make([]baseInputs, 0, len(schools))
	for _, s := range schools {
		in, ok := e.base(a, s)
		if !ok {
			out.Skipped = append(out.Skipped, s.ID)
			continue
		}
		bases = append(bases, in)
	}
	if len(bases) == 0 {
		return out
	}

	rng := montecarlo.NewRand(e.cfg.Seed)
	expectedCounts := make([]float64, 0, e.cfg.Iterations)
	pAtLeastOnes := make([]float64, 0, e.cfg.Iterations)

	for i := 0; i < e.cfg.Iterations; i++ {
		// Per-iteration shared context: one latent-input draw for all
		// entities.
		dC := rng.NormFloat64() * e.cfg.CompetitivenessSD
		dExp := rng.NormFloat64() * e.cfg.ExperienceSD
		var fileEffect, interviewEffect float64
		if e.cfg.IncludeRandomEffects {
			fileEffect = rng.NormFloat64() * e.cfg.FileQualitySD
			interviewEffect = rng.NormFloat64() * e.cfg.InterviewSkillSD
		}

		expected := 0.0
		pNone := 1.0
		for _, in := range bases {
			params := e.perturbParams(rng, in.params)
			p1, p2 := twostage.StageProbabilities(params, in.c+dC, in.expEffect+dExp, in.demoEffect, in.inState)
			if e.cfg.IncludeRandomEffects {
				p1 = twostage.AdjustLogOdds(p1, fileEffect)
				p2 = twostage.AdjustLogOdds(p2, interviewEffect)
			}
			pc := p1 * p2
			expected += pc
			pNone *= 1 - pc
		}

		expectedCounts = append(expectedCounts, expected)
		pAtLeastOnes = append(pAtLeastOnes, 1-pNone)
	}

	out.ExpectedAcceptances = montecarlo.CI80(expectedCounts)
	out.PAtLeastOne = montecarlo.CI80(pAtLeastOnes)
	return out
}
