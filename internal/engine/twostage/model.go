// Package twostage implements the per-institution two-stage hierarchical
// logistic model: interview (screen) probability, acceptance-given-interview
// probability, and their product.
package twostage

import (
	"sort"
	"strings"

	"medadmit-engine/internal/calibration"
	"medadmit-engine/internal/common/logger"
	"medadmit-engine/internal/engine/competitiveness"
	"medadmit-engine/internal/engine/demographics"
	"medadmit-engine/internal/engine/experience"
	"medadmit-engine/internal/models"
)

// experienceWeight scales the experience effect in the interview-stage
// linear predictor. The acceptance stage deliberately excludes experience
// and demographic effects; screening weighs them far more than the final
// decision does.
const experienceWeight = 0.5

// Prediction is the point output of the model for one institution.
type Prediction struct {
	SchoolID   string
	Name       string
	PInterview float64
	PAccept    float64
	PCombined  float64
	Category   models.Category
	Score      float64
	Breakdown  models.FactorBreakdown
}

// ListPrediction aggregates point predictions for a full application list.
// Expected counts and PAtLeastOne use the independence shortcut; the Monte
// Carlo simulator supersedes them for distributional outputs.
type ListPrediction struct {
	Schools             []Prediction
	ExpectedInterviews  float64
	ExpectedAcceptances float64
	PAtLeastOne         float64
	Skipped             []string
}

type Model struct {
	bundle *calibration.Bundle
	logger logger.Logger
}

func New(b *calibration.Bundle, log logger.Logger) *Model {
	return &Model{
		bundle: b,
		logger: log.WithFields(map[string]interface{}{"component": "twostage"}),
	}
}

// Categorize buckets a combined probability. The cutpoints are fixed model
// constants, not configuration.
func Categorize(pCombined float64) models.Category {
	switch {
	case pCombined < 0.15:
		return models.CategoryReach
	case pCombined < 0.35:
		return models.CategoryTarget
	case pCombined < 0.60:
		return models.CategoryLikely
	default:
		return models.CategorySafety
	}
}

// StageProbabilities evaluates the two stage probabilities for explicit
// inputs. It is the pure core shared by Predict and the bootstrap engine,
// which re-runs it under perturbed parameters.
func StageProbabilities(p calibration.SchoolModelParams, c, experienceEffect, demographicEffect float64, inState bool) (pInterview, pAccept float64) {
	eta1 := p.InterceptInterview + p.SlopeInterview*c + experienceWeight*experienceEffect + demographicEffect
	eta2 := p.InterceptAccept + p.SlopeAccept*c
	if inState {
		eta1 += p.InStateBonusInterview
		eta2 += p.InStateBonusAccept
	}
	return Sigmoid(eta1), Sigmoid(eta2)
}

// Predict computes the two-stage prediction for one institution. The second
// return is false when the institution has no calibrated constants; the
// caller filters absent results before aggregation.
func (m *Model) Predict(a *models.ApplicantProfile, s models.SchoolData) (Prediction, bool) {
	params, ok := m.bundle.SchoolParams(s.ID)
	if !ok {
		m.logger.Warn("no calibrated constants for institution", map[string]interface{}{
			"schoolId": s.ID,
		})
		return Prediction{}, false
	}

	c := competitiveness.Score(m.bundle, a.GPA, a.MCAT)
	expEffect := experience.Effect(m.bundle, a)
	demoEffect := demographics.Effect(m.bundle.Demographics, a, s, m.logger)
	inState := a.State != "" && strings.EqualFold(a.State, s.State)

	p1, p2 := StageProbabilities(params, c, expEffect, demoEffect, inState)
	combined := p1 * p2

	residency := 0.0
	if inState {
		residency = params.InStateBonusInterview
	}

	return Prediction{
		SchoolID:   s.ID,
		Name:       s.Name,
		PInterview: p1,
		PAccept:    p2,
		PCombined:  combined,
		Category:   Categorize(combined),
		Score:      c,
		Breakdown: models.FactorBreakdown{
			Competitiveness: params.SlopeInterview * c,
			Experience:      experienceWeight * expEffect,
			Demographic:     demoEffect,
			Residency:       residency,
		},
	}, true
}

// PredictList evaluates every institution in the list, sorts the results by
// descending combined probability, and aggregates point estimates. Schools
// without calibration are collected in Skipped, never an error.
func (m *Model) PredictList(a *models.ApplicantProfile, schools []models.SchoolData) *ListPrediction {
	out := &ListPrediction{
		Schools: make([]Prediction, 0, len(schools)),
	}

	pNone := 1.0
	for _, s := range schools {
		pred, ok := m.Predict(a, s)
		if !ok {
			out.Skipped = append(out.Skipped, s.ID)
			continue
		}
		out.Schools = append(out.Schools, pred)
		out.ExpectedInterviews += pred.PInterview
		out.ExpectedAcceptances += pred.PCombined
		pNone *= 1 - pred.PCombined
	}

	sort.SliceStable(out.Schools, func(i, j int) bool {
		return out.Schools[i].PCombined > out.Schools[j].PCombined
	})

	if len(out.Schools) > 0 {
		out.PAtLeastOne = 1 - pNone
	}

	return out
}
