// internal/service/predictor_test.go
package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medadmit-engine/internal/calibration"
	"medadmit-engine/internal/common/config"
	"medadmit-engine/internal/common/logger"
	"medadmit-engine/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Simulation: config.SimulationConfig{
			Trials:           2000,
			FileQualitySD:    0.5,
			InterviewSkillSD: 0.5,
			Workers:          2,
			Seed:             42,
		},
		Bootstrap: config.BootstrapConfig{
			Iterations:           100,
			InterceptSD:          0.15,
			SlopeSD:              0.10,
			BonusSD:              0.10,
			CompetitivenessSD:    0.15,
			ExperienceSD:         0.10,
			IncludeRandomEffects: true,
		},
		Cache: config.CacheConfig{Enabled: true, TTLSeconds: 60},
	}
}

func serviceApplicant() *models.ApplicantProfile {
	return &models.ApplicantProfile{
		GPA: 3.7, MCAT: 513, State: "MI",
		ExperienceHours: map[string]float64{
			models.ExperienceClinical: 500,
			models.ExperienceResearch: 700,
		},
	}
}

func serviceSchools(t *testing.T, b *calibration.Bundle, ids ...string) []models.SchoolData {
	out := make([]models.SchoolData, 0, len(ids))
	for _, id := range ids {
		info, ok := b.SchoolInfo(id)
		if !ok {
			info = models.SchoolData{ID: id}
		}
		out = append(out, info)
	}
	return out
}

func newTestPredictor(t *testing.T, cache *redis.Client) (*Predictor, *calibration.Bundle) {
	b := calibration.DefaultBundle()
	return New(b, testConfig(), logger.NewTestLogger(t), cache, nil), b
}

func TestPredictSchools(t *testing.T) {
	p, b := newTestPredictor(t, nil)

	resp, err := p.PredictSchools(context.Background(), serviceApplicant(),
		serviceSchools(t, b, "umich-med", "harvard-med", "ecu-brody"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.RequestID)
	assert.False(t, resp.Cached)
	require.Len(t, resp.Schools, 3)
	assert.Empty(t, resp.Skipped)

	for _, s := range resp.Schools {
		assert.NotEmpty(t, s.SchoolID)
		assert.LessOrEqual(t, s.PCombined.Lower, s.PCombined.Mean)
		assert.GreaterOrEqual(t, s.PCombined.Upper, s.PCombined.Mean)
		assert.NotEmpty(t, s.Category)
	}

	assert.Equal(t, 2000, resp.List.Trials)
	assert.Greater(t, resp.List.ExpectedAcceptances.Mean, 0.0)
	assert.Len(t, resp.List.PerSchoolRates, 3)
}

func TestPredictSchools_SkipsUnknown(t *testing.T) {
	p, b := newTestPredictor(t, nil)

	resp, err := p.PredictSchools(context.Background(), serviceApplicant(),
		serviceSchools(t, b, "umich-med", "no-such-school"))
	require.NoError(t, err)

	assert.Len(t, resp.Schools, 1)
	assert.Equal(t, []string{"no-such-school"}, resp.Skipped)
}

func TestPredictSchools_CacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	p, b := newTestPredictor(t, cache)
	schools := serviceSchools(t, b, "umich-med", "ohio-state-med")

	first, err := p.PredictSchools(context.Background(), serviceApplicant(), schools)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := p.PredictSchools(context.Background(), serviceApplicant(), schools)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.NotEqual(t, first.RequestID, second.RequestID, "request ids are per call, never cached")
	assert.Equal(t, first.Schools, second.Schools)
	assert.Equal(t, first.List, second.List)
}

func TestPredictSchools_CacheKeyedByApplicant(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	p, b := newTestPredictor(t, cache)
	schools := serviceSchools(t, b, "umich-med")

	_, err := p.PredictSchools(context.Background(), serviceApplicant(), schools)
	require.NoError(t, err)

	other := serviceApplicant()
	other.GPA = 3.2
	resp, err := p.PredictSchools(context.Background(), other, schools)
	require.NoError(t, err)
	assert.False(t, resp.Cached, "different applicant must miss the cache")
}

func TestPredictSchools_CacheDownDegradesGracefully(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	p, b := newTestPredictor(t, cache)

	resp, err := p.PredictSchools(context.Background(), serviceApplicant(),
		serviceSchools(t, b, "umich-med"))
	require.NoError(t, err, "cache outage must not fail predictions")
	assert.Len(t, resp.Schools, 1)
}

func TestNewFromConfig_WiresCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.Database.Redis.Address = mr.Addr()

	b := calibration.DefaultBundle()
	p := NewFromConfig(context.Background(), b, cfg, logger.NewTestLogger(t), nil)
	schools := serviceSchools(t, b, "umich-med")

	first, err := p.PredictSchools(context.Background(), serviceApplicant(), schools)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := p.PredictSchools(context.Background(), serviceApplicant(), schools)
	require.NoError(t, err)
	assert.True(t, second.Cached)
}

func TestNewFromConfig_CacheDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = false

	b := calibration.DefaultBundle()
	p := NewFromConfig(context.Background(), b, cfg, logger.NewTestLogger(t), nil)

	resp, err := p.PredictSchools(context.Background(), serviceApplicant(),
		serviceSchools(t, b, "umich-med"))
	require.NoError(t, err)
	assert.False(t, resp.Cached)
}

func TestListUncertainty(t *testing.T) {
	p, b := newTestPredictor(t, nil)

	lu := p.ListUncertainty(serviceApplicant(), serviceSchools(t, b, "umich-med", "ecu-brody"))
	assert.Equal(t, 100, lu.Iterations)
	assert.Greater(t, lu.ExpectedAcceptances.Upper, 0.0)
}
