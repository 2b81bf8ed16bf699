// Package service exposes the prediction engine behind a single facade:
// point predictions, bootstrap credible intervals, and simulated list
// metrics, with response caching and metrics.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"medadmit-engine/internal/calibration"
	"medadmit-engine/internal/common/config"
	"medadmit-engine/internal/common/database"
	"medadmit-engine/internal/common/logger"
	"medadmit-engine/internal/common/metrics"
	"medadmit-engine/internal/common/observability"
	"medadmit-engine/internal/engine/bootstrap"
	"medadmit-engine/internal/engine/montecarlo"
	"medadmit-engine/internal/engine/twostage"
	"medadmit-engine/internal/models"
)

// Response is the full output of one prediction request.
type Response struct {
	RequestID string                            `json:"requestId"`
	Schools   []models.SchoolPredictionResponse `json:"schools"`
	List      models.ListMetricsResponse        `json:"list"`
	Skipped   []string                          `json:"skipped,omitempty"`
	Cached    bool                              `json:"cached"`
}

// Predictor wires the engine components together for one loaded bundle.
type Predictor struct {
	bundle   *calibration.Bundle
	model    *twostage.Model
	sim      *montecarlo.Simulator
	boot     *bootstrap.Engine
	cache    *redis.Client
	cacheTTL time.Duration
	obs      *observability.Observability
	logger   logger.Logger
}

// New builds a Predictor. cache may be nil to disable response caching; obs
// may be nil to disable OpenTelemetry recording.
func New(b *calibration.Bundle, cfg *config.Config, log logger.Logger, cache *redis.Client, obs *observability.Observability) *Predictor {
	simCfg := montecarlo.Config{
		Trials:           cfg.Simulation.Trials,
		FileQualitySD:    cfg.Simulation.FileQualitySD,
		InterviewSkillSD: cfg.Simulation.InterviewSkillSD,
		Workers:          cfg.Simulation.Workers,
		Seed:             cfg.Simulation.Seed,
	}
	bootCfg := bootstrap.Config{
		Iterations:           cfg.Bootstrap.Iterations,
		InterceptSD:          cfg.Bootstrap.InterceptSD,
		SlopeSD:              cfg.Bootstrap.SlopeSD,
		BonusSD:              cfg.Bootstrap.BonusSD,
		CompetitivenessSD:    cfg.Bootstrap.CompetitivenessSD,
		ExperienceSD:         cfg.Bootstrap.ExperienceSD,
		IncludeRandomEffects: cfg.Bootstrap.IncludeRandomEffects,
		FileQualitySD:        cfg.Simulation.FileQualitySD,
		InterviewSkillSD:     cfg.Simulation.InterviewSkillSD,
		Seed:                 cfg.Simulation.Seed,
	}

	return &Predictor{
		bundle:   b,
		model:    twostage.New(b, log),
		sim:      montecarlo.New(simCfg, log),
		boot:     bootstrap.New(b, bootCfg, log),
		cache:    cache,
		cacheTTL: cfg.Cache.TTL(),
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "predictor"}),
	}
}

// NewFromConfig builds a Predictor with its cache connection taken from the
// application configuration. The cache is skipped when disabled or when Redis
// is unreachable; predictions never depend on it.
func NewFromConfig(ctx context.Context, b *calibration.Bundle, cfg *config.Config, log logger.Logger, obs *observability.Observability) *Predictor {
	var cache *redis.Client
	if cfg.Cache.Enabled {
		rc, err := database.NewRedis(cfg.Database.Redis)
		if err == nil {
			if err := rc.Ping(ctx); err != nil {
				log.WithError(err).Warn("redis unreachable, prediction cache disabled", nil)
			} else {
				cache = rc.Client
			}
		}
	}
	return New(b, cfg, log, cache, obs)
}

// PredictSchools produces the per-school predictions and list metrics for
// one applicant. Schools without calibrated constants end up in Skipped;
// the batch itself never fails for a missing entity.
func (p *Predictor) PredictSchools(ctx context.Context, applicant *models.ApplicantProfile, schools []models.SchoolData) (*Response, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := p.logger.WithFields(map[string]interface{}{"requestId": requestID})

	cacheKey := p.cacheKey(applicant, schools)
	if cached := p.fromCache(ctx, cacheKey, log); cached != nil {
		cached.RequestID = requestID
		cached.Cached = true
		return cached, nil
	}

	list := p.model.PredictList(applicant, schools)

	resp := &Response{
		RequestID: requestID,
		Schools:   make([]models.SchoolPredictionResponse, 0, len(list.Schools)),
		Skipped:   list.Skipped,
	}
	for _, id := range list.Skipped {
		metrics.PredictionsSkipped.WithLabelValues("calibration_missing").Inc()
		log.Warn("school skipped, no calibration", map[string]interface{}{"schoolId": id})
	}

	simInput := make([]montecarlo.SchoolProbability, 0, len(list.Schools))
	for _, pred := range list.Schools {
		simInput = append(simInput, montecarlo.SchoolProbability{
			SchoolID:   pred.SchoolID,
			PInterview: pred.PInterview,
			PAccept:    pred.PAccept,
		})

		sp := models.SchoolPredictionResponse{
			SchoolID:  pred.SchoolID,
			Name:      pred.Name,
			Category:  pred.Category,
			Breakdown: pred.Breakdown,
		}

		bootStart := time.Now()
		if unc, ok := p.boot.PredictWithUncertainty(applicant, p.schoolData(pred.SchoolID, schools)); ok {
			sp.PInterview = unc.PInterview
			sp.PAcceptGivenInterview = unc.PAccept
			sp.PCombined = unc.PCombined
		} else {
			sp.PInterview = models.PointInterval(pred.PInterview)
			sp.PAcceptGivenInterview = models.PointInterval(pred.PAccept)
			sp.PCombined = models.PointInterval(pred.PCombined)
		}
		metrics.BootstrapDuration.Observe(time.Since(bootStart).Seconds())

		metrics.PredictionsComputed.WithLabelValues(string(pred.Category)).Inc()
		if p.obs != nil {
			p.obs.RecordPrediction(ctx, string(pred.Category))
		}

		resp.Schools = append(resp.Schools, sp)
	}

	sim := p.sim.Run(ctx, simInput)
	metrics.SimulationTrials.Add(float64(sim.Trials))
	resp.List = models.ListMetricsResponse{
		ExpectedInterviews:      sim.InterviewCount,
		ExpectedAcceptances:     sim.AcceptCount,
		PAtLeastOne:             sim.PAtLeastOne,
		Distribution:            sim.Distribution,
		PerSchoolRates:          sim.PerSchoolRates,
		CountVariance:           sim.CountVariance,
		MeanPairwiseCorrelation: sim.MeanPairwiseCorrelation,
		Trials:                  sim.Trials,
	}

	p.toCache(ctx, cacheKey, resp, log)

	elapsed := time.Since(start)
	metrics.PredictionDuration.Observe(elapsed.Seconds())
	if p.obs != nil {
		p.obs.RecordPredictionDuration(ctx, elapsed, "ok")
	}
	log.Info("prediction complete", map[string]interface{}{
		"schools":  len(resp.Schools),
		"skipped":  len(resp.Skipped),
		"duration": elapsed.String(),
	})

	return resp, nil
}

// ListUncertainty bootstraps the list-level aggregates, propagating both
// parameter and shared random-effect uncertainty across the list.
func (p *Predictor) ListUncertainty(applicant *models.ApplicantProfile, schools []models.SchoolData) *bootstrap.ListUncertainty {
	return p.boot.PredictListWithUncertainty(applicant, schools)
}

func (p *Predictor) schoolData(id string, schools []models.SchoolData) models.SchoolData {
	for _, s := range schools {
		if s.ID == id {
			return s
		}
	}
	return models.SchoolData{ID: id}
}

// cacheKey fingerprints the applicant, the school list, and the bundle
// version. Any change to the calibration invalidates prior entries.
func (p *Predictor) cacheKey(applicant *models.ApplicantProfile, schools []models.SchoolData) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(applicant)
	for _, s := range schools {
		h.Write([]byte(s.ID))
		h.Write([]byte{0})
	}
	h.Write([]byte(p.bundle.Version))
	return "prediction:" + hex.EncodeToString(h.Sum(nil))
}

func (p *Predictor) fromCache(ctx context.Context, key string, log logger.Logger) *Response {
	if p.cache == nil {
		return nil
	}
	val, err := p.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).Warn("cache read failed", nil)
		}
		metrics.CacheMisses.Inc()
		return nil
	}

	var resp Response
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		metrics.CacheMisses.Inc()
		return nil
	}
	metrics.CacheHits.Inc()
	return &resp
}

func (p *Predictor) toCache(ctx context.Context, key string, resp *Response, log logger.Logger) {
	if p.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, key, data, p.cacheTTL).Err(); err != nil {
		log.WithError(err).Warn("cache write failed", nil)
	}
}
