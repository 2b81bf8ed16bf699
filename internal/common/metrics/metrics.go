// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_predictions_total",
			Help: "Total number of per-school predictions computed",
		},
		[]string{"category"},
	)

	PredictionsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_predictions_skipped_total",
			Help: "Total number of schools skipped during prediction",
		},
		[]string{"reason"},
	)

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "engine_prediction_duration_seconds",
			Help: "Duration of full prediction requests in seconds",
		},
	)

	SimulationTrials = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_simulation_trials_total",
			Help: "Total number of Monte Carlo trials executed",
		},
	)

	BootstrapDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "engine_bootstrap_duration_seconds",
			Help: "Duration of bootstrap uncertainty runs in seconds",
		},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_validation_failures_total",
			Help: "Total number of failed calibration validation checks",
		},
		[]string{"check"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_cache_hits_total",
			Help: "Total number of prediction cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_cache_misses_total",
			Help: "Total number of prediction cache misses",
		},
	)
)
