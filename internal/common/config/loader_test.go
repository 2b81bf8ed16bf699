// internal/common/config/loader_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineerrors "medadmit-engine/internal/common/errors"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "medadmit-engine", cfg.App.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "embedded", cfg.Calibration.Source)
	assert.Equal(t, "v1", cfg.Calibration.Version)
	assert.Equal(t, 5000, cfg.Simulation.Trials)
	assert.Equal(t, 0.5, cfg.Simulation.FileQualitySD)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, 200, cfg.Bootstrap.Iterations)
	assert.Equal(t, 0.15, cfg.Bootstrap.InterceptSD)
	assert.Equal(t, 900, cfg.Cache.TTLSeconds)
	assert.Equal(t, ":9090", cfg.Metrics.ListenAddress)
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Simulation.Trials = 100
	cfg.Bootstrap.Iterations = 50
	applyDefaults(cfg)

	assert.Equal(t, 100, cfg.Simulation.Trials)
	assert.Equal(t, 50, cfg.Bootstrap.Iterations)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(cfg *Config) {}, wantErr: false},
		{
			name:    "unknown log level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "unknown calibration source",
			mutate:  func(cfg *Config) { cfg.Calibration.Source = "s3" },
			wantErr: true,
		},
		{
			name:    "file source without path",
			mutate:  func(cfg *Config) { cfg.Calibration.Source = "file" },
			wantErr: true,
		},
		{
			name: "file source with path",
			mutate: func(cfg *Config) {
				cfg.Calibration.Source = "file"
				cfg.Calibration.BundlePath = "/etc/bundle.json"
			},
			wantErr: false,
		},
		{
			name:    "postgres source without host",
			mutate:  func(cfg *Config) { cfg.Calibration.Source = "postgres" },
			wantErr: true,
		},
		{
			name:    "zero trials",
			mutate:  func(cfg *Config) { cfg.Simulation.Trials = -1 },
			wantErr: true,
		},
		{
			name:    "negative simulation sd",
			mutate:  func(cfg *Config) { cfg.Simulation.FileQualitySD = -0.1 },
			wantErr: true,
		},
		{
			name:    "cache enabled without redis address",
			mutate:  func(cfg *Config) { cfg.Cache.Enabled = true },
			wantErr: true,
		},
		{
			name: "cache enabled with redis address",
			mutate: func(cfg *Config) {
				cfg.Cache.Enabled = true
				cfg.Database.Redis.Address = "localhost:6379"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, engineerrors.IsCode(err, engineerrors.ErrCodeConfigInvalid))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host: "db.internal", Port: 5432,
		Database: "engine", User: "svc", Password: "secret",
		SSLMode: "require",
	}
	assert.Equal(t,
		"host=db.internal port=5432 user=svc password=secret dbname=engine sslmode=require",
		cfg.GetDSN())
}

func TestCacheConfig_TTL(t *testing.T) {
	assert.Equal(t, 15*time.Minute, CacheConfig{TTLSeconds: 900}.TTL())
}
