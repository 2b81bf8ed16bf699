// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Calibration CalibrationConfig `mapstructure:"calibration"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Simulation  SimulationConfig  `mapstructure:"simulation"`
	Bootstrap   BootstrapConfig   `mapstructure:"bootstrap"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// CalibrationConfig controls where the parameter bundle comes from.
// Source "embedded" uses the compiled-in defaults, "file" reads BundlePath,
// "postgres" overlays school parameters from the database on top of the
// bundle.
type CalibrationConfig struct {
	Source     string `mapstructure:"source"`
	BundlePath string `mapstructure:"bundle_path"`
	Version    string `mapstructure:"version"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls the prediction response cache.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds"`
}

// TTL returns the cache expiration as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SimulationConfig holds the correlated Monte Carlo defaults.
type SimulationConfig struct {
	Trials           int     `mapstructure:"trials"`
	FileQualitySD    float64 `mapstructure:"file_quality_sd"`
	InterviewSkillSD float64 `mapstructure:"interview_skill_sd"`
	Workers          int     `mapstructure:"workers"`
	Seed             int64   `mapstructure:"seed"`
}

// BootstrapConfig holds the parametric bootstrap defaults. SDs describe the
// known estimation uncertainty of each calibrated constant type.
type BootstrapConfig struct {
	Iterations           int     `mapstructure:"iterations"`
	InterceptSD          float64 `mapstructure:"intercept_sd"`
	SlopeSD              float64 `mapstructure:"slope_sd"`
	BonusSD              float64 `mapstructure:"bonus_sd"`
	CompetitivenessSD    float64 `mapstructure:"competitiveness_sd"`
	ExperienceSD         float64 `mapstructure:"experience_sd"`
	IncludeRandomEffects bool    `mapstructure:"include_random_effects"`
}

type MetricsConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	ListenAddress string `mapstructure:"listen_address"`
}
