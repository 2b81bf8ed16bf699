// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	engineerrors "medadmit-engine/internal/common/errors"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SIMULATION_TRIALS
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if not found.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root, so
// the binary behaves the same when run from cmd/ subdirectories or tests.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "medadmit-engine"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Calibration.Source == "" {
		cfg.Calibration.Source = "embedded"
	}
	if cfg.Calibration.Version == "" {
		cfg.Calibration.Version = "v1"
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 900
	}

	if cfg.Simulation.Trials == 0 {
		cfg.Simulation.Trials = 5000
	}
	if cfg.Simulation.FileQualitySD == 0 {
		cfg.Simulation.FileQualitySD = 0.5
	}
	if cfg.Simulation.InterviewSkillSD == 0 {
		cfg.Simulation.InterviewSkillSD = 0.5
	}
	if cfg.Simulation.Workers == 0 {
		cfg.Simulation.Workers = 4
	}

	if cfg.Bootstrap.Iterations == 0 {
		cfg.Bootstrap.Iterations = 200
	}
	if cfg.Bootstrap.InterceptSD == 0 {
		cfg.Bootstrap.InterceptSD = 0.15
	}
	if cfg.Bootstrap.SlopeSD == 0 {
		cfg.Bootstrap.SlopeSD = 0.10
	}
	if cfg.Bootstrap.BonusSD == 0 {
		cfg.Bootstrap.BonusSD = 0.10
	}
	if cfg.Bootstrap.CompetitivenessSD == 0 {
		cfg.Bootstrap.CompetitivenessSD = 0.15
	}
	if cfg.Bootstrap.ExperienceSD == 0 {
		cfg.Bootstrap.ExperienceSD = 0.10
	}

	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = ":9090"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return engineerrors.NewConfigInvalidError(
			fmt.Sprintf("logging.level: unknown level %q", cfg.Logging.Level))
	}

	switch cfg.Calibration.Source {
	case "embedded":
	case "file":
		if cfg.Calibration.BundlePath == "" {
			return engineerrors.NewConfigInvalidError(
				"calibration.bundle_path required when calibration.source is file")
		}
	case "postgres":
		if cfg.Database.Postgres.Host == "" {
			return engineerrors.NewConfigInvalidError(
				"database.postgres.host required when calibration.source is postgres")
		}
	default:
		return engineerrors.NewConfigInvalidError(
			fmt.Sprintf("calibration.source: unknown source %q", cfg.Calibration.Source))
	}

	if cfg.Simulation.Trials < 1 {
		return engineerrors.NewConfigInvalidError("simulation.trials must be positive")
	}
	if cfg.Simulation.Workers < 1 {
		return engineerrors.NewConfigInvalidError("simulation.workers must be positive")
	}
	if cfg.Simulation.FileQualitySD < 0 || cfg.Simulation.InterviewSkillSD < 0 {
		return engineerrors.NewConfigInvalidError("simulation standard deviations must be non-negative")
	}
	if cfg.Bootstrap.Iterations < 1 {
		return engineerrors.NewConfigInvalidError("bootstrap.iterations must be positive")
	}
	if cfg.Cache.Enabled && cfg.Database.Redis.Address == "" {
		return engineerrors.NewConfigInvalidError("database.redis.address required when cache.enabled")
	}

	return nil
}
