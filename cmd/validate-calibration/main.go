// cmd/validate-calibration/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"medadmit-engine/internal/calibration"
	"medadmit-engine/internal/common/config"
	"medadmit-engine/internal/common/database"
	"medadmit-engine/internal/common/logger"
	"medadmit-engine/internal/validation"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewStructured("info", "console")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bundle, err := loadBundle(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("calibration load failed", zap.Error(err))
	}
	zapLog.Info("calibration bundle loaded",
		zap.String("version", bundle.Version),
		zap.String("source", cfg.Calibration.Source),
		zap.Int("schools", len(bundle.Schools)),
	)

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			zapLog.Info("metrics server listening", zap.String("address", cfg.Metrics.ListenAddress))
			if err := http.ListenAndServe(cfg.Metrics.ListenAddress, mux); err != nil {
				zapLog.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	report := validation.New(bundle, log).RunAll()
	fmt.Println(report.Markdown())

	if !report.Passed {
		os.Exit(1)
	}
}

// loadBundle resolves the configured calibration source. The postgres source
// overlays database-held school parameters on the base bundle so table and
// effect definitions still come from the bundle itself.
func loadBundle(ctx context.Context, cfg *config.Config, log logger.Logger) (*calibration.Bundle, error) {
	switch cfg.Calibration.Source {
	case "file":
		return calibration.LoadFile(cfg.Calibration.BundlePath)
	case "postgres":
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		defer pg.Close()
		if err := pg.Ping(ctx); err != nil {
			return nil, err
		}
		schools, err := calibration.NewSQLSource(pg.DB, log).LoadSchools(ctx, cfg.Calibration.Version)
		if err != nil {
			return nil, err
		}
		return calibration.DefaultBundle().WithSchools(schools), nil
	default:
		return calibration.DefaultBundle(), nil
	}
}
