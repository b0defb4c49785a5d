package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"spot-scraper/internal/components/telemetry"
	"spot-scraper/internal/store"
	"spot-scraper/pkg/configutil"
	"spot-scraper/pkg/serviceutil"
)

type Config struct {
	BaseUrl           string  `json:"base_url"`
	Nim               string  `json:"nim"`
	Password          string  `json:"password"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	Database          string  `json:"database"`
	// Schedule is the cron spec `watch` scrapes on, in the portal's timezone.
	Schedule string                  `json:"schedule"`
	Tracing  telemetry.TracingConfig `json:"tracing"`
}

var defaultConfig = Config{
	BaseUrl:           "https://spot.unri.ac.id",
	RequestsPerSecond: 2,
	Database:          "spot.db",
	Schedule:          "0 7,19 * * *",
}

// loadConfig reads the config file and applies SPOT_NIM, SPOT_PASSWORD and --db on top.
// A missing config file is fine as long as the environment supplies what is needed.
func loadConfig() Config {
	cfg, err := configutil.ReadConfig(*configPath, defaultConfig)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		serviceutil.Fatal("failed to read config", err)
	}

	override := Config{
		Nim:      os.Getenv("SPOT_NIM"),
		Password: os.Getenv("SPOT_PASSWORD"),
		Database: *dbPath,
	}
	err = configutil.Override(&cfg, override)
	if err != nil {
		serviceutil.Fatal("failed to apply config overrides", err)
	}
	return cfg
}

func openStore(ctx context.Context, cfg Config) store.Store {
	db, err := store.Open(ctx, cfg.Database)
	if err != nil {
		serviceutil.Fatal("failed to open db", err)
	}
	slog.Debug("opened db", "database", cfg.Database)
	return db
}
