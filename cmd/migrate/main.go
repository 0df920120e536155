// migrate applies the embedded schema migrations to the configured
// postgres database. It reads the same layered configuration as the server.
//
//	APP_ENV=production go run ./cmd/migrate
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Veikkosuhonen/cloudcafe/internal/config"
	"github.com/Veikkosuhonen/cloudcafe/internal/storage/postgres"
	"github.com/Veikkosuhonen/cloudcafe/internal/telemetry"
)

func main() {
	cfg := config.MustLoad()

	log, err := telemetry.NewLogger(cfg.Env, os.Stdout)
	if err != nil {
		slog.Error("failed to initialise logger", slog.String("error", err.Error()))
		os.Exit(1)
	}
	telemetry.Init(log)

	if cfg.Database.Driver != config.DriverPostgres {
		log.Error("migrations only apply to the postgres driver", slog.String("driver", cfg.Database.Driver))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		log.Error("failed to connect", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	log.Info("applying migrations...")
	if err := postgres.Migrate(ctx, store.Pool); err != nil {
		log.Error("failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("migrations applied")
}
