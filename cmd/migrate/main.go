package main

// Aplica las migraciones de Postgres:
//   go run ./cmd/migrate

import (
	"context"
	"os"

	pg "regimen-tracker/internal/adapters/storage/postgres"
	"regimen-tracker/internal/config"
	"regimen-tracker/internal/platform/logger"
)

func main() {
	log := logger.NewFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if cfg.DBDSN == "" {
		log.Error("DB_DSN is required", nil)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := pg.Connect(ctx, cfg.DBDSN, pg.DefaultMigrateOptions())
	if err != nil {
		log.Error("failed to connect database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer db.Close()

	if err := pg.RunMigrations(ctx, db); err != nil {
		log.Error("failed to run migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	log.Info("migrations applied", nil)
}
