// @title regimen-tracker API
// @version 1.0
// @description Seguimiento de regímenes (medicación, suplementos, terapias) por paciente y detección de interacciones entre items activos.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"regimen-tracker/internal/adapters/auth/tokenverify"
	"regimen-tracker/internal/adapters/rulesource"
	pg "regimen-tracker/internal/adapters/storage/postgres"
	"regimen-tracker/internal/config"
	"regimen-tracker/internal/domain/interactions"
	"regimen-tracker/internal/middleware"
	"regimen-tracker/internal/platform/httpclient"
	"regimen-tracker/internal/platform/logger"
	"regimen-tracker/internal/platform/scheduler"
	"regimen-tracker/internal/ports/auth"
	"regimen-tracker/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	slog.SetDefault(log.Slog())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage: Postgres si hay DSN, si no in-memory.
	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Connect(ctx, cfg.DBDSN, pg.DefaultServerOptions())
		if err != nil {
			log.Error("failed to connect database", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		if err := pg.RunMigrations(ctx, db); err != nil {
			log.Error("failed to run migrations", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	client := httpclient.New(httpclient.DefaultTimeout)

	rules, origin, err := rulesource.Load(ctx, rulesource.Config{File: cfg.RulesFile, URL: cfg.RulesURL}, client)
	if err != nil {
		log.Error("failed to load interaction rules", map[string]any{"error": err.Error(), "origin": string(origin)})
		os.Exit(1)
	}
	log.Info("interaction rules loaded", map[string]any{"origin": string(origin), "rules": rules.Len()})

	var verifier auth.AuthVerifier
	if cfg.AuthVerifyURL != "" {
		verifier = tokenverify.New(tokenverify.Config{URL: cfg.AuthVerifyURL, APIKey: cfg.AuthAPIKey}, client)
	} else {
		log.Warn("AUTH_VERIFY_URL not set, accepting X-Debug-User-ID", map[string]any{"env": cfg.Env})
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRate > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRate, cfg.RateLimitCapacity)
		limiter.Cleanup(ctx, 30*time.Minute)
	}

	services := router.NewServices(db, interactions.NewMatcher(rules), log)

	sweep := scheduler.New(services.Dashboard, cfg.SweepInterval, log)
	if err := sweep.Start(); err != nil {
		log.Error("failed to start interaction sweep", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer sweep.Stop()

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier:   verifier,
			Logger:         log,
			RateLimiter:    limiter,
			MaxRequestBody: cfg.MaxRequestBody,
			Services:       services,
		}),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", map[string]any{"error": err.Error()})
		_ = srv.Close()
		return
	}
	log.Info("server exited gracefully", nil)
}
