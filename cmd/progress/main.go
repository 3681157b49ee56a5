// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

// Command progress is the entry point for the Dokseo reading-progress service.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Initialize the token verifier.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haeun-dev/dokseo/internal/platform/config"
	"github.com/haeun-dev/dokseo/internal/platform/constants"
	"github.com/haeun-dev/dokseo/internal/platform/health"
	"github.com/haeun-dev/dokseo/internal/platform/migration"
	pgstore "github.com/haeun-dev/dokseo/internal/platform/postgres"
	"github.com/haeun-dev/dokseo/internal/platform/sec"
	"github.com/haeun-dev/dokseo/internal/progress/api"
	"github.com/haeun-dev/dokseo/internal/progress/ledger"
	"github.com/haeun-dev/dokseo/internal/progress/list"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName), slog.String("service", "progress"))
	slog.SetDefault(log)

	log.Info("[Dokseo] progress_service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadProgress()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName), slog.String("service", "progress"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Token Verifier ─────────────────────────────────────────────────
	// This service never signs tokens; the shared secret is only used to
	// verify what the identity service issued.
	tokenService, err := sec.NewTokenService(cfg.TokenSecret, constants.TokenIssuer)
	must(log, err, "initialize token verifier")

	// ── 6. Health handlers ────────────────────────────────────────────────
	liveness, readiness := health.NewHandlers([]health.Dependency{
		{Name: "postgres", Probe: func() error {
			return pgstore.Ping(context.Background(), pool)
		}},
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	listStore := list.NewPostgresStore(pool)
	listService := list.NewService(listStore, log)
	listHandler := list.NewHandler(listService)

	ledgerStore := ledger.NewPostgresStore(pool)
	ledgerService := ledger.NewService(ledgerStore, log)
	ledgerHandler := ledger.NewHandler(ledgerService)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		List:      listHandler,
		Ledger:    ledgerHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, tokenService, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
