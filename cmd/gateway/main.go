// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

// Command gateway is the entry point for the Dokseo browser-facing gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Initialize the token verifier and session manager.
//  4. Build the backend service clients.
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// The gateway holds no storage connections of its own; its only dependencies
// are the two backend services.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/haeun-dev/dokseo/internal/gateway/api"
	"github.com/haeun-dev/dokseo/internal/gateway/bff"
	"github.com/haeun-dev/dokseo/internal/gateway/client"
	"github.com/haeun-dev/dokseo/internal/gateway/session"
	"github.com/haeun-dev/dokseo/internal/platform/config"
	"github.com/haeun-dev/dokseo/internal/platform/constants"
	"github.com/haeun-dev/dokseo/internal/platform/health"
	"github.com/haeun-dev/dokseo/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName), slog.String("service", "gateway"))
	slog.SetDefault(log)

	log.Info("[Dokseo] gateway_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.LoadGateway()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName), slog.String("service", "gateway"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("identity_url", cfg.IdentityURL),
		slog.String("progress_url", cfg.ProgressURL),
	)

	// ── 3. Session Manager ────────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.TokenSecret, constants.TokenIssuer)
	must(log, err, "initialize token verifier")

	sessionManager := session.NewManager(tokenService, cfg.IsProduction())

	// ── 4. Backend Clients ────────────────────────────────────────────────
	identityClient := client.New(cfg.IdentityURL, "identity", constants.UpstreamTimeout)
	progressClient := client.New(cfg.ProgressURL, "progress", constants.UpstreamTimeout)

	// ── 5. Health handlers (probe both backends) ──────────────────────────
	liveness, readiness := health.NewHandlers([]health.Dependency{
		{Name: "identity", Probe: func() error {
			return identityClient.Ping(context.Background())
		}},
		{Name: "progress", Probe: func() error {
			return progressClient.Ping(context.Background())
		}},
	}, log)

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		BFF:       bff.NewHandler(sessionManager, identityClient, progressClient, log),
		Sessions:  sessionManager,
	}

	server := api.NewServer(context.Background(), cfg, log, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
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
