// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

/*
Package api wires together the HTTP router, middleware chain, and the BFF
handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary of the gateway.
  - Unlike the backend services, authentication here is cookie-based: the
    session middleware replaces the bearer-token Authenticate middleware.
  - Routes are mounted at the root, not under /api/v1 — the browser sees
    page-shaped paths, the versioned prefix is a backend concern.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/haeun-dev/dokseo/internal/gateway/bff"
	"github.com/haeun-dev/dokseo/internal/gateway/session"
	"github.com/haeun-dev/dokseo/internal/platform/config"
	"github.com/haeun-dev/dokseo/internal/platform/constants"
	"github.com/haeun-dev/dokseo/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the gateway's HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when both backends answer.
	Readiness http.HandlerFunc

	// BFF handles every browser-facing route.
	BFF *bff.Handler

	// Sessions guards the protected route group.
	Sessions *session.Manager
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Gateway, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Session Lifecycle
	// Register and login mint the cookie; logout clears it. Logout stays
	// outside the protected group so a browser with a stale cookie can
	// still sign out cleanly.
	r.Post("/auth/register", h.BFF.Register)
	r.Post("/auth/login", h.BFF.Login)
	r.Post("/auth/logout", h.BFF.Logout)

	// # Protected Browser API
	// Anonymous requests are answered with a bare 401 before any backend
	// round trip.
	r.Group(func(protected chi.Router) {
		protected.Use(h.Sessions.Require)

		protected.Get("/users", h.BFF.GetProfile)
		protected.Put("/users", h.BFF.UpdateProfile)

		protected.Get("/reading-lists", h.BFF.GetReadingList)
		protected.Post("/reading-lists", h.BFF.AddToReadingList)
		protected.Put("/reading-lists", h.BFF.TransitionReadingListEntry)

		protected.Post("/reading-progress-events", h.BFF.RecordProgress)
		protected.Get("/reading-progress-events", h.BFF.GetProgressHistory)

		protected.Get("/library", h.BFF.GetLibrary)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
