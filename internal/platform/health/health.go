// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

// Package health contains the health check handlers for liveness and
// readiness probes, shared by all three Dokseo services.
package health

import (
	"log/slog"
	"net/http"

	"github.com/haeun-dev/dokseo/internal/platform/respond"
)

// Dependency is a single injectable checker for the /ready endpoint.
//
// Each service declares its own set: the identity service probes Postgres and
// Redis; the gateway probes its backend services.
type Dependency struct {
	// Name identifies the dependency in the readiness report.
	Name string

	// Probe returns nil when the dependency is reachable and healthy.
	Probe func() error
}

type healthHandler struct {
	dependencies []Dependency
	logger       *slog.Logger
}

// NewHandlers creates the /health and /ready http.HandlerFuncs.
func NewHandlers(deps []Dependency, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	results := make([]checkResult, 0, len(handler.dependencies))
	isSystemReady := true

	for _, dependency := range handler.dependencies {
		if dependency.Probe == nil {
			continue
		}

		result := checkResult{Name: dependency.Name, IsOK: true}
		if err := dependency.Probe(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed",
				slog.String("dependency", dependency.Name),
				slog.Any("error", err),
			)
		}
		results = append(results, result)
	}

	responseStatus := "ready"
	statusCode := http.StatusOK
	if !isSystemReady {
		responseStatus = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	respond.JSON(writer, statusCode, respond.SuccessEnvelope{Data: map[string]any{
		"status": responseStatus,
		"checks": results,
	}})
}
