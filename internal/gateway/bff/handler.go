// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

/*
Package bff implements the browser-facing handlers of the Dokseo gateway.

The gateway is a backend-for-frontend: it translates between the browser's
cookie-based session and the bearer-token API of the backend services, and
aggregates multi-service views (the library page) into one response.

# Architecture

  - No business rules live here. Conflicts, transitions, and uniqueness are
    decided by the backend services; the gateway relays their envelopes and
    status codes verbatim.
  - The bearer token relayed downstream always comes from the verified
    session cookie, never from the incoming request headers.
*/
package bff

import (
	"encoding/json"
	"log/slog"

	"github.com/haeun-dev/dokseo/internal/gateway/client"
	"github.com/haeun-dev/dokseo/internal/gateway/session"
)

// Handler implements the gateway's HTTP endpoints.
type Handler struct {
	sessions *session.Manager
	identity *client.Client
	progress *client.Client
	logger   *slog.Logger
}

// NewHandler constructs a gateway [Handler] with its backend clients.
func NewHandler(sessions *session.Manager, identity, progress *client.Client, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		identity: identity,
		progress: progress,
		logger:   logger,
	}
}

// # Relay Envelopes

// dataEnvelope captures a backend single-resource response without
// interpreting the payload.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// pagedEnvelope captures a backend paginated response.
type pagedEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta"`
}
