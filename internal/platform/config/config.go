// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into strongly-typed
Go structs, providing early validation and default values. Each binary has its
own schema; required fields missing at startup abort the process immediately.

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, token service) via constructors.
  - Zero Hidden State: No global variables are used to store config, and no
    constructor reads the environment on its own.

This ensures every service is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Shared Server Settings

// Server holds the settings common to every Dokseo binary.
type Server struct {
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`
}

// IsDevelopment reports whether the server is running in development mode.
func (s Server) IsDevelopment() bool {
	return s.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// # Identity Service

// Identity holds runtime configuration for the identity service.
type Identity struct {
	Server

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations/identity"`

	// Key-Value Cache (Redis) holding the revoked-token denylist.
	RedisURL string `env:"REDIS_URL,required"`

	// TokenSecret is the shared HMAC secret used to sign access tokens.
	TokenSecret string `env:"TOKEN_SECRET,required"`
}

// # Reading-Progress Service

// Progress holds runtime configuration for the reading-progress service.
type Progress struct {
	Server

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations/progress"`

	// TokenSecret is the shared HMAC secret used to verify access tokens.
	TokenSecret string `env:"TOKEN_SECRET,required"`
}

// # Gateway (BFF)

// Gateway holds runtime configuration for the browser-facing gateway.
type Gateway struct {
	Server

	// Downstream service base URLs.
	IdentityURL string `env:"IDENTITY_SERVICE_URL,required"`
	ProgressURL string `env:"PROGRESS_SERVICE_URL,required"`

	// TokenSecret is the shared HMAC secret used to verify the session token.
	TokenSecret string `env:"TOKEN_SECRET,required"`

	// Cross-Origin Resource Sharing: comma-separated extra allowed origins.
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// AllowedOrigins parses ExtraOrigins into a list of exact origin values.
func (g Gateway) AllowedOrigins() []string {
	if strings.TrimSpace(g.ExtraOrigins) == "" {
		return nil
	}

	parts := strings.Split(g.ExtraOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// # Configuration Loading

// LoadIdentity parses environment variables into an [Identity] struct.
func LoadIdentity() (*Identity, error) {
	cfg := &Identity{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// LoadProgress parses environment variables into a [Progress] struct.
func LoadProgress() (*Progress, error) {
	cfg := &Progress{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// LoadGateway parses environment variables into a [Gateway] struct.
func LoadGateway() (*Gateway, error) {
	cfg := &Gateway{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}
