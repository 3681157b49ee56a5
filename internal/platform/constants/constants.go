// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between the identity, progress, and gateway services.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP servers.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Token issuers, lifetimes, and session cookie configuration.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "dokseo"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// UpstreamTimeout bounds every call the gateway makes to a backend service.
	// It must stay below GlobalRequestTimeout so the gateway can still answer.
	UpstreamTimeout = 10 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// TokenIssuer is the standard 'iss' claim in access tokens.
	TokenIssuer = "dokseo.app"

	// AccessTokenTTL is the lifetime of an identity-issued bearer token.
	AccessTokenTTL = 1 * time.Hour

	// SessionCookieName is the browser cookie carrying the bearer token.
	SessionCookieName = "manhwa_session"

	// SessionCookiePath scopes the session cookie to the whole gateway.
	SessionCookiePath = "/"

	// SessionCookieMaxAge is the browser-side lifetime of the session cookie.
	// The embedded token expires earlier; the cookie is just the carrier.
	SessionCookieMaxAge = 7 * 24 * time.Hour

	// MinTokenSecretLength is the minimum byte length of the shared HMAC secret.
	MinTokenSecretLength = 32
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Database Schemas

const (
	SchemaUsers   = "users"
	SchemaLibrary = "library"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRevokedToken = "auth:revoked_token:"
)
