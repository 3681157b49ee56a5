// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

/*
Package session manages the browser-facing cookie session of the gateway.

The session cookie carries the identity-issued bearer token verbatim; the
gateway holds no session state of its own. Resolving a session is a pure
verification of the embedded token against the shared HMAC secret, so
restarting the gateway never signs anyone out.
*/
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/platform/constants"
	"github.com/haeun-dev/dokseo/internal/platform/ctxkey"
	"github.com/haeun-dev/dokseo/internal/platform/middleware"
)

// # Session Model

// Session is the identity a verified cookie resolves to.
//
// Token keeps the raw bearer string so handlers can relay it to the backend
// services on the user's behalf.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
	Token       string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// # Manager

// Manager resolves, mints, and clears browser session cookies.
type Manager struct {
	verifier middleware.TokenVerifier
	secure   bool
}

// NewManager constructs a session Manager.
//
// secure controls the cookie's Secure attribute; production deployments
// always set it.
func NewManager(verifier middleware.TokenVerifier, secure bool) *Manager {
	return &Manager{verifier: verifier, secure: secure}
}

/*
Resolve extracts and verifies the session cookie from a request.

Description: A missing cookie, a tampered token, and an expired token all
resolve to the same Unauthorized outcome; the distinction only matters in
logs, never to the browser.

Parameters:
  - request: *http.Request

Returns:
  - *Session: The verified identity
  - error: apperr.Unauthorized when no valid session exists
*/
func (manager *Manager) Resolve(request *http.Request) (*Session, error) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	claims, err := manager.verifier.VerifyToken(cookie.Value)
	if err != nil {
		return nil, apperr.Unauthorized("Session is invalid or expired")
	}

	session := &Session{
		UserID:      claims.UserID(),
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Token:       cookie.Value,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}

// Cookie builds the session cookie wrapping a freshly issued bearer token.
//
// HttpOnly keeps the token away from page scripts; SameSite=Lax blocks
// cross-site POSTs while still following top-level navigations.
func (manager *Manager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(constants.SessionCookieMaxAge / time.Second),
		Secure:   manager.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie builds the expired cookie that signs the browser out.
func (manager *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   manager.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// # Middleware

// Require guards a route group behind a valid session.
//
// Unauthenticated requests are rejected with a bare 401 before any backend
// call is made — the gateway never burns a downstream round trip on a
// request it already knows is anonymous.
func (manager *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		resolved, err := manager.Resolve(request)
		if err != nil {
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(request.Context(), ctxkey.KeySession, resolved)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// FromContext returns the session stored by [Manager.Require], or nil.
func FromContext(ctx context.Context) *Session {
	if resolved, ok := ctx.Value(ctxkey.KeySession).(*Session); ok {
		return resolved
	}
	return nil
}
