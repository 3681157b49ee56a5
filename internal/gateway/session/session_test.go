// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun-dev/dokseo/internal/gateway/session"
	"github.com/haeun-dev/dokseo/internal/platform/constants"
	"github.com/haeun-dev/dokseo/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) (*session.Manager, *sec.TokenService) {
	t.Helper()
	tokens, err := sec.NewTokenService(testSecret, constants.TokenIssuer)
	require.NoError(t, err)
	return session.NewManager(tokens, false), tokens
}

/*
TestManager_Resolve verifies the round trip: a real signed token in the
cookie resolves back to the identity claims.
*/
func TestManager_Resolve(t *testing.T) {
	manager, tokens := newTestManager(t)

	token, err := tokens.GenerateAccessToken("user-1", "haeun@example.com", "Haeun", time.Hour)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/library", nil)
	request.AddCookie(manager.Cookie(token))

	resolved, err := manager.Resolve(request)

	require.NoError(t, err)
	assert.Equal(t, "user-1", resolved.UserID)
	assert.Equal(t, "haeun@example.com", resolved.Email)
	assert.Equal(t, "Haeun", resolved.DisplayName)
	assert.Equal(t, token, resolved.Token)
	assert.True(t, resolved.ExpiresAt.After(time.Now()))
}

/*
TestManager_Resolve_MissingCookie verifies that a request without the
session cookie is Unauthorized.
*/
func TestManager_Resolve_MissingCookie(t *testing.T) {
	manager, _ := newTestManager(t)

	request := httptest.NewRequest(http.MethodGet, "/library", nil)
	resolved, err := manager.Resolve(request)

	assert.Nil(t, resolved)
	require.Error(t, err)
}

/*
TestManager_Resolve_ExpiredToken verifies that an expired embedded token is
rejected even though the cookie itself is still present.
*/
func TestManager_Resolve_ExpiredToken(t *testing.T) {
	manager, tokens := newTestManager(t)

	token, err := tokens.GenerateAccessToken("user-1", "haeun@example.com", "Haeun", -time.Minute)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/library", nil)
	request.AddCookie(manager.Cookie(token))

	resolved, err := manager.Resolve(request)

	assert.Nil(t, resolved)
	require.Error(t, err)
}

/*
TestManager_Require verifies the middleware: valid sessions flow into the
context, anonymous requests get a bare 401 and never reach the handler.
*/
func TestManager_Require(t *testing.T) {
	manager, tokens := newTestManager(t)

	var handlerCalls int
	protected := manager.Require(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		handlerCalls++
		resolved := session.FromContext(request.Context())
		require.NotNil(t, resolved)
		assert.Equal(t, "user-1", resolved.UserID)
	}))

	// 1. Anonymous request: 401, empty body, handler untouched
	recorder := httptest.NewRecorder()
	protected.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/library", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, recorder.Body.String())
	assert.Zero(t, handlerCalls)

	// 2. Authenticated request reaches the handler with the session in context
	token, err := tokens.GenerateAccessToken("user-1", "haeun@example.com", "Haeun", time.Hour)
	require.NoError(t, err)
	request := httptest.NewRequest(http.MethodGet, "/library", nil)
	request.AddCookie(manager.Cookie(token))

	recorder = httptest.NewRecorder()
	protected.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, handlerCalls)
}

/*
TestManager_Cookies verifies the security attributes of the session cookie
and its clearing counterpart.
*/
func TestManager_Cookies(t *testing.T) {
	manager, _ := newTestManager(t)

	cookie := manager.Cookie("some-token")
	assert.Equal(t, constants.SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(constants.SessionCookieMaxAge/time.Second), cookie.MaxAge)

	cleared := manager.ClearCookie()
	assert.Equal(t, constants.SessionCookieName, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
