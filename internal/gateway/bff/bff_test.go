// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package bff_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun-dev/dokseo/internal/gateway/bff"
	"github.com/haeun-dev/dokseo/internal/gateway/client"
	"github.com/haeun-dev/dokseo/internal/gateway/session"
	"github.com/haeun-dev/dokseo/internal/platform/constants"
	"github.com/haeun-dev/dokseo/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// testGateway bundles a BFF handler with its fake backends.
type testGateway struct {
	handler      *bff.Handler
	sessions     *session.Manager
	tokens       *sec.TokenService
	identityHits *atomic.Int64
	progressHits *atomic.Int64
	identityMux  *http.ServeMux
	progressMux  *http.ServeMux
}

func newTestGateway(t *testing.T) *testGateway {
	t.Helper()

	gateway := &testGateway{
		identityHits: &atomic.Int64{},
		progressHits: &atomic.Int64{},
		identityMux:  http.NewServeMux(),
		progressMux:  http.NewServeMux(),
	}

	identityServer := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gateway.identityHits.Add(1)
		gateway.identityMux.ServeHTTP(writer, request)
	}))
	t.Cleanup(identityServer.Close)

	progressServer := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gateway.progressHits.Add(1)
		gateway.progressMux.ServeHTTP(writer, request)
	}))
	t.Cleanup(progressServer.Close)

	tokens, err := sec.NewTokenService(testSecret, constants.TokenIssuer)
	require.NoError(t, err)

	gateway.tokens = tokens
	gateway.sessions = session.NewManager(tokens, false)
	gateway.handler = bff.NewHandler(
		gateway.sessions,
		client.New(identityServer.URL, "identity", time.Second),
		client.New(progressServer.URL, "progress", time.Second),
		slog.Default(),
	)

	return gateway
}

// signedRequest builds a request carrying a valid session cookie.
func (gateway *testGateway) signedRequest(t *testing.T, method, target string) *http.Request {
	t.Helper()
	token, err := gateway.tokens.GenerateAccessToken("user-1", "haeun@example.com", "Haeun", time.Hour)
	require.NoError(t, err)

	request := httptest.NewRequest(method, target, nil)
	request.AddCookie(gateway.sessions.Cookie(token))
	return request
}

/*
TestGateway_ProtectedWithoutSession verifies that anonymous requests to
protected routes are answered with a bare 401 and never reach a backend.
*/
func TestGateway_ProtectedWithoutSession(t *testing.T) {
	gateway := newTestGateway(t)

	protected := gateway.sessions.Require(http.HandlerFunc(gateway.handler.GetLibrary))

	recorder := httptest.NewRecorder()
	protected.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/library", nil))

	// 1. Bare 401 with no body
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, recorder.Body.String())

	// 2. Zero backend round trips
	assert.Zero(t, gateway.identityHits.Load())
	assert.Zero(t, gateway.progressHits.Load())
}

/*
TestHandler_Login verifies that a successful login moves the bearer token
into the session cookie and keeps it out of the response body.
*/
func TestHandler_Login(t *testing.T) {
	gateway := newTestGateway(t)

	gateway.identityMux.HandleFunc("/api/v1/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"data":{
			"access_token":"issued-token",
			"token_type":"Bearer",
			"expires_at":"2026-08-28T12:00:00Z",
			"user":{"id":"user-1","email":"haeun@example.com","display_name":"Haeun"}
		}}`))
	})

	request := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(`{"email":"haeun@example.com","password":"reading-is-fun"}`))
	recorder := httptest.NewRecorder()
	gateway.handler.Login(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	// 1. Cookie carries the issued token
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "issued-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// 2. The token never appears in the response body
	assert.NotContains(t, recorder.Body.String(), "issued-token")
	assert.Contains(t, recorder.Body.String(), "haeun@example.com")
}

/*
TestHandler_Login_RelaysUnauthorized verifies that identity-service
rejections pass through with their original status and message.
*/
func TestHandler_Login_RelaysUnauthorized(t *testing.T) {
	gateway := newTestGateway(t)

	gateway.identityMux.HandleFunc("/api/v1/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"error":"Invalid login credentials","code":"UNAUTHORIZED"}`))
	})

	request := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(`{"email":"haeun@example.com","password":"wrong"}`))
	recorder := httptest.NewRecorder()
	gateway.handler.Login(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid login credentials")
	assert.Empty(t, recorder.Result().Cookies())
}

/*
TestHandler_GetLibrary verifies the two-phase aggregation: profile plus
reading list, annotated with each work's latest event, where works without
progress (backend 404) simply omit the annotation.
*/
func TestHandler_GetLibrary(t *testing.T) {
	gateway := newTestGateway(t)

	gateway.identityMux.HandleFunc("/api/v1/users", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"data":{"id":"user-1","display_name":"Haeun"}}`))
	})
	gateway.progressMux.HandleFunc("/api/v1/reading-lists", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"data":[
			{"id":"entry-1","work_id":"solo-leveling","status":"reading"},
			{"id":"entry-2","work_id":"tower-of-god","status":"on_hold"}
		]}`))
	})
	gateway.progressMux.HandleFunc("/api/v1/reading-progress-events/latest", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		if request.URL.Query().Get("work_id") == "solo-leveling" {
			writer.Write([]byte(`{"data":{"id":"event-1","work_id":"solo-leveling","chapter":42}}`))
			return
		}
		writer.WriteHeader(http.StatusNotFound)
		writer.Write([]byte(`{"error":"Progress for this work not found","code":"NOT_FOUND"}`))
	})

	protected := gateway.sessions.Require(http.HandlerFunc(gateway.handler.GetLibrary))
	recorder := httptest.NewRecorder()
	protected.ServeHTTP(recorder, gateway.signedRequest(t, http.MethodGet, "/library"))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Data struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
			Entries []struct {
				Entry struct {
					WorkID string `json:"work_id"`
				} `json:"entry"`
				LatestEvent *struct {
					Chapter float64 `json:"chapter"`
				} `json:"latest_event"`
			} `json:"entries"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.Equal(t, "user-1", response.Data.User.ID)
	require.Len(t, response.Data.Entries, 2)

	byWork := map[string]*struct {
		Chapter float64 `json:"chapter"`
	}{}
	for _, entry := range response.Data.Entries {
		byWork[entry.Entry.WorkID] = entry.LatestEvent
	}

	// 1. A work with progress carries its latest event
	require.NotNil(t, byWork["solo-leveling"])
	assert.Equal(t, 42.0, byWork["solo-leveling"].Chapter)

	// 2. A work with no progress omits the annotation
	assert.Nil(t, byWork["tower-of-god"])
}

// jsonBody builds a request body reader from a JSON literal.
func jsonBody(literal string) io.Reader {
	return strings.NewReader(literal)
}
