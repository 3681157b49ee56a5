// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun-dev/dokseo/internal/gateway/client"
	"github.com/haeun-dev/dokseo/internal/platform/apperr"
)

/*
TestClient_SuccessEnvelope verifies that a 200 response with a data envelope
is decoded into the caller's structure.
*/
func TestClient_SuccessEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/users", request.URL.Path)
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"data":{"id":"user-1","display_name":"Haeun"}}`))
	}))
	defer server.Close()

	backend := client.New(server.URL, "identity", time.Second)

	var out struct {
		Data struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
		} `json:"data"`
	}
	err := backend.Get(context.Background(), "/users", &out)

	require.NoError(t, err)
	assert.Equal(t, "user-1", out.Data.ID)
	assert.Equal(t, "Haeun", out.Data.DisplayName)
}

/*
TestClient_ErrorEnvelope verifies that backend error envelopes are relayed
with their original status, code, and message.
*/
func TestClient_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusConflict)
		writer.Write([]byte(`{"error":"Work is already on the reading list","code":"CONFLICT"}`))
	}))
	defer server.Close()

	backend := client.New(server.URL, "progress", time.Second)
	err := backend.Post(context.Background(), "/reading-lists", map[string]string{"work_id": "solo-leveling"}, nil)

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusConflict, appError.HTTPStatus)
	assert.Equal(t, "CONFLICT", appError.Code)
	assert.Equal(t, "Work is already on the reading list", appError.Message)
}

/*
TestClient_NonJSONSuccess verifies that a 2xx response without a JSON content
type succeeds and leaves the caller's value empty.
*/
func TestClient_NonJSONSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/plain")
		writer.Write([]byte("OK"))
	}))
	defer server.Close()

	backend := client.New(server.URL, "identity", time.Second)

	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	err := backend.Get(context.Background(), "/users", &out)

	require.NoError(t, err)
	assert.Empty(t, out.Data.ID)
}

/*
TestClient_JSONContentTypeWithCharset verifies that content-type parameters
(charset) do not prevent decoding.
*/
func TestClient_JSONContentTypeWithCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		writer.Write([]byte(`{"data":{"id":"user-9"}}`))
	}))
	defer server.Close()

	backend := client.New(server.URL, "identity", time.Second)

	var out struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	err := backend.Get(context.Background(), "/users", &out)

	require.NoError(t, err)
	assert.Equal(t, "user-9", out.Data.ID)
}

/*
TestClient_NonEnvelopeError verifies that a non-JSON error body (proxy page,
plain text) does not leak to the caller's message.
*/
func TestClient_NonEnvelopeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		writer.Write([]byte("<html>502 Bad Gateway</html>"))
	}))
	defer server.Close()

	backend := client.New(server.URL, "progress", time.Second)
	err := backend.Get(context.Background(), "/reading-lists", nil)

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadGateway, appError.HTTPStatus)
	assert.NotContains(t, appError.Message, "html")
}

/*
TestClient_TransportFailure verifies that an unreachable backend surfaces as
UPSTREAM_ERROR with a 500 status.
*/
func TestClient_TransportFailure(t *testing.T) {
	// Grab a port that refuses connections by closing the server first.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	backend := client.New(server.URL, "identity", time.Second)
	err := backend.Get(context.Background(), "/users", nil)

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UPSTREAM_ERROR", appError.Code)
	assert.Equal(t, http.StatusInternalServerError, appError.HTTPStatus)
}

/*
TestClient_BearerToken verifies that WithToken attaches the Authorization
header without mutating the original client.
*/
func TestClient_BearerToken(t *testing.T) {
	var seenAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenAuthorization = request.Header.Get("Authorization")
		writer.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	backend := client.New(server.URL, "progress", time.Second)

	// 1. Bound copy carries the token
	err := backend.WithToken("token-123").Get(context.Background(), "/reading-lists", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", seenAuthorization)

	// 2. The original client stays anonymous
	err = backend.Get(context.Background(), "/reading-lists", nil)
	require.NoError(t, err)
	assert.Empty(t, seenAuthorization)
}
