// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

/*
Package client provides the typed HTTP client the gateway uses to call the
backend services.

# Error Translation

Backend services answer with the shared {data}/{error, code} envelopes. This
client decodes error envelopes back into [apperr.AppError] values so the
gateway can relay the original status code and message to the browser.
Transport-level failures (DNS, refused connections, timeouts) become
UPSTREAM_ERROR instead, keeping unreachable dependencies distinguishable
from backend-reported errors in the logs.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/platform/constants"
)

// # Client Definition

// Client calls one backend service with a fixed base URL and timeout.
//
// A Client is safe for concurrent use. Per-request bearer tokens are attached
// with [Client.WithToken], which returns a shallow bound copy.
type Client struct {
	baseURL     string
	serviceName string
	bearerToken string
	httpClient  *http.Client
}

// New constructs a Client for one backend service.
//
// The serviceName appears in UPSTREAM_ERROR messages and log lines.
func New(baseURL, serviceName string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		serviceName: serviceName,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// WithToken returns a copy of the client that attaches the given bearer
// token to every request. The zero-value token attaches nothing.
func (client *Client) WithToken(token string) *Client {
	bound := *client
	bound.bearerToken = token
	return &bound
}

// # Request Helpers

// Get performs a GET against the service's versioned API.
func (client *Client) Get(context context.Context, path string, out any) error {
	return client.request(context, http.MethodGet, path, nil, out)
}

// Post performs a POST with a JSON body against the service's versioned API.
func (client *Client) Post(context context.Context, path string, body, out any) error {
	return client.request(context, http.MethodPost, path, body, out)
}

// Put performs a PUT with a JSON body against the service's versioned API.
func (client *Client) Put(context context.Context, path string, body, out any) error {
	return client.request(context, http.MethodPut, path, body, out)
}

// errorEnvelope mirrors the backend error response shape.
type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// request performs one round trip and decodes the response into out.
//
// Paths are always joined under /api/v1 — the gateway never calls an
// unversioned backend route except the health probes (see [Client.Ping]).
func (client *Client) request(context context.Context, method, path string, body, out any) error {

	var requestBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client_encode_failed: %w", err)
		}
		requestBody = bytes.NewReader(encoded)
	}

	url := client.baseURL + "/api/v1" + path
	request, err := http.NewRequestWithContext(context, method, url, requestBody)
	if err != nil {
		return fmt.Errorf("client_build_request_failed: %w", err)
	}

	request.Header.Set(constants.HeaderContentType, "application/json")
	if client.bearerToken != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+client.bearerToken)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.Upstream(client.serviceName, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return apperr.Upstream(client.serviceName, err)
	}

	if response.StatusCode >= 400 {
		return client.decodeError(response.StatusCode, responseBody)
	}

	if out == nil || len(responseBody) == 0 {
		return nil
	}

	// A success response without a JSON content type carries no decodable
	// payload; the caller's out value stays empty.
	if !isJSONContentType(response.Header.Get(constants.HeaderContentType)) {
		return nil
	}

	if err := json.Unmarshal(responseBody, out); err != nil {
		return apperr.Upstream(client.serviceName, fmt.Errorf("client_decode_failed: %w", err))
	}

	return nil
}

// isJSONContentType reports whether a Content-Type header value declares a
// JSON body (ignoring parameters like charset).
func isJSONContentType(contentType string) bool {
	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	return strings.EqualFold(mediaType, "application/json")
}

// decodeError turns a backend error response into an [apperr.AppError]
// preserving the original status code, code, and message.
func (client *Client) decodeError(statusCode int, body []byte) error {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return &apperr.AppError{
			Code:       envelope.Code,
			Message:    envelope.Error,
			HTTPStatus: statusCode,
		}
	}

	// Non-envelope error body (proxy page, plain text). Keep the raw text
	// in the cause for the logs, never for the client.
	return &apperr.AppError{
		Code:       "UPSTREAM_ERROR",
		Message:    client.serviceName + " service returned an unexpected response",
		HTTPStatus: statusCode,
		Cause:      fmt.Errorf("raw upstream body: %s", string(body)),
	}
}

// # Health

// Ping probes the backend's unversioned /health endpoint. Used by the
// gateway's readiness handler.
func (client *Client) Ping(context context.Context) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, client.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("client_build_request_failed: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.Upstream(client.serviceName, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return apperr.Upstream(client.serviceName, fmt.Errorf("health probe returned %d", response.StatusCode))
	}

	return nil
}
