// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package bff

import (
	"encoding/json"
	"log/slog"
	"net/http"

	requestutil "github.com/haeun-dev/dokseo/internal/platform/request"
	"github.com/haeun-dev/dokseo/internal/platform/respond"
	"github.com/haeun-dev/dokseo/internal/platform/validate"
)

// # Auth Payloads

// authPayload is the identity service's response to register and login.
type authPayload struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   json.RawMessage `json:"expires_at"`
	User        json.RawMessage `json:"user"`
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register creates an account and signs the browser in.

POST /auth/register

Description: Relays the registration to the identity service, then moves the
issued bearer token into the session cookie. The token itself never appears
in the response body — the cookie is the only carrier the browser sees.

Request:
  - Body: registerRequest (Email, Password, DisplayName)

Response:
  - 201: User: Created profile, with the session cookie set
  - 400/409: Relayed identity-service errors
*/
func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	var envelope struct {
		Data authPayload `json:"data"`
	}
	if err := handler.identity.Post(request.Context(), "/auth/register", input, &envelope); err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.sessions.Cookie(envelope.Data.AccessToken))
	respond.Created(writer, envelope.Data.User)
}

/*
Login authenticates and signs the browser in.

POST /auth/login

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: User: Profile, with the session cookie set
  - 401: Relayed identity-service error
*/
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	var envelope struct {
		Data authPayload `json:"data"`
	}
	if err := handler.identity.Post(request.Context(), "/auth/login", input, &envelope); err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.sessions.Cookie(envelope.Data.AccessToken))
	respond.OK(writer, envelope.Data.User)
}

/*
Logout signs the browser out.

POST /auth/logout

Description: Best-effort revocation of the embedded token at the identity
service, then unconditional clearing of the session cookie. A failed
revocation (identity service down, token already expired) never blocks the
sign-out: the cookie is gone either way.

Response:
  - 204: No Content: Cookie cleared
*/
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	if resolved, err := handler.sessions.Resolve(request); err == nil {
		if err := handler.identity.WithToken(resolved.Token).Post(request.Context(), "/auth/logout", nil, nil); err != nil {
			handler.logger.Warn("gateway_logout_revocation_failed",
				slog.String("user_id", resolved.UserID),
				slog.Any("error", err),
			)
		}
	}

	http.SetCookie(writer, handler.sessions.ClearCookie())
	respond.NoContent(writer)
}
