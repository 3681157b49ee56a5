// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/platform/middleware"
	requestutil "github.com/haeun-dev/dokseo/internal/platform/request"
	"github.com/haeun-dev/dokseo/internal/platform/respond"
	"github.com/haeun-dev/dokseo/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (Registration, Login,
// Logout). It is strictly responsible for transport concerns (status codes,
// headers, JSON).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and returns a JWT.
//   - POST /login    : Authenticates and returns a JWT.
//   - POST /logout   : Revokes the caller's token (protected).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

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
Register handles the creation of a new user account.

POST /api/v1/auth/register

Description: Validates input, checks for identity conflicts, persists a new
user profile, and issues an initial access token.

Request:
  - Body: registerRequest (Email, Password, DisplayName)

Response:
  - 201: AuthSession: Access token and created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		Required(FieldDisplayName, input.DisplayName).
		MaxLen(FieldDisplayName, input.DisplayName, 100)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   session.TokenType,
		FieldExpiresAt:   session.ExpiresAt,
		FieldUser:        session.User,
	})
}

/*
Login authenticates a user and issues an access token.

POST /api/v1/auth/login

Description: Verifies credentials and generates a signed JWT carrying the
user's identity claims.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: AuthSession: Access token and user profile
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   session.TokenType,
		FieldExpiresAt:   session.ExpiresAt,
		FieldUser:        session.User,
	})
}

/*
Logout revokes the caller's current access token.

POST /api/v1/auth/logout

Description: Denylists the token's unique ID until its natural expiry.
Idempotent: repeated calls with the same token succeed.

Response:
  - 204: No Content: Token revoked
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Revocation Middleware

// RejectRevoked returns a middleware that blocks requests carrying a
// denylisted token. It must run after the platform Authenticate middleware
// so the claims are already in the context.
//
// A Redis outage fails closed for revocation checks: the request is rejected
// rather than letting a possibly-revoked token through.
func RejectRevoked(repository RevokedTokenRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := requestutil.Claims(request)

			if claims != nil && claims.ID != "" {
				revoked, err := repository.IsRevoked(request.Context(), claims.ID)
				if err != nil {
					respond.Error(writer, request, err)
					return
				}
				if revoked {
					respond.Error(writer, request, apperr.Unauthorized("Token has been revoked"))
					return
				}
			}

			next.ServeHTTP(writer, request)
		})
	}
}
