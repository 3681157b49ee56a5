// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haeun-dev/dokseo/internal/identity/auth"
	requestutil "github.com/haeun-dev/dokseo/internal/platform/request"
	"github.com/haeun-dev/dokseo/internal/platform/respond"
	"github.com/haeun-dev/dokseo/internal/platform/validate"
)

// Handler implements the HTTP layer for user profile management.
//
// # Security
//
// All endpoints require an authenticated caller; the router mounts this
// handler behind the RequireAuth middleware.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getProfile)
	router.Put("/", handler.updateProfile)

	return router
}

// # Profile Endpoints

/*
GetProfile returns the authenticated user's private profile.

GET /api/v1/users

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateProfileRequest defines the expected JSON payload for profile updates.
type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

/*
UpdateProfile changes the authenticated user's display name.

PUT /api/v1/users

Request:
  - Body: updateProfileRequest (DisplayName)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldDisplayName, input.DisplayName).
		MaxLen(auth.FieldDisplayName, input.DisplayName, 100)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateDisplayName(request.Context(), userID, input.DisplayName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
