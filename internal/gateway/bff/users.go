// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package bff

import (
	"net/http"

	"github.com/haeun-dev/dokseo/internal/gateway/session"
	requestutil "github.com/haeun-dev/dokseo/internal/platform/request"
	"github.com/haeun-dev/dokseo/internal/platform/respond"
	"github.com/haeun-dev/dokseo/internal/platform/validate"
)

// # Profile Endpoints

/*
GetProfile returns the signed-in user's profile.

GET /users

Response:
  - 200: User: Profile relayed from the identity service
  - 401: Bare unauthorized (session middleware)
*/
func (handler *Handler) GetProfile(writer http.ResponseWriter, request *http.Request) {
	resolved := session.FromContext(request.Context())

	var envelope dataEnvelope
	if err := handler.identity.WithToken(resolved.Token).Get(request.Context(), "/users", &envelope); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, envelope.Data)
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

/*
UpdateProfile changes the signed-in user's display name.

PUT /users

Request:
  - Body: updateProfileRequest (DisplayName)

Response:
  - 200: User: Updated profile relayed from the identity service
  - 400: Relayed validation error
*/
func (handler *Handler) UpdateProfile(writer http.ResponseWriter, request *http.Request) {
	resolved := session.FromContext(request.Context())

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	var envelope dataEnvelope
	if err := handler.identity.WithToken(resolved.Token).Put(request.Context(), "/users", input, &envelope); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, envelope.Data)
}
