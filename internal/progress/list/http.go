// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package list

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/haeun-dev/dokseo/internal/platform/request"
	"github.com/haeun-dev/dokseo/internal/platform/respond"
	"github.com/haeun-dev/dokseo/internal/platform/validate"
	"github.com/haeun-dev/dokseo/pkg/slug"
)

// Handler implements the HTTP layer for reading lists.
//
// # Security
//
// Every endpoint requires an authenticated caller; the router mounts this
// handler behind the RequireAuth middleware. The user ID always comes from
// the verified token, never from the request body.
type Handler struct {
	listService *Service
}

// NewHandler constructs a new reading-list [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{listService: service}
}

// Routes returns a [chi.Router] configured with the reading-list endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Put("/", handler.transition)

	return router
}

// # Request Payloads

type createEntryRequest struct {
	WorkID string `json:"work_id"`
}

type transitionRequest struct {
	WorkID string `json:"work_id"`
	Status string `json:"status"`
}

/*
List returns the caller's full reading list.

GET /api/v1/reading-lists

Response:
  - 200: []Entry: All entries, most recently updated first
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.listService.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
Create adds a work to the caller's reading list in the "reading" status.

POST /api/v1/reading-lists

Request:
  - Body: createEntryRequest (WorkID)

Response:
  - 201: Entry: Created entry with started_at stamped
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Work is already on the list
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createEntryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Work IDs are slugs. Normalize before validating so clients may send
	// display titles ("Solo Leveling") or canonical IDs ("solo-leveling").
	workID := slug.From(input.WorkID)

	validator := &validate.Validator{}
	validator.Required(FieldWorkID, workID).
		MaxLen(FieldWorkID, workID, 200).
		Slug(FieldWorkID, workID)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.listService.Create(request.Context(), userID, workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
Transition moves a listed work to a new reading status.

PUT /api/v1/reading-lists

Request:
  - Body: transitionRequest (WorkID, Status)

Response:
  - 200: Entry: Updated entry
  - 400: ErrInvalidJSON: Unknown status or validation failure
  - 404: ErrNotFound: Work is not on the list
*/
func (handler *Handler) transition(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input transitionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	workID := slug.From(input.WorkID)

	validator := &validate.Validator{}
	validator.Required(FieldWorkID, workID).
		Slug(FieldWorkID, workID).
		Required(FieldStatus, input.Status).
		OneOf(FieldStatus, input.Status, StatusValues()...)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.listService.Transition(request.Context(), userID, workID, Status(input.Status))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}
