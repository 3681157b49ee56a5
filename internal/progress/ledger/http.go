// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/haeun-dev/dokseo/internal/platform/request"
	"github.com/haeun-dev/dokseo/internal/platform/respond"
	"github.com/haeun-dev/dokseo/internal/platform/validate"
	"github.com/haeun-dev/dokseo/pkg/pagination"
	"github.com/haeun-dev/dokseo/pkg/slug"
)

// Handler implements the HTTP layer for progress events.
//
// # Security
//
// Every endpoint requires an authenticated caller; the user ID always comes
// from the verified token, never from the request body or query string.
type Handler struct {
	ledgerService *Service
}

// NewHandler constructs a new progress-event [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{ledgerService: service}
}

// Routes returns a [chi.Router] configured with the progress-event endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.record)
	router.Get("/", handler.history)
	router.Get("/latest", handler.latest)

	return router
}

// # Request Payloads

type recordEventRequest struct {
	WorkID  string  `json:"work_id"`
	Chapter float64 `json:"chapter"`
}

/*
Record appends a chapter-completion event.

POST /api/v1/reading-progress-events

Request:
  - Body: recordEventRequest (WorkID, Chapter)

Response:
  - 201: Event: Appended event with server-assigned timestamp
  - 400: ErrInvalidJSON: Bad input or non-positive chapter
  - 409: ErrConflict: Chapter already recorded for this work
*/
func (handler *Handler) record(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input recordEventRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	workID := slug.From(input.WorkID)

	validator := &validate.Validator{}
	validator.Required(FieldWorkID, workID).
		Slug(FieldWorkID, workID).
		Positive(FieldChapter, input.Chapter)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.ledgerService.Record(request.Context(), userID, workID, input.Chapter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

/*
History returns a page of the caller's progress events for a work.

GET /api/v1/reading-progress-events?work_id={id}&page={n}&limit={n}

Response:
  - 200: []Event: One page of events, newest first, with pagination metadata
  - 400: ErrValidation: Missing work_id
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	workID := slug.From(request.URL.Query().Get(FieldWorkID))

	validator := &validate.Validator{}
	validator.Required(FieldWorkID, workID).Slug(FieldWorkID, workID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	events, meta, err := handler.ledgerService.History(request.Context(), userID, workID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, events, meta)
}

/*
Latest returns the caller's current position in a work.

GET /api/v1/reading-progress-events/latest?work_id={id}

Response:
  - 200: Event: Newest event by event time
  - 400: ErrValidation: Missing work_id
  - 404: ErrNotFound: No progress recorded for the work
*/
func (handler *Handler) latest(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	workID := slug.From(request.URL.Query().Get(FieldWorkID))

	validator := &validate.Validator{}
	validator.Required(FieldWorkID, workID).Slug(FieldWorkID, workID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.ledgerService.Latest(request.Context(), userID, workID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, event)
}
