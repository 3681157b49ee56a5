// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package bff

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"

	"github.com/haeun-dev/dokseo/internal/gateway/session"
	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	requestutil "github.com/haeun-dev/dokseo/internal/platform/request"
	"github.com/haeun-dev/dokseo/internal/platform/respond"
	"github.com/haeun-dev/dokseo/internal/platform/validate"
)

// # Reading List Relays

/*
GetReadingList returns the signed-in user's full reading list.

GET /reading-lists

Response:
  - 200: []Entry: Relayed from the progress service
*/
func (handler *Handler) GetReadingList(writer http.ResponseWriter, request *http.Request) {
	resolved := session.FromContext(request.Context())

	var envelope dataEnvelope
	if err := handler.progress.WithToken(resolved.Token).Get(request.Context(), "/reading-lists", &envelope); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, envelope.Data)
}

type createEntryRequest struct {
	WorkID string `json:"work_id"`
}

/*
AddToReadingList puts a work on the signed-in user's list.

POST /reading-lists

Response:
  - 201: Entry: Relayed from the progress service
  - 409: Relayed conflict when the work is already listed
*/
func (handler *Handler) AddToReadingList(writer http.ResponseWriter, request *http.Request) {
	resolved := session.FromContext(request.Context())

	var input createEntryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	var envelope dataEnvelope
	if err := handler.progress.WithToken(resolved.Token).Post(request.Context(), "/reading-lists", input, &envelope); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, envelope.Data)
}

type transitionRequest struct {
	WorkID string `json:"work_id"`
	Status string `json:"status"`
}

/*
TransitionReadingListEntry moves a listed work to a new status.

PUT /reading-lists

Response:
  - 200: Entry: Relayed from the progress service
  - 404: Relayed not-found when the work is not listed
*/
func (handler *Handler) TransitionReadingListEntry(writer http.ResponseWriter, request *http.Request) {
	resolved := session.FromContext(request.Context())

	var input transitionRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	var envelope dataEnvelope
	if err := handler.progress.WithToken(resolved.Token).Put(request.Context(), "/reading-lists", input, &envelope); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, envelope.Data)
}

// # Progress Event Relays

type recordEventRequest struct {
	WorkID  string  `json:"work_id"`
	Chapter float64 `json:"chapter"`
}

/*
RecordProgress appends a chapter-completion event.

POST /reading-progress-events

Response:
  - 201: Event: Relayed from the progress service
  - 409: Relayed conflict when the chapter is already recorded
*/
func (handler *Handler) RecordProgress(writer http.ResponseWriter, request *http.Request) {
	resolved := session.FromContext(request.Context())

	var input recordEventRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	var envelope dataEnvelope
	if err := handler.progress.WithToken(resolved.Token).Post(request.Context(), "/reading-progress-events", input, &envelope); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, envelope.Data)
}

/*
GetProgressHistory returns a page of progress events for a work.

GET /reading-progress-events?work_id={id}&page={n}&limit={n}

Response:
  - 200: []Event with pagination metadata, relayed from the progress service
*/
func (handler *Handler) GetProgressHistory(writer http.ResponseWriter, request *http.Request) {
	resolved := session.FromContext(request.Context())

	// Relay the supported query parameters verbatim.
	query := url.Values{}
	for _, parameter := range []string{"work_id", "page", "limit"} {
		if value := request.URL.Query().Get(parameter); value != "" {
			query.Set(parameter, value)
		}
	}

	var envelope pagedEnvelope
	path := "/reading-progress-events?" + query.Encode()
	if err := handler.progress.WithToken(resolved.Token).Get(request.Context(), path, &envelope); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, envelope)
}

// # Library Aggregation

// libraryEntry pairs a reading-list entry with the user's latest recorded
// position in that work.
type libraryEntry struct {
	Entry       json.RawMessage `json:"entry"`
	LatestEvent json.RawMessage `json:"latest_event,omitempty"`
}

// libraryView is the aggregated library page payload.
type libraryView struct {
	User    json.RawMessage `json:"user"`
	Entries []libraryEntry  `json:"entries"`
}

/*
GetLibrary returns the aggregated library page.

GET /library

Description: Fans out to both backend services — the profile from identity,
the reading list from progress, then the latest event for every listed work
— and folds the results into a single response. Works with no recorded
progress simply omit the latest_event field.

Response:
  - 200: libraryView: Profile plus annotated reading list
  - 500: First backend failure encountered during the fan-out
*/
func (handler *Handler) GetLibrary(writer http.ResponseWriter, request *http.Request) {
	resolved := session.FromContext(request.Context())

	identityClient := handler.identity.WithToken(resolved.Token)
	progressClient := handler.progress.WithToken(resolved.Token)

	// Phase 1: profile and reading list in parallel.
	var (
		waitGroup    sync.WaitGroup
		profile      dataEnvelope
		listEnvelope dataEnvelope
		profileErr   error
		listErr      error
	)

	waitGroup.Add(2)
	go func() {
		defer waitGroup.Done()
		profileErr = identityClient.Get(request.Context(), "/users", &profile)
	}()
	go func() {
		defer waitGroup.Done()
		listErr = progressClient.Get(request.Context(), "/reading-lists", &listEnvelope)
	}()
	waitGroup.Wait()

	if profileErr != nil {
		respond.Error(writer, request, profileErr)
		return
	}
	if listErr != nil {
		respond.Error(writer, request, listErr)
		return
	}

	// Split the list into raw entries plus the work IDs needed for phase 2.
	var rawEntries []json.RawMessage
	if err := json.Unmarshal(listEnvelope.Data, &rawEntries); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}
	var workRefs []struct {
		WorkID string `json:"work_id"`
	}
	if err := json.Unmarshal(listEnvelope.Data, &workRefs); err != nil {
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	// Phase 2: the latest event for every listed work in parallel. A work
	// without progress answers 404, which is a normal outcome here.
	view := libraryView{
		User:    profile.Data,
		Entries: make([]libraryEntry, len(rawEntries)),
	}
	latestErrors := make([]error, len(rawEntries))

	for index := range rawEntries {
		view.Entries[index].Entry = rawEntries[index]

		waitGroup.Add(1)
		go func(index int, workID string) {
			defer waitGroup.Done()

			var latest dataEnvelope
			err := progressClient.Get(request.Context(), "/reading-progress-events/latest?work_id="+url.QueryEscape(workID), &latest)
			if err != nil {
				if !apperr.IsNotFound(err) {
					latestErrors[index] = err
				}
				return
			}
			view.Entries[index].LatestEvent = latest.Data
		}(index, workRefs[index].WorkID)
	}
	waitGroup.Wait()

	for _, err := range latestErrors {
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	respond.OK(writer, view)
}
