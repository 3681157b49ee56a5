// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/haeun-dev/dokseo/pkg/pagination"
	"github.com/haeun-dev/dokseo/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for progress events.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a new [Service] with its store dependency.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// # Recording

/*
Record appends a chapter-completion event to the log.

Description: Each (user, work, chapter) triple may be recorded once; a
repeated chapter is a Conflict rather than a silent overwrite, so the
history stays an honest append-only record. The event time is assigned
server-side.

Parameters:
  - context: context.Context
  - userID: string
  - workID: string
  - chapter: float64

Returns:
  - *Event: Appended event
  - error: apperr.Conflict on duplicate chapter, or storage errors
*/
func (service *Service) Record(context context.Context, userID, workID string, chapter float64) (*Event, error) {

	event := &Event{
		ID:      uuid.New(),
		UserID:  userID,
		WorkID:  workID,
		Chapter: chapter,
		EventAt: time.Now(),
	}

	// No pre-check here: the unique (userid, workid, chapter) index detects
	// duplicates in one round trip.
	if err := service.store.Append(context, event); err != nil {
		return nil, err
	}

	service.logger.Info("progress_event_recorded",
		slog.String("user_id", userID),
		slog.String("work_id", workID),
		slog.Float64("chapter", chapter),
	)

	return event, nil
}

// # Retrieval

/*
Latest returns the user's current position in a work.

Description: The position is the event with the newest event time, NOT the
highest chapter number. A user who re-reads chapter 2 after finishing
chapter 3 is positioned at chapter 2.

Parameters:
  - context: context.Context
  - userID: string
  - workID: string

Returns:
  - *Event: The newest event
  - error: apperr.NotFound when no progress exists for the work
*/
func (service *Service) Latest(context context.Context, userID, workID string) (*Event, error) {
	event, err := service.store.FindLatest(context, userID, workID)
	if err != nil {
		return nil, err
	}
	return event, nil
}

/*
History returns a page of the user's progress events for a work, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - workID: string
  - params: pagination.Params

Returns:
  - []Event: One page of events
  - pagination.Meta: Page metadata with the total count
  - error: Retrieval failures
*/
func (service *Service) History(context context.Context, userID, workID string, params pagination.Params) ([]Event, pagination.Meta, error) {
	events, total, err := service.store.History(context, userID, workID, params)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("ledger_service_history_failed: %w", err)
	}
	return events, pagination.NewMeta(params.Page, params.Limit, total), nil
}
