// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package list

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/pkg/pointer"
	"github.com/haeun-dev/dokseo/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for reading lists.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a new [Service] with its store dependency.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// # Entry Creation

/*
Create adds a work to the user's reading list.

Description: The new entry always starts in the "reading" status with the
start timestamp set to now. Adding a work that is already on the list is a
Conflict regardless of its current status.

Parameters:
  - context: context.Context
  - userID: string
  - workID: string

Returns:
  - *Entry: Created entity
  - error: apperr.Conflict if the work is already listed, or storage errors
*/
func (service *Service) Create(context context.Context, userID, workID string) (*Entry, error) {

	// Fast-path duplicate check. The unique (userid, workid) index remains
	// the final arbiter under concurrent requests.
	_, err := service.store.FindByUserAndWork(context, userID, workID)
	if err == nil {
		return nil, apperr.Conflict("Work is already on the reading list")
	}

	now := time.Now()
	entry := &Entry{
		ID:        uuid.New(),
		UserID:    userID,
		WorkID:    workID,
		Status:    StatusReading,
		StartedAt: now,
	}

	if err := service.store.Create(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("reading_list_entry_created",
		slog.String("user_id", userID),
		slog.String("work_id", workID),
	)

	return entry, nil
}

// # Status Transitions

/*
Transition moves an existing entry to a new reading status.

Description: Transitioning into "completed" stamps the completion time;
transitioning out of it clears the stamp. A transition to the entry's
current status is a no-op that returns the entry unchanged.

Parameters:
  - context: context.Context
  - userID: string
  - workID: string
  - newStatus: Status

Returns:
  - *Entry: Updated entity
  - error: apperr.NotFound if the work is not listed, or storage errors
*/
func (service *Service) Transition(context context.Context, userID, workID string, newStatus Status) (*Entry, error) {

	entry, err := service.store.FindByUserAndWork(context, userID, workID)
	if err != nil {
		return nil, err
	}

	// Same-status transitions change nothing, including timestamps.
	if entry.Status == newStatus {
		return entry, nil
	}

	if newStatus == StatusCompleted {
		entry.CompletedAt = pointer.To(time.Now())
	} else if entry.Status == StatusCompleted {
		entry.CompletedAt = nil
	}
	entry.Status = newStatus

	if err := service.store.UpdateStatus(context, entry); err != nil {
		return nil, fmt.Errorf("list_service_transition_failed: %w", err)
	}

	service.logger.Info("reading_list_entry_transitioned",
		slog.String("user_id", userID),
		slog.String("work_id", workID),
		slog.String("status", string(newStatus)),
	)

	return entry, nil
}

// # Retrieval

/*
List returns every entry on the user's reading list.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Entry: All entries, most recently updated first
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, userID string) ([]Entry, error) {
	entries, err := service.store.ListByUser(context, userID)
	if err != nil {
		return nil, fmt.Errorf("list_service_list_failed: %w", err)
	}
	return entries, nil
}
