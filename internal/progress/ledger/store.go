// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package ledger

import (
	"context"

	"github.com/haeun-dev/dokseo/pkg/pagination"
)

// # Data Access

// Store defines the data access contract for progress events.
type Store interface {

	/*
		Append persists a brand-new progress event.

		Parameters:
		  - context: context.Context
		  - event: *Event

		Returns:
		  - error: apperr.Conflict on duplicate (user, work, chapter), or persistence failures
	*/
	Append(context context.Context, event *Event) error

	/*
		FindLatest returns the most recent event for a work by event time.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - workID: string

		Returns:
		  - *Event: The newest event
		  - error: apperr.NotFound when no events exist, or retrieval failures
	*/
	FindLatest(context context.Context, userID, workID string) (*Event, error)

	/*
		History returns a page of events for a work, newest first, plus the
		total event count.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - workID: string
		  - params: pagination.Params

		Returns:
		  - []Event: One page of events
		  - int: Total number of events for the work
		  - error: Retrieval failures
	*/
	History(context context.Context, userID, workID string, params pagination.Params) ([]Event, int, error)
}
