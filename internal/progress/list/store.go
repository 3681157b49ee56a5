// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package list

import (
	"context"
)

// # Data Access

// Store defines the data access contract for reading-list entries.
type Store interface {

	/*
		Create persists a brand-new reading-list entry.

		Parameters:
		  - context: context.Context
		  - entry: *Entry

		Returns:
		  - error: apperr.Conflict on duplicate (user, work), or persistence failures
	*/
	Create(context context.Context, entry *Entry) error

	/*
		FindByUserAndWork returns the entry binding a user to a work.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - workID: string

		Returns:
		  - *Entry: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByUserAndWork(context context.Context, userID, workID string) (*Entry, error)

	/*
		UpdateStatus persists a status change, including the completion timestamp.

		Parameters:
		  - context: context.Context
		  - entry: *Entry (carrying the new Status and CompletedAt)

		Returns:
		  - error: Persistence failures
	*/
	UpdateStatus(context context.Context, entry *Entry) error

	/*
		ListByUser returns every entry on the user's list, most recently
		updated first.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []Entry: All entries for the user
		  - error: Retrieval failures
	*/
	ListByUser(context context.Context, userID string) ([]Entry, error)
}
