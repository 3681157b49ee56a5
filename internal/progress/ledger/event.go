// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

/*
Package ledger implements the chapter-progress event log of the Dokseo platform.

Every time a user finishes a chapter, one immutable event is appended. The
log is append-only: events are never updated or deleted, and "latest
position" queries resolve by event time, not by chapter number, so re-reads
of earlier chapters move the bookmark backwards as the user would expect.
*/
package ledger

import (
	"time"
)

// # Domain Entities

// Event records that a user read a chapter of a work at a point in time.
type Event struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	WorkID string `json:"work_id"`

	// Chapter supports fractional numbering for side stories (e.g. 10.5).
	Chapter float64 `json:"chapter"`

	EventAt   time.Time `json:"event_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation in the progress-event domain.
const (
	FieldWorkID  = "work_id"
	FieldChapter = "chapter"
)
