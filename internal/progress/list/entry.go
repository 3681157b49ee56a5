// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

/*
Package list implements the reading-list domain of the Dokseo platform.

A reading-list entry binds a user to a work (a manhwa series) with a
lifecycle status. Entries are created the moment a user starts reading;
works a user has never touched are simply absent from storage.

# Architecture

  - Entities defined here encapsulate all business rules of the reading
    lifecycle (status transitions, completion timestamps).
  - Persistence and transport live in sibling files implementing the
    contracts defined by this package.
*/
package list

import (
	"time"
)

// # Status Lifecycle

// Status is the reading state of a work on a user's list.
type Status string

const (
	// StatusNotStarted is the implicit state of any work absent from the
	// list. It is never persisted; it only appears in aggregated views.
	StatusNotStarted Status = "not_started"

	// StatusReading marks a work the user is actively reading.
	StatusReading Status = "reading"

	// StatusCompleted marks a work the user finished.
	StatusCompleted Status = "completed"

	// StatusOnHold marks a work the user paused.
	StatusOnHold Status = "on_hold"

	// StatusDropped marks a work the user abandoned.
	StatusDropped Status = "dropped"
)

// storableStatuses are the statuses an entry row may carry. StatusNotStarted
// is deliberately excluded.
var storableStatuses = []Status{StatusReading, StatusCompleted, StatusOnHold, StatusDropped}

// Valid reports whether the status can be persisted on an entry.
func (status Status) Valid() bool {
	for _, candidate := range storableStatuses {
		if status == candidate {
			return true
		}
	}
	return false
}

// StatusValues returns the storable status names for validation messages.
func StatusValues() []string {
	values := make([]string, 0, len(storableStatuses))
	for _, status := range storableStatuses {
		values = append(values, string(status))
	}
	return values
}

// # Domain Entities

// Entry represents one work on a user's reading list.
type Entry struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	WorkID string `json:"work_id"`
	Status Status `json:"status"`

	// Score is an optional user rating (0-10). It is kept for aggregated
	// views; no public endpoint mutates it yet.
	Score *float64 `json:"score,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation in the reading-list domain.
const (
	FieldWorkID = "work_id"
	FieldStatus = "status"
)
