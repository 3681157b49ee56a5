// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

// PostgreSQL-backed storage for progress events.
//
// The (userid, workid, eventat DESC) index makes the latest-position lookup
// an index-only scan regardless of how long a reading history grows.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/platform/dberr"
	"github.com/haeun-dev/dokseo/pkg/pagination"
)

// # Event Repository

// PostgresStore implements the Store interface using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
Append persists a new event into the library.progressevent table.

Description: The unique (userid, workid, chapter) index turns a repeated
chapter into a client-safe Conflict.

Parameters:
  - context: context.Context
  - event: *Event (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate chapter, or connectivity errors
*/
func (store *PostgresStore) Append(context context.Context, event *Event) error {
	const query = `
		INSERT INTO library.progressevent (
			id, userid, workid, chapter, eventat, createdat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := store.pool.Exec(context, query,
		event.ID,
		event.UserID,
		event.WorkID,
		event.Chapter,
		event.EventAt,
		event.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Progress for this chapter is already recorded")
	}

	return nil
}

/*
FindLatest returns the most recent event for a work by event time.

Parameters:
  - context: context.Context
  - userID: string
  - workID: string

Returns:
  - *Event: The newest event
  - error: apperr.NotFound when no events exist, or database errors
*/
func (store *PostgresStore) FindLatest(context context.Context, userID, workID string) (*Event, error) {
	const query = `
		SELECT id, userid, workid, chapter, eventat, createdat
		FROM library.progressevent
		WHERE userid = $1 AND workid = $2
		ORDER BY eventat DESC
		LIMIT 1`

	event := &Event{}
	err := store.pool.QueryRow(context, query, userID, workID).Scan(
		&event.ID,
		&event.UserID,
		&event.WorkID,
		&event.Chapter,
		&event.EventAt,
		&event.CreatedAt,
	)

	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Progress for this work")
		}
		return nil, fmt.Errorf("postgres_ledger_store_find_latest_failed: %w", err)
	}

	return event, nil
}

/*
History returns a page of events for a work, newest first, plus the total count.

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
func (store *PostgresStore) History(context context.Context, userID, workID string, params pagination.Params) ([]Event, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM library.progressevent
		WHERE userid = $1 AND workid = $2`

	var total int
	if err := store.pool.QueryRow(context, countQuery, userID, workID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_ledger_store_count_failed: %w", err)
	}

	const query = `
		SELECT id, userid, workid, chapter, eventat, createdat
		FROM library.progressevent
		WHERE userid = $1 AND workid = $2
		ORDER BY eventat DESC
		LIMIT $3 OFFSET $4`

	rows, err := store.pool.Query(context, query, userID, workID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_ledger_store_history_failed: %w", err)
	}
	defer rows.Close()

	events := make([]Event, 0, params.Limit)
	for rows.Next() {
		var event Event
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.WorkID,
			&event.Chapter,
			&event.EventAt,
			&event.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_ledger_store_scan_failed: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_ledger_store_rows_failed: %w", err)
	}

	return events, total, nil
}
