// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

// PostgreSQL-backed storage for reading-list entries.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique-constraint violations) are
// mapped to domain-friendly [apperr.AppError] types to avoid leaking storage
// implementation details.
package list

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/platform/dberr"
)

// # Entry Repository

// PostgresStore implements the Store interface using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
Create persists a new entry into the library.entry table.

Description: Persists the entry, ensuring timestamps are initialized if not
provided. The unique (userid, workid) index turns concurrent duplicates into
a client-safe Conflict.

Parameters:
  - context: context.Context
  - entry: *Entry (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate, or connectivity errors
*/
func (store *PostgresStore) Create(context context.Context, entry *Entry) error {
	const query = `
		INSERT INTO library.entry (
			id, userid, workid, status, score, startedat, completedat, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	_, err := store.pool.Exec(context, query,
		entry.ID,
		entry.UserID,
		entry.WorkID,
		entry.Status,
		entry.Score,
		entry.StartedAt,
		entry.CompletedAt,
		entry.CreatedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Work is already on the reading list")
	}

	return nil
}

/*
FindByUserAndWork retrieves the entry binding a user to a work.

Parameters:
  - context: context.Context
  - userID: string
  - workID: string

Returns:
  - *Entry: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (store *PostgresStore) FindByUserAndWork(context context.Context, userID, workID string) (*Entry, error) {
	const query = `
		SELECT id, userid, workid, status, score, startedat, completedat, createdat, updatedat
		FROM library.entry
		WHERE userid = $1 AND workid = $2`

	entry := &Entry{}
	err := store.pool.QueryRow(context, query, userID, workID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.WorkID,
		&entry.Status,
		&entry.Score,
		&entry.StartedAt,
		&entry.CompletedAt,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("Reading list entry")
		}
		return nil, fmt.Errorf("postgres_list_store_find_failed: %w", err)
	}

	return entry, nil
}

/*
UpdateStatus persists a status change, including the completion timestamp.

Parameters:
  - context: context.Context
  - entry: *Entry (carrying the new Status and CompletedAt)

Returns:
  - error: apperr.NotFound or execution errors
*/
func (store *PostgresStore) UpdateStatus(context context.Context, entry *Entry) error {
	const query = `
		UPDATE library.entry
		SET status = $2, completedat = $3, updatedat = $4
		WHERE id = $1`

	entry.UpdatedAt = time.Now()
	tag, err := store.pool.Exec(context, query,
		entry.ID,
		entry.Status,
		entry.CompletedAt,
		entry.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_list_store_update_status_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Reading list entry")
	}

	return nil
}

/*
ListByUser returns every entry on the user's list, most recently updated first.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Entry: All entries for the user
  - error: Retrieval failures
*/
func (store *PostgresStore) ListByUser(context context.Context, userID string) ([]Entry, error) {
	const query = `
		SELECT id, userid, workid, status, score, startedat, completedat, createdat, updatedat
		FROM library.entry
		WHERE userid = $1
		ORDER BY updatedat DESC`

	rows, err := store.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_list_store_list_failed: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.WorkID,
			&entry.Status,
			&entry.Score,
			&entry.StartedAt,
			&entry.CompletedAt,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_list_store_scan_failed: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_list_store_rows_failed: %w", err)
	}

	return entries, nil
}
