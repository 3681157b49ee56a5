// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

// PostgreSQL-backed storage for the identity service.
//
// # Architecture
//
// Repositories in this file are strictly separated from domain logic. They
// implement domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows and unique-constraint
// violations) are mapped to domain-friendly [apperr.AppError] types to avoid
// leaking storage implementation details.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Persists account metadata, ensuring timestamps are initialized
if not provided. A concurrent insert with the same email surfaces as a
client-safe Conflict through the unique index.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, email, passwordhash, displayname, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Email is already registered")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Description: Performs a case-insensitive lookup on the account table.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, email, passwordhash, displayname, createdat, updatedat
		FROM users.account
		WHERE lower(email) = lower($1)`

	user := &User{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("User with this email")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, email, passwordhash, displayname, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
UpdateDisplayName replaces only the user's display name.

Description: Targeted update that refreshes the updatedat timestamp and
reports NotFound when the account no longer exists.

Parameters:
  - context: context.Context
  - userID: string
  - displayName: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) UpdateDisplayName(context context.Context, userID, displayName string) error {
	const query = `
		UPDATE users.account
		SET displayname = $2, updatedat = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, userID, displayName, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_display_name_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
