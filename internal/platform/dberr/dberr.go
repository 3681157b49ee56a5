// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Why SQLSTATE matters here
//
// Uniqueness rules (one reading-list entry per user and work, one progress
// event per chapter) are enforced by database constraints, not by
// check-then-insert sequences. Under concurrent duplicate requests the
// application-level pre-check can pass on both sides; the constraint is the
// correctness mechanism, and this package is where its violation becomes a
// client-visible Conflict.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
)

// ErrNotFound is a standard error returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// IsNoRows reports whether err is the pgx "no rows in result set" sentinel.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Repositories that want resource-specific messages classify with [IsNoRows]
// and [IsUniqueViolation] directly; Wrap is the generic fallback.
func Wrap(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}

	if IsNoRows(err) {
		return ErrNotFound
	}

	if IsUniqueViolation(err) {
		return apperr.Conflict(conflictMessage)
	}

	return apperr.Internal(err)
}
