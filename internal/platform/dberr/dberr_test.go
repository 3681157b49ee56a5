// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/platform/dberr"
)

/*
TestIsNoRows verifies detection of the pgx no-rows sentinel, including
wrapped errors.
*/
func TestIsNoRows(t *testing.T) {
	// 1. Direct sentinel
	assert.True(t, dberr.IsNoRows(pgx.ErrNoRows))

	// 2. Wrapped sentinel
	wrapped := errors.Join(errors.New("query account"), pgx.ErrNoRows)
	assert.True(t, dberr.IsNoRows(wrapped))

	// 3. Unrelated errors
	assert.False(t, dberr.IsNoRows(errors.New("connection reset")))
	assert.False(t, dberr.IsNoRows(nil))
}

/*
TestIsUniqueViolation verifies SQLSTATE 23505 classification.
*/
func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	assert.True(t, dberr.IsUniqueViolation(unique))

	// Other constraint violations must not be treated as duplicates.
	foreignKey := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	assert.False(t, dberr.IsUniqueViolation(foreignKey))

	assert.False(t, dberr.IsUniqueViolation(errors.New("not a pg error")))
}

/*
TestWrap verifies the generic database-to-application error mapping.
*/
func TestWrap(t *testing.T) {
	// 1. nil passes through
	assert.NoError(t, dberr.Wrap(nil, "Duplicate entry"))

	// 2. No rows becomes a NotFound
	err := dberr.Wrap(pgx.ErrNoRows, "Duplicate entry")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)

	// 3. Unique violation becomes a Conflict with the caller's message
	err = dberr.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "Duplicate entry")
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, "Duplicate entry", ae.Message)

	// 4. Anything else is an opaque internal error
	err = dberr.Wrap(errors.New("connection reset"), "Duplicate entry")
	ae = apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INTERNAL_ERROR", ae.Code)
}
