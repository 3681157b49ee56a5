// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

/*
Package account handles user profile management for authenticated members.

It provides functionalities for users to view and update their private
identity data.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Storage: The contract below is satisfied by [auth.PostgresUserRepository];
    both packages share the users.account table.
*/
package account

import (
	"context"

	"github.com/haeun-dev/dokseo/internal/identity/auth"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user profiles.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		UpdateDisplayName replaces only the user's display name.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - displayName: string

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	UpdateDisplayName(context context.Context, userID, displayName string) error
}
