// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdateDisplayName replaces only the user's display name.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - displayName: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateDisplayName(context context.Context, userID, displayName string) error
}

// # Volatile Data Access

// RevokedTokenRepository defines the contract for the volatile token denylist.
//
// Access tokens are stateless JWTs; logout works by denylisting the token's
// unique ID (jti) until its natural expiry.
type RevokedTokenRepository interface {

	/*
		Revoke places a token ID on the denylist for the given duration.

		Parameters:
		  - context: context.Context
		  - tokenID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, tokenID string, ttl time.Duration) error

	/*
		IsRevoked reports whether a token ID is currently on the denylist.

		Parameters:
		  - context: context.Context
		  - tokenID: string

		Returns:
		  - bool: True when the token has been revoked
		  - error: Retrieval failures
	*/
	IsRevoked(context context.Context, tokenID string) (bool, error)
}
