// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

/*
Package auth implements the user identity layer of the Dokseo platform.

It defines the core domain entity (User) and the logic for registration,
credential verification, and token revocation.

# Architecture

This layer is the "Truth" of the identity service. Entities defined here have no
external dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered member of the Dokseo platform.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresAt   = "expires_at"
	FieldUser        = "user"
	FieldMessage     = "message"
)
