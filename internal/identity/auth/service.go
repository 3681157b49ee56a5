// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/platform/constants"
	"github.com/haeun-dev/dokseo/internal/platform/sec"
	"github.com/haeun-dev/dokseo/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - displayName: The display name of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, email, displayName string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository         UserRepository
	revokedTokenRepository RevokedTokenRepository
	tokenProvider          TokenProvider
}

// NewService constructs a new Service with necessary dependencies.
func NewService(
	userRepo UserRepository,
	revokedRepo RevokedTokenRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:         userRepo,
		revokedTokenRepository: revokedRepo,
		tokenProvider:          tokenProv,
	}
}

// AuthSession represents a successfully established user session.
type AuthSession struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	User        *User
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member, handles password hashing, and issues an
initial access token so the client is signed in immediately.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthSession: Transport-ready session identifiers
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthSession, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
	}

	// Persist the user to the database. The unique email index is the final
	// arbiter against concurrent registrations for the same address.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return service.issueSession(user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues an access token.

Description: Verifies identity with a constant-time password comparison and
returns a fresh signed token alongside the user profile.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {

	user, err := service.userRepository.FindByEmail(context, input.Email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.issueSession(user)
}

/*
Logout permanently revokes the caller's access token.

Description: Places the token's unique ID (jti) on the Redis denylist for the
remainder of its lifetime, so the stateless JWT can never be used again.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, claims *sec.AuthClaims) error {

	// Tokens without a jti or already past expiry have nothing to revoke.
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	if err := service.revokedTokenRepository.Revoke(context, claims.ID, remaining); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// issueSession generates a signed access token and wraps it with the user profile.
func (service *Service) issueSession(user *User) (*AuthSession, error) {
	expiresAt := time.Now().Add(constants.AccessTokenTTL)

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Email, user.DisplayName, constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
