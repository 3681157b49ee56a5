// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haeun-dev/dokseo/internal/identity/auth"
	"github.com/haeun-dev/dokseo/internal/platform/apperr"
	"github.com/haeun-dev/dokseo/internal/platform/sec"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository that enforces email
// uniqueness the same way the Postgres unique index does.
type fakeUserRepository struct {
	users map[string]*auth.User // keyed by email
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := repository.users[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User with this email")
}

func (repository *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, ok := repository.users[user.Email]; ok {
		return apperr.Conflict("Email is already registered")
	}
	repository.users[user.Email] = user
	return nil
}

func (repository *fakeUserRepository) UpdateDisplayName(_ context.Context, userID, displayName string) error {
	for _, user := range repository.users {
		if user.ID == userID {
			user.DisplayName = displayName
			return nil
		}
	}
	return apperr.NotFound("User")
}

// fakeRevokedTokenRepository is an in-memory token denylist.
type fakeRevokedTokenRepository struct {
	revoked map[string]time.Duration
}

func newFakeRevokedTokenRepository() *fakeRevokedTokenRepository {
	return &fakeRevokedTokenRepository{revoked: make(map[string]time.Duration)}
}

func (repository *fakeRevokedTokenRepository) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	repository.revoked[tokenID] = ttl
	return nil
}

func (repository *fakeRevokedTokenRepository) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := repository.revoked[tokenID]
	return ok, nil
}

// fakeTokenProvider returns a deterministic token string.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "signed-token-for-" + userID, nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeRevokedTokenRepository) {
	users := newFakeUserRepository()
	revoked := newFakeRevokedTokenRepository()
	service := auth.NewService(users, revoked, fakeTokenProvider{})
	return service, users, revoked
}

// # Registration

/*
TestService_Register verifies that a new account is persisted with a hashed
password and an access token is issued immediately.
*/
func TestService_Register(t *testing.T) {
	service, users, _ := newTestService()

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Email:       "haeun@example.com",
		Password:    "correct horse battery",
		DisplayName: "Haeun",
	})

	require.NoError(t, err)
	require.NotNil(t, session)

	// 1. The session carries a bearer token bound to the new user
	assert.Equal(t, "Bearer", session.TokenType)
	assert.Equal(t, "signed-token-for-"+session.User.ID, session.AccessToken)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	// 2. The stored password is hashed, never plain text
	stored := users.users["haeun@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("correct horse battery", stored.PasswordHash))
}

/*
TestService_Register_DuplicateEmail verifies that registering an email twice
returns a Conflict and does not replace the original account.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, users, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email: "haeun@example.com", Password: "first-password", DisplayName: "Haeun",
	})
	require.NoError(t, err)
	originalID := users.users["haeun@example.com"].ID

	// 1. Second registration with the same email is rejected
	session, err := service.Register(context.Background(), auth.RegisterInput{
		Email: "haeun@example.com", Password: "second-password", DisplayName: "Imposter",
	})
	assert.Nil(t, session)
	assert.True(t, apperr.IsConflict(err))

	// 2. The original account is untouched
	assert.Equal(t, originalID, users.users["haeun@example.com"].ID)
	assert.Equal(t, "Haeun", users.users["haeun@example.com"].DisplayName)
}

// # Authentication

/*
TestService_Login verifies the happy path of credential verification.
*/
func TestService_Login(t *testing.T) {
	service, _, _ := newTestService()

	registered, err := service.Register(context.Background(), auth.RegisterInput{
		Email: "reader@example.com", Password: "reading-is-fun", DisplayName: "Reader",
	})
	require.NoError(t, err)

	session, err := service.Login(context.Background(), auth.LoginInput{
		Email: "reader@example.com", Password: "reading-is-fun",
	})

	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, session.User.ID)
	assert.Equal(t, "signed-token-for-"+registered.User.ID, session.AccessToken)
}

/*
TestService_Login_InvalidCredentials verifies that both an unknown email and a
wrong password produce the SAME generic Unauthorized error, preventing
account enumeration.
*/
func TestService_Login_InvalidCredentials(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Email: "reader@example.com", Password: "reading-is-fun", DisplayName: "Reader",
	})
	require.NoError(t, err)

	// 1. Wrong password
	_, wrongPasswordErr := service.Login(context.Background(), auth.LoginInput{
		Email: "reader@example.com", Password: "wrong-password",
	})
	require.Error(t, wrongPasswordErr)

	// 2. Unknown email
	_, unknownEmailErr := service.Login(context.Background(), auth.LoginInput{
		Email: "nobody@example.com", Password: "reading-is-fun",
	})
	require.Error(t, unknownEmailErr)

	// 3. Both failures are indistinguishable to the client
	first := apperr.As(wrongPasswordErr)
	second := apperr.As(unknownEmailErr)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Message, second.Message)
}

// # Revocation

/*
TestService_Logout verifies that logout denylists the token's jti for its
remaining lifetime and that expired tokens are a no-op.
*/
func TestService_Logout(t *testing.T) {
	service, _, revoked := newTestService()

	// 1. A live token gets denylisted
	liveClaims := &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "token-jti-1",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
		},
	}
	require.NoError(t, service.Logout(context.Background(), liveClaims))

	isRevoked, err := revoked.IsRevoked(context.Background(), "token-jti-1")
	require.NoError(t, err)
	assert.True(t, isRevoked)

	// 2. An already-expired token is skipped entirely
	expiredClaims := &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "token-jti-2",
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	require.NoError(t, service.Logout(context.Background(), expiredClaims))

	isRevoked, err = revoked.IsRevoked(context.Background(), "token-jti-2")
	require.NoError(t, err)
	assert.False(t, isRevoked)
}
