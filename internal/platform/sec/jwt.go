// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It is injected into the Application layer via small
// provider interfaces defined where they are consumed.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/haeun-dev/dokseo/internal/platform/constants"
	"github.com/haeun-dev/dokseo/pkg/uuid"
)

// AuthClaims represents the payload embedded inside a bearer access token.
//
// # Why custom claims?
//
// By embedding the Email and DisplayName directly inside the token, the
// gateway can reconstruct the browser session and every backend service can
// establish the caller's identity WITHOUT querying the identity database on
// each request. Verification is a pure function of the token and the shared
// secret, so services scale horizontally with no coordination.
type AuthClaims struct {
	jwt.RegisteredClaims

	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// UserID returns the account identifier carried in the 'sub' claim.
func (claims *AuthClaims) UserID() string { return claims.Subject }

// TokenService handles generation and verification of access tokens using
// HS256 with a shared secret.
//
// The identity service is the only signer; the progress service and the
// gateway construct a TokenService purely to verify.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService from an explicit secret.
//
// The secret comes from service configuration; it is never read from the
// ambient environment here. Short secrets are rejected outright so a
// misconfigured deployment fails at startup instead of issuing weak tokens.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if len(secret) < constants.MinTokenSecretLength {
		return nil, fmt.Errorf("sec: token secret must be at least %d bytes", constants.MinTokenSecretLength)
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// GenerateAccessToken creates a new signed bearer token for a user.
//
// Each token carries a unique 'jti' so individual tokens can be revoked
// (denylisted) without invalidating the signing secret.
func (service *TokenService) GenerateAccessToken(userID, email, displayName string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Email:       email,
		DisplayName: displayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a token string.
//
// Expired or tampered tokens return an error; callers translate that into
// their own Unauthorized outcome.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}
