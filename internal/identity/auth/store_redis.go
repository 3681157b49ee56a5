// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/haeun-dev/dokseo/internal/platform/constants"
)

// # Revoked Token Repository

// RedisRevokedTokenRepository implements RevokedTokenRepository using Redis.
//
// Entries carry a TTL matching the token's remaining lifetime, so the denylist
// cleans itself up without a background sweeper.
type RedisRevokedTokenRepository struct {
	client *redis.Client
}

// NewRevokedTokenRepository creates a new Redis-backed RevokedTokenRepository.
func NewRevokedTokenRepository(client *redis.Client) *RedisRevokedTokenRepository {
	return &RedisRevokedTokenRepository{client: client}
}

/*
Revoke places a token ID on the denylist for the given duration.

Parameters:
  - context: context.Context
  - tokenID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisRevokedTokenRepository) Revoke(context context.Context, tokenID string, ttl time.Duration) error {

	// Use constants for key prefix
	key := constants.RedisPrefixRevokedToken + tokenID

	// Set the marker with TTL
	if err := repository.client.Set(context, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_revoked_token_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
IsRevoked reports whether a token ID is currently on the denylist.

Description: A missing key means the token was never revoked (or the
revocation already expired alongside the token itself).

Parameters:
  - context: context.Context
  - tokenID: string

Returns:
  - bool: True when the token has been revoked
  - error: Connectivity errors
*/
func (repository *RedisRevokedTokenRepository) IsRevoked(context context.Context, tokenID string) (bool, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixRevokedToken + tokenID

	// Probe the marker
	_, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_revoked_token_get_failed: %w", err)
	}

	// Key present: the token has been revoked
	return true, nil
}
