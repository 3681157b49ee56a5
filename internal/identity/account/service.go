// Copyright (c) 2026 Dokseo. All rights reserved.
// Author: haeun.dev@proton.me

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/haeun-dev/dokseo/internal/identity/auth"
)

// # Service Layer

// Service orchestrates business logic for user profiles.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
UpdateDisplayName changes the user's display name and returns the fresh profile.

Parameters:
  - context: context.Context
  - userID: string
  - displayName: string

Returns:
  - *auth.User: The updated user profile
  - error: Update or storage failures
*/
func (service *Service) UpdateDisplayName(context context.Context, userID, displayName string) (*auth.User, error) {

	if err := service.accountRepository.UpdateDisplayName(context, userID, displayName); err != nil {
		return nil, err
	}

	// Re-read so the response carries the refreshed updatedat timestamp.
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_reload_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}
