// Copyright (c) 2026 Savora. All rights reserved.
// Author: eng@savora.app

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/savora/savora/internal/platform/sec"
	"github.com/savora/savora/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for the authenticated user's own account.
//
// It ensures that profile updates and credential rotation follow established
// business constraints.
type Service struct {
	userRepository    auth.UserRepository
	sessionRepository auth.SessionRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	userRepo auth.UserRepository,
	sessionRepo auth.SessionRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
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
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
//
// Nil pointers mean "leave unchanged", so PUT and PATCH share the same
// partial-update semantics.
type UpdateProfileInput struct {
	Email    *string
	Name     *string
	Password *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage. A provided password is hashed
and rotated separately from the profile row update.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Conflict (email taken), update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {

	// Fetch the current account state
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.Email != nil {
		user.Email = *input.Email
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	// Persist profile changes. A duplicate email surfaces as a Conflict.
	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	// Rotate credentials when a new password was supplied
	if input.Password != nil {
		hashedPassword, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}

		if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
			return nil, fmt.Errorf("account_service_password_update_failed: %w", err)
		}
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}
