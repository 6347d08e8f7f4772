package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/repositories"
	"taskdeck/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// userService implements the UserService interface
type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) services.UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// LoginWithProfile creates the user on first login and refreshes the
// profile picture and names on every later one.
func (s *userService) LoginWithProfile(ctx context.Context, profile *models.ExternalProfile) (*models.User, error) {
	if err := validation.ValidateStruct(profile,
		validation.Field(&profile.Provider, validation.Required),
		validation.Field(&profile.ProviderID, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	displayName := profile.DisplayName
	if displayName == "" {
		displayName = profile.Username
	}

	user := &models.User{
		ExternalID:  profile.ExternalID(),
		Username:    profile.Username,
		DisplayName: displayName,
		ProfileURL:  profile.ProfileURL,
		ProfilePic:  profile.ProfilePic,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		"id", user.ID,
		"external_id", user.ExternalID,
		"username", user.Username,
	)

	return user, nil
}

// ResolveExternal maps an external identity to a user ID without touching
// an existing user's profile
func (s *userService) ResolveExternal(ctx context.Context, profile *models.ExternalProfile) (string, error) {
	user, err := s.userRepo.GetByExternalID(ctx, profile.ExternalID())
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	user, err = s.LoginWithProfile(ctx, profile)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// GetProfile retrieves the current user
func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
