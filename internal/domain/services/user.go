package services

import (
	"context"

	"taskdeck/internal/domain/models"
)

// UserService manages users created from external identities
type UserService interface {
	// LoginWithProfile creates or refreshes the user behind an external profile
	LoginWithProfile(ctx context.Context, profile *models.ExternalProfile) (*models.User, error)

	// ResolveExternal maps a verified external identity to a user ID,
	// creating the user on first sight
	ResolveExternal(ctx context.Context, profile *models.ExternalProfile) (string, error)

	// GetProfile retrieves the current user
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}
