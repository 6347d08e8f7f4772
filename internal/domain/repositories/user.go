package repositories

import (
	"context"

	"taskdeck/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Upsert creates the user keyed by ExternalID, or refreshes the profile
	// fields of the existing one. The stored user is written back into user.
	Upsert(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by internal ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByExternalID retrieves a user by provider-qualified identity
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)

	// AttachProject adds projectID to the user's project set
	AttachProject(ctx context.Context, userID, projectID string) error

	// DetachProject removes projectID from the user's project set
	DetachProject(ctx context.Context, userID, projectID string) error
}
