package auth

import (
	"context"
	"errors"
	"fmt"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/repositories"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// A user can access a project they own. Projects owned by someone else are
// reported as not found so their existence is not revealed.
type OwnerBasedAuthorizer struct {
	projectRepo repositories.ProjectRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(projectRepo repositories.ProjectRepository) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{projectRepo: projectRepo}
}

// CanAccessProject checks if user owns the project
func (a *OwnerBasedAuthorizer) CanAccessProject(ctx context.Context, userID, projectID string) error {
	// GetByID already filters by userID
	_, err := a.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
		}
		return fmt.Errorf("check project access: %w", err)
	}
	return nil
}
