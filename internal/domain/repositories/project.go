package repositories

import (
	"context"

	"taskdeck/internal/domain/models"
)

// ProjectRepository defines data access operations for projects.
// All reads and writes are scoped to the owning user.
type ProjectRepository interface {
	// Create stores a new project and fills in its generated ID and timestamps
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project owned by userID
	GetByID(ctx context.Context, id, userID string) (*models.Project, error)

	// List retrieves all of a user's projects in creation order
	List(ctx context.Context, userID string) ([]models.Project, error)

	// ListPage retrieves up to limit projects after skipping offset, in creation order
	ListPage(ctx context.Context, userID string, offset, limit int) ([]models.Project, error)

	// Count returns the number of projects a user owns
	Count(ctx context.Context, userID string) (int, error)

	// ListByTag retrieves the user's projects carrying tag
	ListByTag(ctx context.Context, userID, tag string) ([]models.Project, error)

	// ListTags returns the distinct tags across the user's projects, sorted
	ListTags(ctx context.Context, userID string) ([]string, error)

	// ListByIDs retrieves the user's projects among ids, in creation order
	ListByIDs(ctx context.Context, userID string, ids []string) ([]models.Project, error)

	// SearchByNameOrTag returns projects whose name or any tag matches pattern
	// case-insensitively. pattern is a regular expression.
	SearchByNameOrTag(ctx context.Context, userID, pattern string) ([]models.Project, error)

	// Update replaces a project's name and tags and bumps updated_at
	Update(ctx context.Context, project *models.Project) error

	// Delete removes a project. Callers handle its tasks and owner back-reference.
	Delete(ctx context.Context, id, userID string) error

	// AttachTask appends taskID to the project's task list
	AttachTask(ctx context.Context, projectID, taskID string) error

	// DetachTasks removes taskIDs from the project's task list
	DetachTasks(ctx context.Context, projectID string, taskIDs []string) error
}
