package repositories

import (
	"context"

	"taskdeck/internal/domain/models"
)

// TaskFilter scopes bulk task operations.
type TaskFilter struct {
	UserID    string
	ProjectID string // optional
	IDs       []string
}

// TaskRepository defines data access operations for tasks
type TaskRepository interface {
	// Create stores a new task and fills in its generated ID and timestamps
	Create(ctx context.Context, task *models.Task) error

	// GetByID retrieves a task owned by userID
	GetByID(ctx context.Context, id, userID string) (*models.Task, error)

	// ListByProject retrieves a project's tasks in creation order
	ListByProject(ctx context.Context, projectID, userID string) ([]models.Task, error)

	// ListByProjects retrieves the tasks of several projects in creation order
	ListByProjects(ctx context.Context, userID string, projectIDs []string) ([]models.Task, error)

	// SearchByContent returns the user's tasks whose content matches pattern case-insensitively
	SearchByContent(ctx context.Context, userID, pattern string) ([]models.Task, error)

	// Update persists content and resolved and bumps updated_at
	Update(ctx context.Context, task *models.Task) error

	// SetResolved sets resolved on every task matching filter.
	// Returns matched and modified counts.
	SetResolved(ctx context.Context, filter TaskFilter, resolved bool) (matched, modified int64, err error)

	// Find returns the tasks matching filter
	Find(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// DeleteMany deletes every task matching filter and returns the deleted count
	DeleteMany(ctx context.Context, filter TaskFilter) (int64, error)

	// Delete removes one task
	Delete(ctx context.Context, id, userID string) error

	// DeleteByProject removes all tasks of a project
	DeleteByProject(ctx context.Context, projectID, userID string) (int64, error)
}
