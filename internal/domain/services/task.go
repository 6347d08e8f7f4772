package services

import (
	"context"

	"taskdeck/internal/domain/models"
)

// CreateTaskRequest represents a request to add a task to a project
type CreateTaskRequest struct {
	UserID    string `json:"-"`
	ProjectID string `json:"projectId"`
	Content   string `json:"content"`
}

// UpdateTaskRequest changes a task's content and/or resolved flag.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Content  *string `json:"content"`
	Resolved *bool   `json:"resolved"`
}

// BulkUpdateRequest sets fields on every listed task
type BulkUpdateRequest struct {
	ProjectID string   `json:"projectId"`
	IDs       []string `json:"ids"`
	Update    struct {
		Resolved *bool `json:"resolved"`
	} `json:"update"`
}

// BulkDeleteRequest deletes every listed task
type BulkDeleteRequest struct {
	ProjectID string   `json:"projectId"`
	IDs       []string `json:"ids"`
}

// TaskService defines business logic operations for tasks
type TaskService interface {
	// CreateTask adds a task to a project the user owns
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*models.Task, error)

	// ListTasks retrieves a project's tasks
	ListTasks(ctx context.Context, projectID, userID string) ([]models.Task, error)

	// UpdateTask edits a task's content or resolved flag
	UpdateTask(ctx context.Context, id, userID string, req *UpdateTaskRequest) (*models.Task, error)

	// UpdateMany applies a bulk update to the listed tasks
	UpdateMany(ctx context.Context, userID string, req *BulkUpdateRequest) (*models.BulkResult, error)

	// DeleteMany deletes the listed tasks and detaches them from their projects
	DeleteMany(ctx context.Context, userID string, req *BulkDeleteRequest) (*models.BulkResult, error)

	// DeleteTask deletes one task and detaches it from its project
	DeleteTask(ctx context.Context, projectID, taskID, userID string) error
}
