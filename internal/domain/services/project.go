package services

import (
	"context"

	"taskdeck/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	UserID string   `json:"-"`
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
}

// UpdateProjectRequest replaces a project's name and, when Tags is non-nil, its tags
type UpdateProjectRequest struct {
	Name string    `json:"name"`
	Tags *[]string `json:"tags"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a new project and registers it with its owner
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	// GetProject retrieves a project with its tasks
	GetProject(ctx context.Context, id, userID string) (*models.Project, error)

	// ListProjects retrieves all of a user's projects with their tasks
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)

	// ListProjectsPage retrieves one page of projects with their tasks
	ListProjectsPage(ctx context.Context, userID string, page int) (*models.ProjectPage, error)

	// UpdateProject updates a project's name and tags
	UpdateProject(ctx context.Context, id, userID string, req *UpdateProjectRequest) (*models.Project, error)

	// DeleteProject removes a project, its tasks and the owner's reference atomically
	DeleteProject(ctx context.Context, id, userID string) error

	// ListTags returns the distinct tags across the user's projects
	ListTags(ctx context.Context, userID string) ([]string, error)

	// ListProjectsByTag retrieves the user's projects carrying tag, with their tasks
	ListProjectsByTag(ctx context.Context, userID, tag string) ([]models.Project, error)
}
