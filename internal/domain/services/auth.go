package services

import "context"

// ResourceAuthorizer checks if a user can access resources.
// Current implementation: ownership-based (user owns project).
//
// Services call the authorizer before operating on a resource reached by ID.
// A resource the user does not own is reported as not found.
type ResourceAuthorizer interface {
	// CanAccessProject checks if user can access a project
	CanAccessProject(ctx context.Context, userID, projectID string) error
}
