package services

import (
	"context"

	"taskdeck/internal/domain/models"
)

// SearchService runs free-text search over a user's projects and tasks
type SearchService interface {
	Search(ctx context.Context, userID, query string) (*models.SearchResults, error)
}
