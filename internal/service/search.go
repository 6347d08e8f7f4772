package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/repositories"
	"taskdeck/internal/domain/services"
)

// searchService implements the SearchService interface
type searchService struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	logger      *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	logger *slog.Logger,
) services.SearchService {
	return &searchService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

// Search matches query as a literal, case-insensitive substring against
// project names and tags, and independently against task content.
// Projects in both result lists only carry their matching tasks.
func (s *searchService) Search(ctx context.Context, userID, query string) (*models.SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: Query parameter is required", domain.ErrValidation)
	}
	if len([]rune(query)) > config.MaxSearchQueryLength {
		return nil, fmt.Errorf("%w: query exceeds %d characters", domain.ErrValidation, config.MaxSearchQueryLength)
	}

	pattern := regexp.QuoteMeta(query)

	byName, err := s.projectRepo.SearchByNameOrTag(ctx, userID, pattern)
	if err != nil {
		return nil, err
	}

	matchedTasks, err := s.taskRepo.SearchByContent(ctx, userID, pattern)
	if err != nil {
		return nil, err
	}
	tasksByProject := groupTasks(matchedTasks)

	// Keep the projects in the order their first matching task appeared
	ownerIDs := make([]string, 0, len(tasksByProject))
	seen := make(map[string]struct{}, len(tasksByProject))
	for _, t := range matchedTasks {
		if _, ok := seen[t.ProjectID]; !ok {
			seen[t.ProjectID] = struct{}{}
			ownerIDs = append(ownerIDs, t.ProjectID)
		}
	}

	byContent, err := s.projectRepo.ListByIDs(ctx, userID, ownerIDs)
	if err != nil {
		return nil, err
	}

	attachMatches(byName, tasksByProject)
	attachMatches(byContent, tasksByProject)

	s.logger.Debug("search",
		"user_id", userID,
		"by_project_name", len(byName),
		"by_task_content", len(byContent),
	)

	return &models.SearchResults{
		ByProjectName: byName,
		ByTaskContent: byContent,
	}, nil
}

// attachMatches sets each project's tasks to the matched tasks it owns
func attachMatches(projects []models.Project, tasksByProject map[string][]models.Task) {
	for i := range projects {
		matched := tasksByProject[projects[i].ID]
		if matched == nil {
			matched = []models.Task{}
		}
		projects[i].Tasks = matched
	}
}
