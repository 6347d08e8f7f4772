package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"taskdeck/internal/config"
	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/repositories"
	"taskdeck/internal/domain/services"
	"taskdeck/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	userRepo    repositories.UserRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateProject creates a new project and adds it to the owner's project set
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	tags := utils.NormalizeTags(req.Tags)

	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Name, nameRules()...),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := validateTags(tags); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	project := &models.Project{
		UserID:    req.UserID,
		Name:      strings.TrimSpace(req.Name),
		Tags:      tags,
		Tasks:     []models.Task{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Create(ctx, project); err != nil {
			return err
		}
		return s.userRepo.AttachProject(ctx, req.UserID, project.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
		"tags", len(project.Tags),
		"user_id", req.UserID,
	)

	return project, nil
}

// GetProject retrieves a project with its tasks
func (s *projectService) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	projects := []models.Project{*project}
	if err := s.embedTasks(ctx, userID, projects); err != nil {
		return nil, err
	}

	return &projects[0], nil
}

// ListProjects retrieves all projects for a user
func (s *projectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.embedTasks(ctx, userID, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListProjectsPage retrieves one fixed-size page. Pages below 1 are read as 1;
// a page past the end is empty and still reports the requested page number.
func (s *projectService) ListProjectsPage(ctx context.Context, userID string, page int) (*models.ProjectPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.projectRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &models.ProjectPage{
		Projects:    []models.Project{},
		CurrentPage: page,
		TotalPages:  TotalPages(total, config.ProjectsPageSize),
	}

	if page > result.TotalPages {
		return result, nil
	}
	offset := (page - 1) * config.ProjectsPageSize

	projects, err := s.projectRepo.ListPage(ctx, userID, offset, config.ProjectsPageSize)
	if err != nil {
		return nil, err
	}
	if err := s.embedTasks(ctx, userID, projects); err != nil {
		return nil, err
	}

	result.Projects = projects
	return result, nil
}

// UpdateProject updates a project's name and, when given, its tags
func (s *projectService) UpdateProject(ctx context.Context, id, userID string, req *services.UpdateProjectRequest) (*models.Project, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules()...),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var tags []string
	if req.Tags != nil {
		tags = utils.NormalizeTags(*req.Tags)
		if err := validateTags(tags); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	project, err := s.projectRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	project.Name = strings.TrimSpace(req.Name)
	if req.Tags != nil {
		project.Tags = tags
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"name", project.Name,
		"user_id", userID,
	)

	projects := []models.Project{*project}
	if err := s.embedTasks(ctx, userID, projects); err != nil {
		return nil, err
	}
	return &projects[0], nil
}

// DeleteProject removes the project, its tasks and the owner's reference in one transaction
func (s *projectService) DeleteProject(ctx context.Context, id, userID string) error {
	var removedTasks int64

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		// Verify project exists first (provides better error message)
		if _, err := s.projectRepo.GetByID(ctx, id, userID); err != nil {
			return err
		}

		n, err := s.taskRepo.DeleteByProject(ctx, id, userID)
		if err != nil {
			return err
		}
		removedTasks = n

		if err := s.projectRepo.Delete(ctx, id, userID); err != nil {
			return err
		}
		return s.userRepo.DetachProject(ctx, userID, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"tasks_removed", removedTasks,
		"user_id", userID,
	)

	return nil
}

// ListTags returns the distinct tags across the user's projects
func (s *projectService) ListTags(ctx context.Context, userID string) ([]string, error) {
	return s.projectRepo.ListTags(ctx, userID)
}

// ListProjectsByTag retrieves the user's projects carrying tag
func (s *projectService) ListProjectsByTag(ctx context.Context, userID, tag string) ([]models.Project, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, fmt.Errorf("%w: tag is required", domain.ErrValidation)
	}

	projects, err := s.projectRepo.ListByTag(ctx, userID, tag)
	if err != nil {
		return nil, err
	}
	if err := s.embedTasks(ctx, userID, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// embedTasks loads the tasks of projects with one query and attaches them in place
func (s *projectService) embedTasks(ctx context.Context, userID string, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]string, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
	}

	tasks, err := s.taskRepo.ListByProjects(ctx, userID, ids)
	if err != nil {
		return err
	}

	byProject := groupTasks(tasks)
	for i := range projects {
		projects[i].Tasks = byProject[projects[i].ID]
		if projects[i].Tasks == nil {
			projects[i].Tasks = []models.Task{}
		}
	}
	return nil
}

// TotalPages returns how many pages of size pageSize hold total items.
func TotalPages(total, pageSize int) int {
	if total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func groupTasks(tasks []models.Task) map[string][]models.Task {
	byProject := make(map[string][]models.Task)
	for _, task := range tasks {
		byProject[task.ProjectID] = append(byProject[task.ProjectID], task)
	}
	return byProject
}

func nameRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("name is required"),
		validation.By(notBlank("name")),
		validation.RuneLength(1, config.MaxProjectNameLength),
	}
}

func validateTags(tags []string) error {
	return validation.Validate(tags,
		validation.Length(0, config.MaxTagsPerProject),
		validation.Each(validation.RuneLength(1, config.MaxTagLength)),
	)
}

// notBlank rejects strings that are empty after trimming
func notBlank(field string) validation.RuleFunc {
	return func(value interface{}) error {
		var s string
		switch v := value.(type) {
		case string:
			s = v
		case *string:
			if v == nil {
				return nil
			}
			s = *v
		default:
			return fmt.Errorf("%s must be a string", field)
		}
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}
