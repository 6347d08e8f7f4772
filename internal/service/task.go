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

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	msgTasksUpdated = "Tasks updated successfully"
	msgTasksDeleted = "Tasks deleted successfully"
)

// taskService implements the TaskService interface
type taskService struct {
	taskRepo    repositories.TaskRepository
	projectRepo repositories.ProjectRepository
	txManager   repositories.TransactionManager
	authorizer  services.ResourceAuthorizer
	logger      *slog.Logger
}

// NewTaskService creates a new task service
func NewTaskService(
	taskRepo repositories.TaskRepository,
	projectRepo repositories.ProjectRepository,
	txManager repositories.TransactionManager,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		txManager:   txManager,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// CreateTask adds an unresolved task to a project the user owns
func (s *taskService) CreateTask(ctx context.Context, req *services.CreateTaskRequest) (*models.Task, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ProjectID, validation.Required, is.UUID),
		validation.Field(&req.Content, contentRules()...),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessProject(ctx, req.UserID, req.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ProjectID: req.ProjectID,
		UserID:    req.UserID,
		Content:   strings.TrimSpace(req.Content),
		Resolved:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.taskRepo.Create(ctx, task); err != nil {
			return err
		}
		return s.projectRepo.AttachTask(ctx, task.ProjectID, task.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		"id", task.ID,
		"project_id", task.ProjectID,
		"user_id", req.UserID,
	)

	return task, nil
}

// ListTasks retrieves a project's tasks
func (s *taskService) ListTasks(ctx context.Context, projectID, userID string) ([]models.Task, error) {
	if err := s.authorizer.CanAccessProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByProject(ctx, projectID, userID)
}

// UpdateTask edits content and/or the resolved flag
func (s *taskService) UpdateTask(ctx context.Context, id, userID string, req *services.UpdateTaskRequest) (*models.Task, error) {
	if req.Content == nil && req.Resolved == nil {
		return nil, fmt.Errorf("%w: content or resolved is required", domain.ErrValidation)
	}
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Content,
			validation.NilOrNotEmpty.Error("content cannot be empty"),
			validation.By(notBlank("content")),
			validation.RuneLength(1, config.MaxTaskContentLength),
		),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	task, err := s.taskRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		task.Content = strings.TrimSpace(*req.Content)
	}
	if req.Resolved != nil {
		task.Resolved = *req.Resolved
	}
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Debug("task updated",
		"id", task.ID,
		"resolved", task.Resolved,
		"user_id", userID,
	)

	return task, nil
}

// UpdateMany sets resolved on the listed tasks. Nothing matched is a not-found error.
func (s *taskService) UpdateMany(ctx context.Context, userID string, req *services.BulkUpdateRequest) (*models.BulkResult, error) {
	if err := validateBulk(&req.ProjectID, &req.IDs); err != nil {
		return nil, err
	}
	if req.Update.Resolved == nil {
		return nil, fmt.Errorf("%w: update.resolved is required", domain.ErrValidation)
	}

	filter := repositories.TaskFilter{UserID: userID, ProjectID: req.ProjectID, IDs: req.IDs}
	matched, modified, err := s.taskRepo.SetResolved(ctx, filter, *req.Update.Resolved)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, &domain.BulkMissError{Message: "No tasks found to update"}
	}

	s.logger.Info("tasks bulk updated",
		"matched", matched,
		"modified", modified,
		"resolved", *req.Update.Resolved,
		"user_id", userID,
	)

	return &models.BulkResult{
		Message: msgTasksUpdated,
		Result:  models.BulkCounts{Matched: matched, Modified: modified},
	}, nil
}

// DeleteMany deletes the listed tasks and detaches them from their projects in one transaction
func (s *taskService) DeleteMany(ctx context.Context, userID string, req *services.BulkDeleteRequest) (*models.BulkResult, error) {
	if err := validateBulk(&req.ProjectID, &req.IDs); err != nil {
		return nil, err
	}

	filter := repositories.TaskFilter{UserID: userID, ProjectID: req.ProjectID, IDs: req.IDs}
	var deleted int64

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		found, err := s.taskRepo.Find(ctx, filter)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return &domain.BulkMissError{Message: "No tasks found to delete"}
		}

		deleted, err = s.taskRepo.DeleteMany(ctx, filter)
		if err != nil {
			return err
		}

		for projectID, tasks := range groupTasks(found) {
			ids := make([]string, len(tasks))
			for i, t := range tasks {
				ids[i] = t.ID
			}
			if err := s.projectRepo.DetachTasks(ctx, projectID, ids); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tasks bulk deleted",
		"deleted", deleted,
		"user_id", userID,
	)

	return &models.BulkResult{
		Message: msgTasksDeleted,
		Result:  models.BulkCounts{Deleted: deleted},
	}, nil
}

// DeleteTask deletes one task of a project and detaches it in one transaction
func (s *taskService) DeleteTask(ctx context.Context, projectID, taskID, userID string) error {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		task, err := s.taskRepo.GetByID(ctx, taskID, userID)
		if err != nil {
			return err
		}
		if task.ProjectID != projectID {
			return fmt.Errorf("task %s in project %s: %w", taskID, projectID, domain.ErrNotFound)
		}

		if err := s.taskRepo.Delete(ctx, taskID, userID); err != nil {
			return err
		}
		return s.projectRepo.DetachTasks(ctx, projectID, []string{taskID})
	})
	if err != nil {
		return err
	}

	s.logger.Info("task deleted",
		"id", taskID,
		"project_id", projectID,
		"user_id", userID,
	)

	return nil
}

func contentRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("content is required"),
		validation.By(notBlank("content")),
		validation.RuneLength(1, config.MaxTaskContentLength),
	}
}

// validateBulk checks the id list and optional project scope of a bulk request
func validateBulk(projectID *string, ids *[]string) error {
	errs := validation.Errors{
		"ids": validation.Validate(*ids,
			validation.Required.Error("Invalid IDs array"),
			validation.Length(1, config.MaxBulkIDs),
			validation.Each(is.UUID),
		),
		"projectId": validation.Validate(*projectID, is.UUID),
	}
	if err := errs.Filter(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
