package service

import (
	"log/slog"

	"taskdeck/internal/domain/repositories"
	"taskdeck/internal/domain/services"
	"taskdeck/internal/service/auth"
)

// Services bundles the application services
type Services struct {
	Projects services.ProjectService
	Tasks    services.TaskService
	Search   services.SearchService
	Users    services.UserService
}

// SetupServices wires every service over one set of repositories
func SetupServices(
	projectRepo repositories.ProjectRepository,
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *Services {
	authorizer := auth.NewOwnerBasedAuthorizer(projectRepo)

	return &Services{
		Projects: NewProjectService(projectRepo, taskRepo, userRepo, txManager, logger),
		Tasks:    NewTaskService(taskRepo, projectRepo, txManager, authorizer, logger),
		Search:   NewSearchService(projectRepo, taskRepo, logger),
		Users:    NewUserService(userRepo, logger),
	}
}
