// Package client keeps the terminal views in sync with the server: every
// user flow performs its REST call and then dispatches the state action
// built from the server's answer.
package client

import (
	"context"
	"fmt"
	"log/slog"

	"taskdeck/internal/client/state"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/services"
)

// API is the subset of the REST client the session uses
type API interface {
	ListProjectsPage(ctx context.Context, page int) (*models.ProjectPage, error)
	CreateProject(ctx context.Context, name string, tags []string) (*models.Project, error)
	UpdateProject(ctx context.Context, id, name string, tags *[]string) (*models.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListTags(ctx context.Context) ([]string, error)
	ListProjectsByTag(ctx context.Context, tag string) ([]models.Project, error)
	CreateTask(ctx context.Context, projectID, content string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, req services.UpdateTaskRequest) (*models.Task, error)
	SetResolvedMany(ctx context.Context, projectID string, ids []string, resolved bool) (*models.BulkResult, error)
	DeleteTasks(ctx context.Context, projectID string, ids []string) (*models.BulkResult, error)
	DeleteTask(ctx context.Context, projectID, taskID string) error
	Search(ctx context.Context, query string) (*models.SearchResults, error)
	Profile(ctx context.Context) (*models.User, error)
}

// Session runs user flows against the server and the local store
type Session struct {
	api    API
	store  *state.Store
	logger *slog.Logger
}

// NewSession creates a session over api and store
func NewSession(api API, store *state.Store, logger *slog.Logger) *Session {
	return &Session{
		api:    api,
		store:  store,
		logger: logger,
	}
}

// Store returns the session's store
func (s *Session) Store() *state.Store { return s.store }

// LoadPage fetches a page of projects and makes it the current list
func (s *Session) LoadPage(ctx context.Context, page int) error {
	result, err := s.api.ListProjectsPage(ctx, page)
	if err != nil {
		return s.fail("load page", err)
	}
	s.store.Dispatch(state.SetProjectsPaginated{Page: *result})
	return nil
}

// CreateProject creates a project and selects it
func (s *Session) CreateProject(ctx context.Context, name string, tags []string) (*models.Project, error) {
	project, err := s.api.CreateProject(ctx, name, tags)
	if err != nil {
		return nil, s.fail("create project", err)
	}
	s.store.Dispatch(state.CreateProject{Project: *project})
	return project, nil
}

// UpdateProject renames a project and, when tags is non-nil, replaces its tags
func (s *Session) UpdateProject(ctx context.Context, id, name string, tags *[]string) error {
	updated, err := s.api.UpdateProject(ctx, id, name, tags)
	if err != nil {
		return s.fail("update project", err)
	}

	projects := append([]models.Project(nil), s.store.State().Projects...)
	for i := range projects {
		if projects[i].ID == updated.ID {
			projects[i] = *updated
		}
	}
	s.store.Dispatch(state.UpdateProject{Projects: projects})
	return nil
}

// DeleteProject deletes a project. When that empties a later page the
// previous page is loaded.
func (s *Session) DeleteProject(ctx context.Context, id string) error {
	if err := s.api.DeleteProject(ctx, id); err != nil {
		return s.fail("delete project", err)
	}

	st := s.store.Dispatch(state.DeleteProject{ProjectID: id})
	if len(st.Projects) == 0 && st.CurrentPage > 1 {
		return s.LoadPage(ctx, st.CurrentPage-1)
	}
	return nil
}

// SelectProject changes the current project
func (s *Session) SelectProject(id string) {
	s.store.Dispatch(state.SetCurrentProject{ProjectID: id})
}

// SetFilter changes the task filter
func (s *Session) SetFilter(f state.Filter) {
	s.store.Dispatch(state.SetFilter{Filter: f})
}

// AddTask adds a task to a project
func (s *Session) AddTask(ctx context.Context, projectID, content string) (*models.Task, error) {
	task, err := s.api.CreateTask(ctx, projectID, content)
	if err != nil {
		return nil, s.fail("add task", err)
	}
	s.store.Dispatch(state.CreateTask{ProjectID: projectID, Task: *task})
	return task, nil
}

// BeginEdit marks a task as being edited
func (s *Session) BeginEdit(projectID, taskID string) {
	s.withTasks(projectID, func(tasks []models.Task) state.Action {
		return state.MarkTaskEditable{ProjectID: projectID, Tasks: state.WithEditing(tasks, taskID, true)}
	})
}

// CancelEdit leaves edit mode without saving
func (s *Session) CancelEdit(projectID, taskID string) {
	s.withTasks(projectID, func(tasks []models.Task) state.Action {
		return state.UnmarkTaskEditable{ProjectID: projectID, Tasks: state.WithEditing(tasks, taskID, false)}
	})
}

// EditTask saves new content and leaves edit mode
func (s *Session) EditTask(ctx context.Context, projectID, taskID, content string) error {
	task, err := s.api.UpdateTask(ctx, taskID, services.UpdateTaskRequest{Content: &content})
	if err != nil {
		return s.fail("edit task", err)
	}

	s.withTasks(projectID, func(tasks []models.Task) state.Action {
		tasks = state.WithContent(tasks, taskID, task.Content)
		return state.EditTask{ProjectID: projectID, Tasks: state.WithEditing(tasks, taskID, false)}
	})
	return nil
}

// ToggleTask flips a task's resolved flag
func (s *Session) ToggleTask(ctx context.Context, projectID, taskID string) error {
	project, ok := s.store.State().Project(projectID)
	if !ok {
		return nil
	}

	resolved := true
	for _, t := range project.Tasks {
		if t.ID == taskID {
			resolved = !t.Resolved
		}
	}

	task, err := s.api.UpdateTask(ctx, taskID, services.UpdateTaskRequest{Resolved: &resolved})
	if err != nil {
		return s.fail("toggle task", err)
	}

	s.withTasks(projectID, func(tasks []models.Task) state.Action {
		return state.ToggleResolveTask{ProjectID: projectID, Tasks: state.WithResolved(tasks, taskID, task.Resolved)}
	})
	return nil
}

// MarkAllResolved resolves every task of a project
func (s *Session) MarkAllResolved(ctx context.Context, projectID string) error {
	project, ok := s.store.State().Project(projectID)
	if !ok || len(project.Tasks) == 0 {
		return nil
	}

	if _, err := s.api.SetResolvedMany(ctx, projectID, state.TaskIDs(project.Tasks), true); err != nil {
		return s.fail("mark all resolved", err)
	}

	s.withTasks(projectID, func(tasks []models.Task) state.Action {
		return state.MarkAllTasksResolved{ProjectID: projectID, Tasks: state.AllResolved(tasks)}
	})
	return nil
}

// ClearCompleted deletes every resolved task of a project
func (s *Session) ClearCompleted(ctx context.Context, projectID string) error {
	project, ok := s.store.State().Project(projectID)
	if !ok {
		return nil
	}
	ids := state.ResolvedIDs(project.Tasks)
	if len(ids) == 0 {
		return nil
	}

	if _, err := s.api.DeleteTasks(ctx, projectID, ids); err != nil {
		return s.fail("clear completed", err)
	}

	s.withTasks(projectID, func(tasks []models.Task) state.Action {
		return state.ClearCompletedTasks{ProjectID: projectID, Tasks: state.WithoutCompleted(tasks)}
	})
	return nil
}

// DeleteTask deletes one task
func (s *Session) DeleteTask(ctx context.Context, projectID, taskID string) error {
	if err := s.api.DeleteTask(ctx, projectID, taskID); err != nil {
		return s.fail("delete task", err)
	}

	s.withTasks(projectID, func(tasks []models.Task) state.Action {
		return state.DeleteTask{ProjectID: projectID, Tasks: state.WithoutTask(tasks, taskID)}
	})
	return nil
}

// ProjectsByTag replaces the project list with the projects carrying tag
func (s *Session) ProjectsByTag(ctx context.Context, tag string) error {
	projects, err := s.api.ListProjectsByTag(ctx, tag)
	if err != nil {
		return s.fail("projects by tag", err)
	}
	s.store.Dispatch(state.SetProjects{Projects: projects})
	return nil
}

// Search runs a free-text search; results do not touch the store
func (s *Session) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	results, err := s.api.Search(ctx, query)
	if err != nil {
		return nil, s.fail("search", err)
	}
	return results, nil
}

// Tags lists the distinct tags of the user's projects
func (s *Session) Tags(ctx context.Context) ([]string, error) {
	tags, err := s.api.ListTags(ctx)
	if err != nil {
		return nil, s.fail("tags", err)
	}
	return tags, nil
}

// Profile fetches the current user
func (s *Session) Profile(ctx context.Context) (*models.User, error) {
	user, err := s.api.Profile(ctx)
	if err != nil {
		return nil, s.fail("profile", err)
	}
	return user, nil
}

// withTasks dispatches the action built from a loaded project's current tasks.
// The tasks are read and replaced under the store lock.
func (s *Session) withTasks(projectID string, build func([]models.Task) state.Action) {
	s.store.Update(func(st state.State) state.Action {
		project, ok := st.Project(projectID)
		if !ok {
			return nil
		}
		return build(project.Tasks)
	})
}

func (s *Session) fail(op string, err error) error {
	s.logger.Error("sync failed", "op", op, "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
