package state

import "taskdeck/internal/domain/models"

// Action is a state transition. The set of actions is closed.
type Action interface {
	action()
}

// SetProjectsPaginated replaces the list with one server page and selects its first project
type SetProjectsPaginated struct {
	Page models.ProjectPage
}

// CreateProject appends a new project and selects it
type CreateProject struct {
	Project models.Project
}

// UpdateProject replaces the whole project list
type UpdateProject struct {
	Projects []models.Project
}

// SetProjects replaces the whole project list
type SetProjects struct {
	Projects []models.Project
}

// DeleteProject removes a project, moving the selection when it was current
type DeleteProject struct {
	ProjectID string
}

// SetCurrentProject changes the selection only
type SetCurrentProject struct {
	ProjectID string
}

// SetFilter changes the task filter only
type SetFilter struct {
	Filter Filter
}

// CreateTask appends a task to a project
type CreateTask struct {
	ProjectID string
	Task      models.Task
}

// The remaining task actions each carry a project's complete new task list.

type EditTask struct {
	ProjectID string
	Tasks     []models.Task
}

type DeleteTask struct {
	ProjectID string
	Tasks     []models.Task
}

type MarkTaskEditable struct {
	ProjectID string
	Tasks     []models.Task
}

type UnmarkTaskEditable struct {
	ProjectID string
	Tasks     []models.Task
}

type ToggleResolveTask struct {
	ProjectID string
	Tasks     []models.Task
}

type MarkAllTasksResolved struct {
	ProjectID string
	Tasks     []models.Task
}

type ClearCompletedTasks struct {
	ProjectID string
	Tasks     []models.Task
}

func (SetProjectsPaginated) action() {}
func (CreateProject) action()        {}
func (UpdateProject) action()        {}
func (SetProjects) action()          {}
func (DeleteProject) action()        {}
func (SetCurrentProject) action()    {}
func (SetFilter) action()            {}
func (CreateTask) action()           {}
func (EditTask) action()             {}
func (DeleteTask) action()           {}
func (MarkTaskEditable) action()     {}
func (UnmarkTaskEditable) action()   {}
func (ToggleResolveTask) action()    {}
func (MarkAllTasksResolved) action() {}
func (ClearCompletedTasks) action()  {}
