package state

import (
	"fmt"
	"slices"

	"taskdeck/internal/domain/models"
)

// Reduce returns the state that follows s after a. It never modifies s.
// Task actions naming a project that is not loaded leave the state unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetProjectsPaginated:
		s.Projects = cloneProjects(a.Page.Projects)
		s.CurrentPage = a.Page.CurrentPage
		s.TotalPages = a.Page.TotalPages
		s.CurrentProjectID = firstID(s.Projects)
		return s

	case CreateProject:
		s.Projects = append(slices.Clone(s.Projects), cloneProject(a.Project))
		s.CurrentProjectID = a.Project.ID
		return s

	case UpdateProject:
		s.Projects = cloneProjects(a.Projects)
		return s

	case SetProjects:
		s.Projects = cloneProjects(a.Projects)
		return s

	case DeleteProject:
		i := indexOf(s.Projects, a.ProjectID)
		if i < 0 {
			return s
		}
		s.Projects = slices.Delete(slices.Clone(s.Projects), i, i+1)
		if s.CurrentProjectID == a.ProjectID {
			s.CurrentProjectID = firstID(s.Projects)
		}
		return s

	case SetCurrentProject:
		s.CurrentProjectID = a.ProjectID
		return s

	case SetFilter:
		s.TasksFilter = a.Filter
		return s

	case CreateTask:
		return withProjectTasks(s, a.ProjectID, func(tasks []models.Task) []models.Task {
			return append(slices.Clone(tasks), a.Task)
		})

	case EditTask:
		return replaceTasks(s, a.ProjectID, a.Tasks)
	case DeleteTask:
		return replaceTasks(s, a.ProjectID, a.Tasks)
	case MarkTaskEditable:
		return replaceTasks(s, a.ProjectID, a.Tasks)
	case UnmarkTaskEditable:
		return replaceTasks(s, a.ProjectID, a.Tasks)
	case ToggleResolveTask:
		return replaceTasks(s, a.ProjectID, a.Tasks)
	case MarkAllTasksResolved:
		return replaceTasks(s, a.ProjectID, a.Tasks)
	case ClearCompletedTasks:
		return replaceTasks(s, a.ProjectID, a.Tasks)

	default:
		panic(fmt.Sprintf("state: unhandled action %T", a))
	}
}

func replaceTasks(s State, projectID string, tasks []models.Task) State {
	return withProjectTasks(s, projectID, func([]models.Task) []models.Task {
		return nonNil(slices.Clone(tasks))
	})
}

// withProjectTasks copies the project list and the touched project, then
// swaps in the tasks computed by update
func withProjectTasks(s State, projectID string, update func([]models.Task) []models.Task) State {
	i := indexOf(s.Projects, projectID)
	if i < 0 {
		return s
	}

	projects := slices.Clone(s.Projects)
	p := projects[i]
	p.Tasks = update(p.Tasks)
	projects[i] = p

	s.Projects = projects
	return s
}

func indexOf(projects []models.Project, id string) int {
	return slices.IndexFunc(projects, func(p models.Project) bool { return p.ID == id })
}

func firstID(projects []models.Project) string {
	if len(projects) == 0 {
		return ""
	}
	return projects[0].ID
}

func cloneProject(p models.Project) models.Project {
	p.Tasks = nonNil(slices.Clone(p.Tasks))
	p.Tags = slices.Clone(p.Tags)
	return p
}

func cloneProjects(projects []models.Project) []models.Project {
	out := make([]models.Project, len(projects))
	for i, p := range projects {
		out[i] = cloneProject(p)
	}
	return out
}

func nonNil(tasks []models.Task) []models.Task {
	if tasks == nil {
		return []models.Task{}
	}
	return tasks
}
