package state

import (
	"slices"

	"taskdeck/internal/domain/models"
)

// Helpers computing a project's next task list. Inputs are never modified.

// WithContent replaces the content of task id
func WithContent(tasks []models.Task, id, content string) []models.Task {
	return mapTask(tasks, id, func(t *models.Task) { t.Content = content })
}

// WithResolved sets the resolved flag of task id
func WithResolved(tasks []models.Task, id string, resolved bool) []models.Task {
	return mapTask(tasks, id, func(t *models.Task) { t.Resolved = resolved })
}

// WithEditing sets the client-only editing flag of task id
func WithEditing(tasks []models.Task, id string, editing bool) []models.Task {
	return mapTask(tasks, id, func(t *models.Task) { t.Editing = editing })
}

// WithoutTask drops task id
func WithoutTask(tasks []models.Task, id string) []models.Task {
	return slices.DeleteFunc(slices.Clone(tasks), func(t models.Task) bool { return t.ID == id })
}

// AllResolved marks every task resolved
func AllResolved(tasks []models.Task) []models.Task {
	out := slices.Clone(tasks)
	for i := range out {
		out[i].Resolved = true
	}
	return out
}

// WithoutCompleted drops every resolved task
func WithoutCompleted(tasks []models.Task) []models.Task {
	return slices.DeleteFunc(slices.Clone(tasks), func(t models.Task) bool { return t.Resolved })
}

// ResolvedIDs returns the ids of resolved tasks
func ResolvedIDs(tasks []models.Task) []string {
	var ids []string
	for _, t := range tasks {
		if t.Resolved {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// TaskIDs returns the ids of tasks
func TaskIDs(tasks []models.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func mapTask(tasks []models.Task, id string, fn func(*models.Task)) []models.Task {
	out := slices.Clone(tasks)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
		}
	}
	return out
}
