package state

import "taskdeck/internal/domain/models"

// FilterTasks returns the tasks visible under f, in their original order.
// FilterAll (and any unknown filter) returns tasks itself.
func FilterTasks(tasks []models.Task, f Filter) []models.Task {
	var keepResolved bool
	switch f {
	case FilterRemained:
		keepResolved = false
	case FilterCompleted:
		keepResolved = true
	default:
		return tasks
	}

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Resolved == keepResolved {
			out = append(out, t)
		}
	}
	return out
}

// NeedsDeleteConfirmation reports whether deleting p would discard unresolved work
func NeedsDeleteConfirmation(p models.Project) bool {
	return p.UnresolvedCount() > 0
}
