// Package state holds the client-side view of a user's projects and the
// reducer that derives each new state from a server response.
package state

import "taskdeck/internal/domain/models"

// Filter selects which tasks of the current project are shown
type Filter string

const (
	FilterAll       Filter = "all"
	FilterRemained  Filter = "remained"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps user input to a Filter; anything unrecognized is FilterAll
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterRemained, FilterCompleted:
		return Filter(s)
	default:
		return FilterAll
	}
}

// Next cycles all → remained → completed → all
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterRemained
	case FilterRemained:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// State is the client's state tree. Values are treated as immutable.
type State struct {
	Projects         []models.Project
	CurrentProjectID string
	CurrentPage      int
	TotalPages       int
	TasksFilter      Filter
}

// Initial returns the state before anything is loaded
func Initial() State {
	return State{
		Projects:    []models.Project{},
		CurrentPage: 1,
		TotalPages:  1,
		TasksFilter: FilterAll,
	}
}

// CurrentProject returns the selected project, if it is loaded
func (s State) CurrentProject() (models.Project, bool) {
	return s.Project(s.CurrentProjectID)
}

// Project looks a loaded project up by id
func (s State) Project(id string) (models.Project, bool) {
	if id == "" {
		return models.Project{}, false
	}
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}
