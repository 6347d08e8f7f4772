package models

import "time"

// Project groups a user's tasks under a name and a set of tags.
type Project struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user" bson:"user"`
	Name      string    `json:"name" bson:"name"`
	Tags      []string  `json:"tags" bson:"tags"`
	Tasks     []Task    `json:"tasks" bson:"-"`
	TaskIDs   []string  `json:"-" bson:"tasks"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UnresolvedCount returns how many of the project's tasks are still open.
func (p *Project) UnresolvedCount() int {
	n := 0
	for _, t := range p.Tasks {
		if !t.Resolved {
			n++
		}
	}
	return n
}

// ProjectPage is one fixed-size page of a user's projects.
type ProjectPage struct {
	Projects    []Project `json:"projects"`
	CurrentPage int       `json:"currentPage"`
	TotalPages  int       `json:"totalPages"`
}
