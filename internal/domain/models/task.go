package models

import "time"

type Task struct {
	ID        string    `json:"id" bson:"_id"`
	ProjectID string    `json:"projectId" bson:"projectId"`
	UserID    string    `json:"userId" bson:"userId"`
	Content   string    `json:"content" bson:"content"`
	Resolved  bool      `json:"resolved" bson:"resolved"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`

	// Editing is client-only UI state and is never persisted or sent.
	Editing bool `json:"-" bson:"-"`
}

// BulkResult reports the outcome of a bulk task operation.
type BulkResult struct {
	Message string     `json:"message"`
	Result  BulkCounts `json:"result"`
}

type BulkCounts struct {
	Matched  int64 `json:"matched,omitempty"`
	Modified int64 `json:"modified,omitempty"`
	Deleted  int64 `json:"deleted,omitempty"`
}
