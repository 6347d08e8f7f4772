package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	MaxProjectNameLength = 255

	// MaxTaskContentLength is the maximum length for a task's content.
	MaxTaskContentLength = 2000

	// MaxTagLength is the maximum length of a single normalized tag.
	MaxTagLength = 50

	// MaxTagsPerProject caps the tag set of one project.
	MaxTagsPerProject = 20

	// ProjectsPageSize is the fixed number of projects per page.
	ProjectsPageSize = 5

	// MaxBulkIDs caps the id list accepted by bulk task operations.
	MaxBulkIDs = 500

	// MaxSearchQueryLength bounds the free-text search input.
	MaxSearchQueryLength = 200
)
