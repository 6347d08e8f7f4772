package models

// SearchResults groups projects matched by name or tag and projects owning matched tasks.
// In both lists each project's tasks are narrowed to the tasks whose content matched.
type SearchResults struct {
	ByProjectName []Project `json:"byProjectName"`
	ByTaskContent []Project `json:"byTaskContent"`
}
