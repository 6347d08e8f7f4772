package handler

import (
	"net/http"
	"time"

	"taskdeck/internal/httputil"
)

// Handlers groups every HTTP handler the server mounts
type Handlers struct {
	Projects *ProjectHandler
	Tasks    *TaskHandler
	Search   *SearchHandler
	Users    *UserHandler
}

// Register mounts all routes on mux under prefix (e.g. "/api/v1")
func (h *Handlers) Register(mux *http.ServeMux, prefix string) {
	// Health check
	mux.HandleFunc("GET /health", HealthCheck)

	// Project routes
	mux.HandleFunc("GET "+prefix+"/projects", h.Projects.ListProjects)
	mux.HandleFunc("POST "+prefix+"/projects", h.Projects.CreateProject)
	mux.HandleFunc("GET "+prefix+"/projects/page/{page}", h.Projects.ListProjectsPage)
	mux.HandleFunc("GET "+prefix+"/projects/tags", h.Projects.ListTags) // Must come before {id} route
	mux.HandleFunc("GET "+prefix+"/projects/tags/{tag}", h.Projects.ListProjectsByTag)
	mux.HandleFunc("GET "+prefix+"/projects/{id}", h.Projects.GetProject)
	mux.HandleFunc("PUT "+prefix+"/projects/{id}", h.Projects.UpdateProject)
	mux.HandleFunc("DELETE "+prefix+"/projects/{id}", h.Projects.DeleteProject)

	// Task routes
	mux.HandleFunc("POST "+prefix+"/tasks", h.Tasks.CreateTask)
	mux.HandleFunc("PUT "+prefix+"/tasks/update-all", h.Tasks.UpdateMany)
	mux.HandleFunc("PUT "+prefix+"/tasks/delete-all", h.Tasks.DeleteMany)
	mux.HandleFunc("DELETE "+prefix+"/tasks/delete-all", h.Tasks.DeleteMany)
	mux.HandleFunc("GET "+prefix+"/tasks/{projectId}", h.Tasks.ListTasks)
	mux.HandleFunc("PUT "+prefix+"/tasks/{id}", h.Tasks.UpdateTask)
	mux.HandleFunc("DELETE "+prefix+"/tasks/{projectId}/{taskId}", h.Tasks.DeleteTask)

	// Search
	mux.HandleFunc("GET "+prefix+"/search", h.Search.Search)

	// User routes
	mux.HandleFunc("GET "+prefix+"/user/profile", h.Users.Profile)
	mux.HandleFunc("GET "+prefix+"/user/login", h.Users.Login)
	mux.HandleFunc("GET "+prefix+"/user/auth/{provider}/callback", h.Users.Callback)
	mux.HandleFunc("GET "+prefix+"/user/logout", h.Users.Logout)
}

// PublicPaths lists the routes served without authentication.
// Entries ending in "/" match as prefixes.
func PublicPaths(prefix string) []string {
	return []string{
		"/health",
		prefix + "/user/login",
		prefix + "/user/logout",
		prefix + "/user/auth/",
	}
}

// HealthCheck is a simple health check endpoint
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
