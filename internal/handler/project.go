package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"taskdeck/internal/domain/services"
	"taskdeck/internal/httputil"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService services.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects retrieves all projects for the user
// GET /projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	projects, err := h.projectService.ListProjects(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// ListProjectsPage retrieves one page of projects. An unparsable page reads as 1.
// GET /projects/page/{page}
func (h *ProjectHandler) ListProjectsPage(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	page, err := strconv.Atoi(r.PathValue("page"))
	if err != nil {
		page = 1
	}

	result, err := h.projectService.ListProjectsPage(r.Context(), userID, page)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// CreateProject creates a new project
// POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	var req services.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = userID

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// GetProject retrieves a project by ID
// GET /projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id, ok := requirePathValue(w, r, "id", "Project ID")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// UpdateProject updates a project's name and tags
// PUT /projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id, ok := requirePathValue(w, r, "id", "Project ID")
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), id, userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject deletes a project with its tasks
// DELETE /projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	id, ok := requirePathValue(w, r, "id", "Project ID")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "Project deleted successfully")
}

// ListTags returns the distinct tags of the user's projects
// GET /projects/tags
func (h *ProjectHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.projectService.ListTags(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tags)
}

// ListProjectsByTag retrieves the user's projects carrying a tag
// GET /projects/tags/{tag}
func (h *ProjectHandler) ListProjectsByTag(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListProjectsByTag(r.Context(), httputil.GetUserID(r), r.PathValue("tag"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}
