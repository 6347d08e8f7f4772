package handler

import (
	"log/slog"
	"net/http"

	"taskdeck/internal/domain/services"
	"taskdeck/internal/httputil"
)

// TaskHandler handles task HTTP requests
type TaskHandler struct {
	taskService services.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService services.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask adds a task to a project
// POST /tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req services.CreateTaskRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = httputil.GetUserID(r)

	task, err := h.taskService.CreateTask(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, task)
}

// ListTasks retrieves a project's tasks
// GET /tasks/{projectId}
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, ok := requirePathValue(w, r, "projectId", "Project ID")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), projectID, httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tasks)
}

// UpdateTask edits a task's content or resolved flag
// PUT /tasks/{id}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := requirePathValue(w, r, "id", "Task ID")
	if !ok {
		return
	}

	var req services.UpdateTaskRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), id, httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, task)
}

// UpdateMany applies a bulk update to the listed tasks
// PUT /tasks/update-all
func (h *TaskHandler) UpdateMany(w http.ResponseWriter, r *http.Request) {
	var req services.BulkUpdateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.taskService.UpdateMany(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// DeleteMany deletes the listed tasks
// PUT /tasks/delete-all, DELETE /tasks/delete-all
func (h *TaskHandler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var req services.BulkDeleteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.taskService.DeleteMany(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// DeleteTask deletes one task of a project
// DELETE /tasks/{projectId}/{taskId}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	projectID, ok := requirePathValue(w, r, "projectId", "Project ID")
	if !ok {
		return
	}
	taskID, ok := requirePathValue(w, r, "taskId", "Task ID")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), projectID, taskID, httputil.GetUserID(r)); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
