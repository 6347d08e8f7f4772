package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/services"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"validation", fmt.Errorf("%w: Query parameter is required", domain.ErrValidation), http.StatusBadRequest, "Query parameter is required"},
		{"not found", fmt.Errorf("project x: %w", domain.ErrNotFound), http.StatusNotFound, "Resource not found"},
		{"bulk miss", &domain.BulkMissError{Message: "No tasks found to update"}, http.StatusNotFound, "No tasks found to update"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := decodeMessage(t, rec); got != tt.wantMessage {
				t.Errorf("message = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestProjectRoutes(t *testing.T) {
	var gotPage int
	var created *services.CreateProjectRequest
	var deletedID string

	ps := &mockProjectService{
		ListProjectsPageFunc: func(_ context.Context, userID string, page int) (*models.ProjectPage, error) {
			gotPage = page
			return &models.ProjectPage{Projects: []models.Project{}, CurrentPage: page, TotalPages: 2}, nil
		},
		CreateProjectFunc: func(_ context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
			created = req
			return &models.Project{ID: "p1", UserID: req.UserID, Name: req.Name, Tags: req.Tags, Tasks: []models.Task{}}, nil
		},
		DeleteProjectFunc: func(_ context.Context, id, userID string) error {
			deletedID = id
			return nil
		},
		GetProjectFunc: func(_ context.Context, id, userID string) (*models.Project, error) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		},
		ListTagsFunc: func(_ context.Context, userID string) ([]string, error) {
			return []string{"home", "work"}, nil
		},
	}
	h := newTestServer(ps, &mockTaskService{}, &mockSearchService{}, &mockUserService{})

	t.Run("page", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/projects/page/3", "")
		if rec.Code != http.StatusOK || gotPage != 3 {
			t.Fatalf("status = %d, page = %d", rec.Code, gotPage)
		}
		var page models.ProjectPage
		if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if page.CurrentPage != 3 || page.TotalPages != 2 {
			t.Errorf("unexpected page: %+v", page)
		}
	})

	t.Run("unparsable page reads as first", func(t *testing.T) {
		do(t, h, http.MethodGet, "/api/v1/projects/page/abc", "")
		if gotPage != 1 {
			t.Errorf("page = %d, want 1", gotPage)
		}
	})

	t.Run("create", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/projects", `{"name":"Launch","tags":["go"]}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
		if created.UserID != "user-1" || created.Name != "Launch" {
			t.Errorf("unexpected request: %+v", created)
		}
		if !strings.Contains(rec.Body.String(), `"id":"p1"`) || !strings.Contains(rec.Body.String(), `"tasks":[]`) {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("create with bad json", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/projects", `{"name":`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := do(t, h, http.MethodDelete, "/api/v1/projects/p9", "")
		if rec.Code != http.StatusOK || deletedID != "p9" {
			t.Fatalf("status = %d, deleted = %q", rec.Code, deletedID)
		}
		if decodeMessage(t, rec) == "" {
			t.Error("expected a message")
		}
	})

	t.Run("get missing", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/projects/nope", "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("tags route wins over id route", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/projects/tags", "")
		if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `["home","work"]` {
			t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})
}

func TestTaskRoutes(t *testing.T) {
	var bulk *services.BulkUpdateRequest
	var deleted [2]string

	ts := &mockTaskService{
		CreateTaskFunc: func(_ context.Context, req *services.CreateTaskRequest) (*models.Task, error) {
			return &models.Task{ID: "t1", ProjectID: req.ProjectID, UserID: req.UserID, Content: req.Content}, nil
		},
		UpdateManyFunc: func(_ context.Context, userID string, req *services.BulkUpdateRequest) (*models.BulkResult, error) {
			bulk = req
			if len(req.IDs) == 0 {
				return nil, fmt.Errorf("%w: ids: Invalid IDs array.", domain.ErrValidation)
			}
			return &models.BulkResult{Message: "Tasks updated successfully", Result: models.BulkCounts{Matched: 2, Modified: 2}}, nil
		},
		DeleteManyFunc: func(_ context.Context, userID string, req *services.BulkDeleteRequest) (*models.BulkResult, error) {
			return nil, &domain.BulkMissError{Message: "No tasks found to delete"}
		},
		DeleteTaskFunc: func(_ context.Context, projectID, taskID, userID string) error {
			deleted = [2]string{projectID, taskID}
			return nil
		},
		UpdateTaskFunc: func(_ context.Context, id, userID string, req *services.UpdateTaskRequest) (*models.Task, error) {
			return &models.Task{ID: id, Resolved: *req.Resolved}, nil
		},
	}
	h := newTestServer(&mockProjectService{}, ts, &mockSearchService{}, &mockUserService{})

	t.Run("create", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/v1/tasks", `{"projectId":"p1","content":"Write"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"resolved":false`) {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("update-all is not a task id", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, "/api/v1/tasks/update-all", `{"ids":["a","b"],"update":{"resolved":true}}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if len(bulk.IDs) != 2 || bulk.Update.Resolved == nil || !*bulk.Update.Resolved {
			t.Errorf("unexpected request: %+v", bulk)
		}
		if !strings.Contains(rec.Body.String(), `"matched":2`) {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("update-all without ids", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, "/api/v1/tasks/update-all", `{"update":{"resolved":true}}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("delete-all miss", func(t *testing.T) {
		for _, method := range []string{http.MethodPut, http.MethodDelete} {
			rec := do(t, h, method, "/api/v1/tasks/delete-all", `{"ids":["x"]}`)
			if rec.Code != http.StatusNotFound || decodeMessage(t, rec) != "No tasks found to delete" {
				t.Errorf("%s: status = %d, body = %s", method, rec.Code, rec.Body.String())
			}
		}
	})

	t.Run("delete one", func(t *testing.T) {
		rec := do(t, h, http.MethodDelete, "/api/v1/tasks/p1/t1", "")
		if rec.Code != http.StatusNoContent || deleted != [2]string{"p1", "t1"} {
			t.Errorf("status = %d, deleted = %v", rec.Code, deleted)
		}
	})

	t.Run("toggle", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, "/api/v1/tasks/t1", `{"resolved":true}`)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"resolved":true`) {
			t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
	})
}

func TestSearchRoute(t *testing.T) {
	var gotQuery string
	ss := &mockSearchService{SearchFunc: func(_ context.Context, userID, query string) (*models.SearchResults, error) {
		gotQuery = query
		if strings.TrimSpace(query) == "" {
			return nil, fmt.Errorf("%w: Query parameter is required", domain.ErrValidation)
		}
		return &models.SearchResults{ByProjectName: []models.Project{}, ByTaskContent: []models.Project{}}, nil
	}}
	h := newTestServer(&mockProjectService{}, &mockTaskService{}, ss, &mockUserService{})

	rec := do(t, h, http.MethodGet, "/api/v1/search?query=a%2Bb", "")
	if rec.Code != http.StatusOK || gotQuery != "a+b" {
		t.Fatalf("status = %d, query = %q", rec.Code, gotQuery)
	}
	if !strings.Contains(rec.Body.String(), `"byProjectName":[]`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/api/v1/search", "")
	if rec.Code != http.StatusBadRequest || decodeMessage(t, rec) != "Query parameter is required" {
		t.Errorf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}
