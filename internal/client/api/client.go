// Package api is a typed client for the taskdeck REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/services"
)

const defaultTimeout = 15 * time.Second

// Error is a non-2xx answer from the server
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client calls one taskdeck server. Each method is a single round trip.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a client for baseURL (e.g. "http://localhost:8080/api/v1")
// authenticating with a session token
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

// LoginURL returns the address that starts a terminal login
func (c *Client) LoginURL(provider string) string {
	q := url.Values{"provider": {provider}, "client": {"cli"}}
	return c.baseURL + "/user/login?" + q.Encode()
}

// ListProjectsPage fetches one page of projects
func (c *Client) ListProjectsPage(ctx context.Context, page int) (*models.ProjectPage, error) {
	var out models.ProjectPage
	if err := c.do(ctx, http.MethodGet, "/projects/page/"+strconv.Itoa(page), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProjects fetches every project
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject fetches one project with its tasks
func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject creates a project
func (c *Client) CreateProject(ctx context.Context, name string, tags []string) (*models.Project, error) {
	var out models.Project
	req := services.CreateProjectRequest{Name: name, Tags: tags}
	if err := c.do(ctx, http.MethodPost, "/projects", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject renames a project and, when tags is non-nil, replaces its tags
func (c *Client) UpdateProject(ctx context.Context, id, name string, tags *[]string) (*models.Project, error) {
	var out models.Project
	req := services.UpdateProjectRequest{Name: name, Tags: tags}
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject deletes a project and its tasks
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil)
}

// ListTags fetches the distinct tags of the user's projects
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.do(ctx, http.MethodGet, "/projects/tags", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListProjectsByTag fetches the projects carrying tag
func (c *Client) ListProjectsByTag(ctx context.Context, tag string) ([]models.Project, error) {
	var out []models.Project
	if err := c.do(ctx, http.MethodGet, "/projects/tags/"+url.PathEscape(tag), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask adds a task to a project
func (c *Client) CreateTask(ctx context.Context, projectID, content string) (*models.Task, error) {
	var out models.Task
	req := services.CreateTaskRequest{ProjectID: projectID, Content: content}
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTasks fetches a project's tasks
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	var out []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(projectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTask changes a task's content and/or resolved flag
func (c *Client) UpdateTask(ctx context.Context, id string, req services.UpdateTaskRequest) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetResolvedMany sets resolved on the listed tasks of a project
func (c *Client) SetResolvedMany(ctx context.Context, projectID string, ids []string, resolved bool) (*models.BulkResult, error) {
	req := services.BulkUpdateRequest{ProjectID: projectID, IDs: ids}
	req.Update.Resolved = &resolved

	var out models.BulkResult
	if err := c.do(ctx, http.MethodPut, "/tasks/update-all", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTasks deletes the listed tasks of a project
func (c *Client) DeleteTasks(ctx context.Context, projectID string, ids []string) (*models.BulkResult, error) {
	var out models.BulkResult
	req := services.BulkDeleteRequest{ProjectID: projectID, IDs: ids}
	if err := c.do(ctx, http.MethodDelete, "/tasks/delete-all", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask deletes one task
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(projectID)+"/"+url.PathEscape(taskID), nil, nil)
}

// Search runs a free-text search
func (c *Client) Search(ctx context.Context, query string) (*models.SearchResults, error) {
	var out models.SearchResults
	if err := c.do(ctx, http.MethodGet, "/search?"+url.Values{"query": {query}}.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the current user
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: readMessage(resp.Body)}
		c.logger.Error("request rejected",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"message", apiErr.Message,
		)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

// readMessage extracts "message" from an error body, falling back to the raw text
func readMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 64<<10))

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}
