package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"taskdeck/internal/auth"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/services"
	"taskdeck/internal/httputil"
)

type mockProjectService struct {
	CreateProjectFunc     func(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error)
	GetProjectFunc        func(ctx context.Context, id, userID string) (*models.Project, error)
	ListProjectsFunc      func(ctx context.Context, userID string) ([]models.Project, error)
	ListProjectsPageFunc  func(ctx context.Context, userID string, page int) (*models.ProjectPage, error)
	UpdateProjectFunc     func(ctx context.Context, id, userID string, req *services.UpdateProjectRequest) (*models.Project, error)
	DeleteProjectFunc     func(ctx context.Context, id, userID string) error
	ListTagsFunc          func(ctx context.Context, userID string) ([]string, error)
	ListProjectsByTagFunc func(ctx context.Context, userID, tag string) ([]models.Project, error)
}

func (m *mockProjectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	return m.CreateProjectFunc(ctx, req)
}

func (m *mockProjectService) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	return m.GetProjectFunc(ctx, id, userID)
}

func (m *mockProjectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	return m.ListProjectsFunc(ctx, userID)
}

func (m *mockProjectService) ListProjectsPage(ctx context.Context, userID string, page int) (*models.ProjectPage, error) {
	return m.ListProjectsPageFunc(ctx, userID, page)
}

func (m *mockProjectService) UpdateProject(ctx context.Context, id, userID string, req *services.UpdateProjectRequest) (*models.Project, error) {
	return m.UpdateProjectFunc(ctx, id, userID, req)
}

func (m *mockProjectService) DeleteProject(ctx context.Context, id, userID string) error {
	return m.DeleteProjectFunc(ctx, id, userID)
}

func (m *mockProjectService) ListTags(ctx context.Context, userID string) ([]string, error) {
	return m.ListTagsFunc(ctx, userID)
}

func (m *mockProjectService) ListProjectsByTag(ctx context.Context, userID, tag string) ([]models.Project, error) {
	return m.ListProjectsByTagFunc(ctx, userID, tag)
}

type mockTaskService struct {
	CreateTaskFunc func(ctx context.Context, req *services.CreateTaskRequest) (*models.Task, error)
	ListTasksFunc  func(ctx context.Context, projectID, userID string) ([]models.Task, error)
	UpdateTaskFunc func(ctx context.Context, id, userID string, req *services.UpdateTaskRequest) (*models.Task, error)
	UpdateManyFunc func(ctx context.Context, userID string, req *services.BulkUpdateRequest) (*models.BulkResult, error)
	DeleteManyFunc func(ctx context.Context, userID string, req *services.BulkDeleteRequest) (*models.BulkResult, error)
	DeleteTaskFunc func(ctx context.Context, projectID, taskID, userID string) error
}

func (m *mockTaskService) CreateTask(ctx context.Context, req *services.CreateTaskRequest) (*models.Task, error) {
	return m.CreateTaskFunc(ctx, req)
}

func (m *mockTaskService) ListTasks(ctx context.Context, projectID, userID string) ([]models.Task, error) {
	return m.ListTasksFunc(ctx, projectID, userID)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, id, userID string, req *services.UpdateTaskRequest) (*models.Task, error) {
	return m.UpdateTaskFunc(ctx, id, userID, req)
}

func (m *mockTaskService) UpdateMany(ctx context.Context, userID string, req *services.BulkUpdateRequest) (*models.BulkResult, error) {
	return m.UpdateManyFunc(ctx, userID, req)
}

func (m *mockTaskService) DeleteMany(ctx context.Context, userID string, req *services.BulkDeleteRequest) (*models.BulkResult, error) {
	return m.DeleteManyFunc(ctx, userID, req)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, projectID, taskID, userID string) error {
	return m.DeleteTaskFunc(ctx, projectID, taskID, userID)
}

type mockSearchService struct {
	SearchFunc func(ctx context.Context, userID, query string) (*models.SearchResults, error)
}

func (m *mockSearchService) Search(ctx context.Context, userID, query string) (*models.SearchResults, error) {
	return m.SearchFunc(ctx, userID, query)
}

type mockUserService struct {
	LoginWithProfileFunc func(ctx context.Context, profile *models.ExternalProfile) (*models.User, error)
	ResolveExternalFunc  func(ctx context.Context, profile *models.ExternalProfile) (string, error)
	GetProfileFunc       func(ctx context.Context, userID string) (*models.User, error)
}

func (m *mockUserService) LoginWithProfile(ctx context.Context, profile *models.ExternalProfile) (*models.User, error) {
	return m.LoginWithProfileFunc(ctx, profile)
}

func (m *mockUserService) ResolveExternal(ctx context.Context, profile *models.ExternalProfile) (string, error) {
	return m.ResolveExternalFunc(ctx, profile)
}

func (m *mockUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return m.GetProfileFunc(ctx, userID)
}

type mockProvider struct {
	ExchangeFunc func(ctx context.Context, code string) (*models.ExternalProfile, error)
}

func (m *mockProvider) Name() string { return "github" }

func (m *mockProvider) AuthCodeURL(state string) string {
	return "https://provider.example/authorize?state=" + state
}

func (m *mockProvider) Exchange(ctx context.Context, code string) (*models.ExternalProfile, error) {
	return m.ExchangeFunc(ctx, code)
}

type mockIssuer struct{}

func (mockIssuer) Issue(user *models.User) (string, time.Time, error) {
	return "session-for-" + user.ID, time.Now().Add(time.Hour), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withUser stands in for the auth middleware
func withUser(userID string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, httputil.WithUserID(r, userID))
	})
}

// newTestServer mounts every route with the given services behind a fixed user
func newTestServer(ps services.ProjectService, ts services.TaskService, ss services.SearchService, us services.UserService, providers ...*mockProvider) http.Handler {
	logger := testLogger()

	oauth := make([]auth.OAuthProvider, len(providers))
	for i, p := range providers {
		oauth[i] = p
	}

	h := &Handlers{
		Projects: NewProjectHandler(ps, logger),
		Tasks:    NewTaskHandler(ts, logger),
		Search:   NewSearchHandler(ss, logger),
		Users:    NewUserHandler(us, mockIssuer{}, oauth, "http://frontend.example", false, logger),
	}

	mux := http.NewServeMux()
	h.Register(mux, "/api/v1")
	return withUser("user-1", mux)
}
