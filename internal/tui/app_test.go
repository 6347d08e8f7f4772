package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/client"
	"taskdeck/internal/client/state"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/services"
)

// fakeAPI keeps one page of projects in memory
type fakeAPI struct {
	projects []models.Project
	nextID   int
	deleted  []string
}

func (f *fakeAPI) id() string {
	f.nextID++
	return fmt.Sprintf("t%d", f.nextID)
}

func (f *fakeAPI) ListProjectsPage(_ context.Context, page int) (*models.ProjectPage, error) {
	return &models.ProjectPage{Projects: f.projects, CurrentPage: page, TotalPages: 1}, nil
}

func (f *fakeAPI) CreateProject(_ context.Context, name string, tags []string) (*models.Project, error) {
	return &models.Project{ID: f.id(), Name: name, Tags: tags, Tasks: []models.Task{}}, nil
}

func (f *fakeAPI) UpdateProject(_ context.Context, id, name string, tags *[]string) (*models.Project, error) {
	return &models.Project{ID: id, Name: name, Tags: *tags, Tasks: []models.Task{}}, nil
}

func (f *fakeAPI) DeleteProject(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAPI) ListTags(context.Context) ([]string, error) { return nil, nil }

func (f *fakeAPI) ListProjectsByTag(context.Context, string) ([]models.Project, error) {
	return nil, nil
}

func (f *fakeAPI) CreateTask(_ context.Context, projectID, content string) (*models.Task, error) {
	return &models.Task{ID: f.id(), ProjectID: projectID, Content: content}, nil
}

func (f *fakeAPI) UpdateTask(_ context.Context, id string, req services.UpdateTaskRequest) (*models.Task, error) {
	t := &models.Task{ID: id}
	if req.Content != nil {
		t.Content = *req.Content
	}
	if req.Resolved != nil {
		t.Resolved = *req.Resolved
	}
	return t, nil
}

func (f *fakeAPI) SetResolvedMany(context.Context, string, []string, bool) (*models.BulkResult, error) {
	return &models.BulkResult{}, nil
}

func (f *fakeAPI) DeleteTasks(context.Context, string, []string) (*models.BulkResult, error) {
	return &models.BulkResult{}, nil
}

func (f *fakeAPI) DeleteTask(context.Context, string, string) error { return nil }

func (f *fakeAPI) Search(context.Context, string) (*models.SearchResults, error) {
	return &models.SearchResults{ByProjectName: []models.Project{{ID: "p1", Name: "Launch"}}}, nil
}

func (f *fakeAPI) Profile(context.Context) (*models.User, error) { return &models.User{}, nil }

func newTestApp(t *testing.T) (*App, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{projects: []models.Project{
		{ID: "p1", Name: "Launch", Tasks: []models.Task{{ID: "a", ProjectID: "p1", Content: "write"}}},
		{ID: "p2", Name: "Empty", Tasks: []models.Task{}},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := client.NewSession(api, state.NewStore(state.Initial()), logger)

	app := NewApp(context.Background(), session)
	drain(t, app, app.Init())
	return app, api
}

// drain runs cmd and feeds the resulting messages back into the app
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if res, ok := msg.(opResultMsg); ok && res.err != nil {
			t.Fatalf("operation failed: %v", res.err)
		}
		if _, ok := msg.(tea.BatchMsg); ok {
			return
		}
		_, cmd = app.Update(msg)
	}
}

func press(t *testing.T, app *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := app.Update(msg)
		drain(t, app, cmd)
	}
}

func TestParseProjectInput(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
		wantTags []string
	}{
		{"Launch", "Launch", []string{}},
		{"Launch plan #work #q3", "Launch plan", []string{"work", "q3"}},
		{"#solo Name", "Name", []string{"solo"}},
		{"Name # #", "Name", []string{}},
	}

	for _, tt := range tests {
		name, tags := parseProjectInput(tt.in)
		if name != tt.wantName || !reflect.DeepEqual(tags, tt.wantTags) {
			t.Errorf("parseProjectInput(%q) = %q, %q; want %q, %q", tt.in, name, tags, tt.wantName, tt.wantTags)
		}
	}
}

func TestOpenProjectAndBack(t *testing.T) {
	app, _ := newTestApp(t)

	if !strings.Contains(app.View(), "Launch") {
		t.Fatal("project list not rendered")
	}

	press(t, app, "down", "enter")
	if app.current != viewTasks || app.tasks.projectID != "p2" {
		t.Fatalf("expected task view of p2, got view %d", app.current)
	}
	if got := app.session.Store().State().CurrentProjectID; got != "p2" {
		t.Errorf("current project = %q", got)
	}

	press(t, app, "esc")
	if app.current != viewProjects {
		t.Error("esc did not return to the project list")
	}
}

func TestTaskFlow(t *testing.T) {
	app, _ := newTestApp(t)
	press(t, app, "enter")

	press(t, app, "n", "s", "h", "i", "p", "enter")
	project, _ := app.session.Store().State().Project("p1")
	if len(project.Tasks) != 2 || project.Tasks[1].Content != "ship" {
		t.Fatalf("unexpected tasks: %+v", project.Tasks)
	}

	press(t, app, " ")
	project, _ = app.session.Store().State().Project("p1")
	if !project.Tasks[0].Resolved {
		t.Error("space did not toggle the selected task")
	}

	press(t, app, "f")
	if f := app.session.Store().State().TasksFilter; f != state.FilterRemained {
		t.Errorf("filter = %q, want remained", f)
	}
	if view := app.View(); strings.Contains(view, "write") || !strings.Contains(view, "ship") {
		t.Errorf("remained filter shows the wrong tasks:\n%s", view)
	}
}

func TestQuitIgnoredWhileTyping(t *testing.T) {
	app, _ := newTestApp(t)
	press(t, app, "enter", "n")

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("q quit while the input was focused")
		}
	}
	if app.tasks.input.Value() != "q" {
		t.Errorf("input = %q", app.tasks.input.Value())
	}
}

func TestDeleteProjectConfirmation(t *testing.T) {
	app, api := newTestApp(t)

	press(t, app, "d")
	if app.projects.mode != projectConfirmDelete {
		t.Fatal("deleting a project with open tasks did not ask for confirmation")
	}
	press(t, app, "n")
	if len(api.deleted) != 0 {
		t.Fatal("project deleted without confirmation")
	}

	press(t, app, "d", "y")
	if !reflect.DeepEqual(api.deleted, []string{"p1"}) {
		t.Fatalf("deleted = %v", api.deleted)
	}

	press(t, app, "down", "d")
	if app.projects.mode == projectConfirmDelete {
		t.Error("project without open tasks should delete immediately")
	}
}

func TestSearchResultsRendered(t *testing.T) {
	app, _ := newTestApp(t)
	press(t, app, "/", "l", "a", "enter")

	if app.projects.results == nil {
		t.Fatal("no search results kept")
	}
	if !strings.Contains(app.View(), "Search results") {
		t.Error("search results not rendered")
	}
}
