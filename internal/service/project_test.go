package service

import (
	"context"
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/services"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{11, 5, 3},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestCreateProject(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      services.CreateProjectRequest
		wantErr  error
		wantName string
		wantTags []string
	}{
		{
			name:     "trims name and normalizes tags",
			req:      services.CreateProjectRequest{Name: "  Launch ", Tags: []string{"go lang", "go_lang", "web!"}},
			wantName: "Launch",
			wantTags: []string{"go_lang", "web"},
		},
		{
			name:     "no tags",
			req:      services.CreateProjectRequest{Name: "Launch"},
			wantName: "Launch",
			wantTags: []string{},
		},
		{
			name:    "empty name",
			req:     services.CreateProjectRequest{Name: ""},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "blank name",
			req:     services.CreateProjectRequest{Name: "   "},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			user := f.store.addUser("ada")
			req := tt.req
			req.UserID = user.ID

			project, err := f.projects.CreateProject(ctx, &req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if project.Name != tt.wantName {
				t.Errorf("name = %q, want %q", project.Name, tt.wantName)
			}
			if !reflect.DeepEqual(project.Tags, tt.wantTags) {
				t.Errorf("tags = %q, want %q", project.Tags, tt.wantTags)
			}
			if len(project.Tasks) != 0 || project.Tasks == nil {
				t.Errorf("expected empty non-nil tasks, got %v", project.Tasks)
			}
			if !slices.Contains(f.store.users[user.ID].Projects, project.ID) {
				t.Error("project was not added to the owner's project set")
			}
			if f.tx.calls != 1 || f.store.txWrites != 2 {
				t.Errorf("expected create and attach in one transaction, got tx=%d writes=%d", f.tx.calls, f.store.txWrites)
			}
		})
	}
}

func TestListProjectsPage(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := f.store.addUser("ada")
	projects := f.seedProjects(user.ID, 7)
	f.store.addTask(projects[5], "in page two", false)

	// another user's projects never count
	other := f.store.addUser("bob")
	f.seedProjects(other.ID, 3)

	tests := []struct {
		name      string
		page      int
		wantNames []string
		wantPage  int
		wantTotal int
	}{
		{"first page", 1, []string{"P1", "P2", "P3", "P4", "P5"}, 1, 2},
		{"last partial page", 2, []string{"P6", "P7"}, 2, 2},
		{"beyond total pages", 3, []string{}, 3, 2},
		{"far beyond total pages", 40, []string{}, 40, 2},
		{"max int page", math.MaxInt, []string{}, math.MaxInt, 2},
		{"zero reads as first page", 0, []string{"P1", "P2", "P3", "P4", "P5"}, 1, 2},
		{"negative reads as first page", -2, []string{"P1", "P2", "P3", "P4", "P5"}, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.projects.ListProjectsPage(ctx, user.ID, tt.page)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			names := []string{}
			for _, p := range page.Projects {
				names = append(names, p.Name)
			}
			if !reflect.DeepEqual(names, tt.wantNames) {
				t.Errorf("projects = %v, want %v", names, tt.wantNames)
			}
			if page.CurrentPage != tt.wantPage {
				t.Errorf("currentPage = %d, want %d", page.CurrentPage, tt.wantPage)
			}
			if page.TotalPages != tt.wantTotal {
				t.Errorf("totalPages = %d, want %d", page.TotalPages, tt.wantTotal)
			}
		})
	}

	t.Run("tasks are embedded", func(t *testing.T) {
		page, err := f.projects.ListProjectsPage(ctx, user.ID, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Projects[0].Tasks) != 1 || page.Projects[0].Tasks[0].Content != "in page two" {
			t.Errorf("unexpected tasks: %+v", page.Projects[0].Tasks)
		}
		if page.Projects[1].Tasks == nil {
			t.Error("expected empty non-nil task list")
		}
	})
}

func TestListProjectsPageEmpty(t *testing.T) {
	f := newFixture()
	user := f.store.addUser("ada")

	page, err := f.projects.ListProjectsPage(context.Background(), user.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Projects) != 0 || page.TotalPages != 0 || page.CurrentPage != 1 {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := f.store.addUser("ada")
	p := f.store.addProject(user.ID, "Old", "keep")

	t.Run("name only keeps tags", func(t *testing.T) {
		got, err := f.projects.UpdateProject(ctx, p.ID, user.ID, &services.UpdateProjectRequest{Name: "New"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Name != "New" || !reflect.DeepEqual(got.Tags, []string{"keep"}) {
			t.Errorf("unexpected project: %+v", got)
		}
	})

	t.Run("tags replaced and normalized", func(t *testing.T) {
		tags := []string{"a b", "a_b", "c"}
		got, err := f.projects.UpdateProject(ctx, p.ID, user.ID, &services.UpdateProjectRequest{Name: "New", Tags: &tags})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got.Tags, []string{"a_b", "c"}) {
			t.Errorf("tags = %q", got.Tags)
		}
	})

	t.Run("other user's project is not found", func(t *testing.T) {
		_, err := f.projects.UpdateProject(ctx, p.ID, "someone-else", &services.UpdateProjectRequest{Name: "X"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := f.projects.UpdateProject(ctx, p.ID, user.ID, &services.UpdateProjectRequest{Name: " "})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestDeleteProjectCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := f.store.addUser("ada")
	doomed := f.store.addProject(user.ID, "Doomed")
	kept := f.store.addProject(user.ID, "Kept")
	f.store.addTask(doomed, "a", false)
	f.store.addTask(doomed, "b", true)
	keptTask := f.store.addTask(kept, "c", false)

	if err := f.projects.DeleteProject(ctx, doomed.ID, user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := f.store.projects[doomed.ID]; ok {
		t.Error("project still stored")
	}
	if len(f.store.tasks) != 1 || f.store.tasks[keptTask.ID] == nil {
		t.Errorf("expected only the other project's task to remain, got %d tasks", len(f.store.tasks))
	}
	if slices.Contains(f.store.users[user.ID].Projects, doomed.ID) {
		t.Error("project id still in the owner's project set")
	}
	if f.tx.calls != 1 || f.store.txWrites != 3 {
		t.Errorf("expected three writes in one transaction, got tx=%d writes=%d", f.tx.calls, f.store.txWrites)
	}
}

func TestDeleteProjectNotFound(t *testing.T) {
	f := newFixture()
	user := f.store.addUser("ada")

	err := f.projects.DeleteProject(context.Background(), "00000000-0000-4000-8000-999999999999", user.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.store.txWrites != 0 {
		t.Errorf("expected no writes, got %d", f.store.txWrites)
	}
}

func TestDeleteProjectPropagatesTxFailure(t *testing.T) {
	f := newFixture()
	user := f.store.addUser("ada")
	p := f.store.addProject(user.ID, "P")
	commitErr := errors.New("commit failed")
	f.tx.failAfter = commitErr

	if err := f.projects.DeleteProject(context.Background(), p.ID, user.ID); !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user := f.store.addUser("ada")
	f.store.addProject(user.ID, "A", "work", "urgent")
	b := f.store.addProject(user.ID, "B", "home", "work")
	f.store.addTask(b, "water plants", false)

	tags, err := f.projects.ListTags(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tags, []string{"home", "urgent", "work"}) {
		t.Errorf("tags = %v", tags)
	}

	tagged, err := f.projects.ListProjectsByTag(ctx, user.ID, "home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tagged) != 1 || tagged[0].Name != "B" || len(tagged[0].Tasks) != 1 {
		t.Errorf("unexpected projects: %+v", tagged)
	}

	if _, err := f.projects.ListProjectsByTag(ctx, user.ID, " "); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for blank tag, got %v", err)
	}
}
