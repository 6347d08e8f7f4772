// Package seed fills a fresh database with a demo user and sample projects.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/services"
)

// DemoProfile is the identity the demo data belongs to
var DemoProfile = models.ExternalProfile{
	Provider:    "github",
	ProviderID:  "0",
	Username:    "demo",
	DisplayName: "Demo User",
}

type sampleTask struct {
	content  string
	resolved bool
}

type sampleProject struct {
	name  string
	tags  []string
	tasks []sampleTask
}

// Seven projects so the demo list spans two pages
var sampleProjects = []sampleProject{
	{"Groceries", []string{"home", "errands"}, []sampleTask{
		{"Milk", false}, {"Eggs", true}, {"Coffee beans", false},
	}},
	{"Website relaunch", []string{"work", "web"}, []sampleTask{
		{"Draft landing page copy", true}, {"Pick a color palette", false}, {"Set up CI deploys", false},
	}},
	{"Trip to Lisbon", []string{"travel"}, []sampleTask{
		{"Book flights", true}, {"Reserve hotel", true},
	}},
	{"Garden", []string{"home"}, []sampleTask{
		{"Water the tomatoes", false},
	}},
	{"Reading list", []string{"books"}, nil},
	{"Quarterly report", []string{"work"}, []sampleTask{
		{"Collect metrics", false}, {"Write summary", false},
	}},
	{"Birthday party", []string{"family", "errands"}, []sampleTask{
		{"Order cake", false}, {"Send invitations", true},
	}},
}

// Summary reports what Seed created
type Summary struct {
	UserID   string
	Projects int
	Tasks    int
}

// Seeder creates demo data through the service layer
type Seeder struct {
	users    services.UserService
	projects services.ProjectService
	tasks    services.TaskService
	logger   *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(
	users services.UserService,
	projects services.ProjectService,
	tasks services.TaskService,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		users:    users,
		projects: projects,
		tasks:    tasks,
		logger:   logger,
	}
}

// Seed creates the demo user with its sample projects and tasks
func (s *Seeder) Seed(ctx context.Context) (*Summary, error) {
	profile := DemoProfile
	user, err := s.users.LoginWithProfile(ctx, &profile)
	if err != nil {
		return nil, fmt.Errorf("create demo user: %w", err)
	}

	summary := &Summary{UserID: user.ID}

	for _, sp := range sampleProjects {
		project, err := s.projects.CreateProject(ctx, &services.CreateProjectRequest{
			UserID: user.ID,
			Name:   sp.name,
			Tags:   sp.tags,
		})
		if err != nil {
			return nil, fmt.Errorf("create project %q: %w", sp.name, err)
		}
		summary.Projects++

		for _, st := range sp.tasks {
			task, err := s.tasks.CreateTask(ctx, &services.CreateTaskRequest{
				UserID:    user.ID,
				ProjectID: project.ID,
				Content:   st.content,
			})
			if err != nil {
				return nil, fmt.Errorf("create task %q: %w", st.content, err)
			}
			summary.Tasks++

			if st.resolved {
				resolved := true
				if _, err := s.tasks.UpdateTask(ctx, task.ID, user.ID, &services.UpdateTaskRequest{Resolved: &resolved}); err != nil {
					return nil, fmt.Errorf("resolve task %q: %w", st.content, err)
				}
			}
		}

		s.logger.Debug("seeded project", "name", sp.name, "tasks", len(sp.tasks))
	}

	s.logger.Info("seed complete",
		"user_id", summary.UserID,
		"projects", summary.Projects,
		"tasks", summary.Tasks,
	)

	return summary, nil
}
