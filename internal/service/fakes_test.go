package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"time"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/repositories"
	"taskdeck/internal/service/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type txKey struct{}

// fakeTx runs fn directly and marks ctx so repositories can tell they are inside a transaction.
// When failAfter is set, the unit of work returns that error after fn succeeds.
type fakeTx struct {
	calls     int
	failAfter error
}

func (f *fakeTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	f.calls++
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		return err
	}
	return f.failAfter
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// memStore backs the in-memory repositories shared by one test
type memStore struct {
	seq      int
	clock    time.Time
	users    map[string]*models.User
	projects map[string]*models.Project
	tasks    map[string]*models.Task

	// txWrites counts writes made inside a transaction
	txWrites int
	// calls counts every repository call
	calls int
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[string]*models.User{},
		projects: map[string]*models.Project{},
		tasks:    map[string]*models.Task{},
	}
}

// nextID returns deterministic UUID-shaped ids
func (m *memStore) nextID() string {
	m.seq++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", m.seq)
}

// tick returns strictly increasing timestamps so creation order is stable
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) write(ctx context.Context) {
	m.calls++
	if inTx(ctx) {
		m.txWrites++
	}
}

func (m *memStore) addUser(name string) *models.User {
	u := &models.User{ID: m.nextID(), ExternalID: "github:" + name, Username: name, Projects: []string{}}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addProject(userID, name string, tags ...string) *models.Project {
	p := &models.Project{ID: m.nextID(), UserID: userID, Name: name, Tags: tags, TaskIDs: []string{}, CreatedAt: m.tick()}
	m.projects[p.ID] = p
	if u, ok := m.users[userID]; ok {
		u.Projects = append(u.Projects, p.ID)
	}
	return p
}

func (m *memStore) addTask(p *models.Project, content string, resolved bool) *models.Task {
	t := &models.Task{ID: m.nextID(), ProjectID: p.ID, UserID: p.UserID, Content: content, Resolved: resolved, CreatedAt: m.tick()}
	m.tasks[t.ID] = t
	p.TaskIDs = append(p.TaskIDs, t.ID)
	return t
}

func sortedProjects(in []models.Project) []models.Project {
	sort.Slice(in, func(i, j int) bool { return in[i].CreatedAt.Before(in[j].CreatedAt) })
	return in
}

func sortedTasks(in []models.Task) []models.Task {
	sort.Slice(in, func(i, j int) bool { return in[i].CreatedAt.Before(in[j].CreatedAt) })
	return in
}

// ---- projects ----

type memProjectRepo struct{ *memStore }

func (r memProjectRepo) Create(ctx context.Context, p *models.Project) error {
	r.write(ctx)
	p.ID = r.nextID()
	p.CreatedAt = r.tick()
	p.UpdatedAt = p.CreatedAt
	if p.TaskIDs == nil {
		p.TaskIDs = []string{}
	}
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r memProjectRepo) GetByID(_ context.Context, id, userID string) (*models.Project, error) {
	r.calls++
	p, ok := r.projects[id]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r memProjectRepo) filter(keep func(*models.Project) bool) []models.Project {
	out := []models.Project{}
	for _, p := range r.projects {
		if keep(p) {
			out = append(out, *p)
		}
	}
	return sortedProjects(out)
}

func (r memProjectRepo) List(_ context.Context, userID string) ([]models.Project, error) {
	r.calls++
	return r.filter(func(p *models.Project) bool { return p.UserID == userID }), nil
}

func (r memProjectRepo) ListPage(_ context.Context, userID string, offset, limit int) ([]models.Project, error) {
	r.calls++
	all := r.filter(func(p *models.Project) bool { return p.UserID == userID })
	if offset >= len(all) {
		return []models.Project{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (r memProjectRepo) Count(_ context.Context, userID string) (int, error) {
	r.calls++
	return len(r.filter(func(p *models.Project) bool { return p.UserID == userID })), nil
}

func (r memProjectRepo) ListByTag(_ context.Context, userID, tag string) ([]models.Project, error) {
	r.calls++
	return r.filter(func(p *models.Project) bool { return p.UserID == userID && slices.Contains(p.Tags, tag) }), nil
}

func (r memProjectRepo) ListTags(_ context.Context, userID string) ([]string, error) {
	r.calls++
	set := map[string]bool{}
	for _, p := range r.projects {
		if p.UserID == userID {
			for _, t := range p.Tags {
				set[t] = true
			}
		}
	}
	tags := []string{}
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags, nil
}

func (r memProjectRepo) ListByIDs(_ context.Context, userID string, ids []string) ([]models.Project, error) {
	r.calls++
	return r.filter(func(p *models.Project) bool { return p.UserID == userID && slices.Contains(ids, p.ID) }), nil
}

func (r memProjectRepo) SearchByNameOrTag(_ context.Context, userID, pattern string) ([]models.Project, error) {
	r.calls++
	re := regexp.MustCompile("(?i)" + pattern)
	return r.filter(func(p *models.Project) bool {
		if p.UserID != userID {
			return false
		}
		return re.MatchString(p.Name) || slices.ContainsFunc(p.Tags, re.MatchString)
	}), nil
}

func (r memProjectRepo) Update(ctx context.Context, p *models.Project) error {
	r.write(ctx)
	existing, ok := r.projects[p.ID]
	if !ok || existing.UserID != p.UserID {
		return fmt.Errorf("project %s: %w", p.ID, domain.ErrNotFound)
	}
	existing.Name = p.Name
	existing.Tags = p.Tags
	existing.UpdatedAt = p.UpdatedAt
	return nil
}

func (r memProjectRepo) Delete(ctx context.Context, id, userID string) error {
	r.write(ctx)
	p, ok := r.projects[id]
	if !ok || p.UserID != userID {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	delete(r.projects, id)
	return nil
}

func (r memProjectRepo) AttachTask(ctx context.Context, projectID, taskID string) error {
	r.write(ctx)
	p, ok := r.projects[projectID]
	if !ok {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	p.TaskIDs = append(p.TaskIDs, taskID)
	return nil
}

func (r memProjectRepo) DetachTasks(ctx context.Context, projectID string, taskIDs []string) error {
	r.write(ctx)
	if p, ok := r.projects[projectID]; ok {
		p.TaskIDs = slices.DeleteFunc(p.TaskIDs, func(id string) bool { return slices.Contains(taskIDs, id) })
	}
	return nil
}

// ---- tasks ----

type memTaskRepo struct{ *memStore }

func (r memTaskRepo) Create(ctx context.Context, t *models.Task) error {
	r.write(ctx)
	t.ID = r.nextID()
	t.CreatedAt = r.tick()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.tasks[t.ID] = &cp
	return nil
}

func (r memTaskRepo) GetByID(_ context.Context, id, userID string) (*models.Task, error) {
	r.calls++
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r memTaskRepo) filter(keep func(*models.Task) bool) []models.Task {
	out := []models.Task{}
	for _, t := range r.tasks {
		if keep(t) {
			out = append(out, *t)
		}
	}
	return sortedTasks(out)
}

func matches(f repositories.TaskFilter, t *models.Task) bool {
	if t.UserID != f.UserID || !slices.Contains(f.IDs, t.ID) {
		return false
	}
	return f.ProjectID == "" || t.ProjectID == f.ProjectID
}

func (r memTaskRepo) ListByProject(_ context.Context, projectID, userID string) ([]models.Task, error) {
	r.calls++
	return r.filter(func(t *models.Task) bool { return t.ProjectID == projectID && t.UserID == userID }), nil
}

func (r memTaskRepo) ListByProjects(_ context.Context, userID string, projectIDs []string) ([]models.Task, error) {
	r.calls++
	return r.filter(func(t *models.Task) bool { return t.UserID == userID && slices.Contains(projectIDs, t.ProjectID) }), nil
}

func (r memTaskRepo) SearchByContent(_ context.Context, userID, pattern string) ([]models.Task, error) {
	r.calls++
	re := regexp.MustCompile("(?i)" + pattern)
	return r.filter(func(t *models.Task) bool { return t.UserID == userID && re.MatchString(t.Content) }), nil
}

func (r memTaskRepo) Update(ctx context.Context, t *models.Task) error {
	r.write(ctx)
	existing, ok := r.tasks[t.ID]
	if !ok || existing.UserID != t.UserID {
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrNotFound)
	}
	*existing = *t
	return nil
}

func (r memTaskRepo) SetResolved(ctx context.Context, f repositories.TaskFilter, resolved bool) (int64, int64, error) {
	r.write(ctx)
	var matched, modified int64
	for _, t := range r.tasks {
		if matches(f, t) {
			matched++
			if t.Resolved != resolved {
				t.Resolved = resolved
				modified++
			}
		}
	}
	return matched, modified, nil
}

func (r memTaskRepo) Find(_ context.Context, f repositories.TaskFilter) ([]models.Task, error) {
	r.calls++
	return r.filter(func(t *models.Task) bool { return matches(f, t) }), nil
}

func (r memTaskRepo) DeleteMany(ctx context.Context, f repositories.TaskFilter) (int64, error) {
	r.write(ctx)
	var n int64
	for id, t := range r.tasks {
		if matches(f, t) {
			delete(r.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r memTaskRepo) Delete(ctx context.Context, id, userID string) error {
	r.write(ctx)
	t, ok := r.tasks[id]
	if !ok || t.UserID != userID {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	delete(r.tasks, id)
	return nil
}

func (r memTaskRepo) DeleteByProject(ctx context.Context, projectID, userID string) (int64, error) {
	r.write(ctx)
	var n int64
	for id, t := range r.tasks {
		if t.ProjectID == projectID && t.UserID == userID {
			delete(r.tasks, id)
			n++
		}
	}
	return n, nil
}

// ---- users ----

type memUserRepo struct{ *memStore }

func (r memUserRepo) Upsert(ctx context.Context, u *models.User) error {
	r.write(ctx)
	for _, existing := range r.users {
		if existing.ExternalID == u.ExternalID {
			existing.Username = u.Username
			existing.DisplayName = u.DisplayName
			existing.ProfileURL = u.ProfileURL
			existing.ProfilePic = u.ProfilePic
			*u = *existing
			return nil
		}
	}
	u.ID = r.nextID()
	u.Projects = []string{}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.calls++
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r memUserRepo) GetByExternalID(_ context.Context, externalID string) (*models.User, error) {
	r.calls++
	for _, u := range r.users {
		if u.ExternalID == externalID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", externalID, domain.ErrNotFound)
}

func (r memUserRepo) AttachProject(ctx context.Context, userID, projectID string) error {
	r.write(ctx)
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if !slices.Contains(u.Projects, projectID) {
		u.Projects = append(u.Projects, projectID)
	}
	return nil
}

func (r memUserRepo) DetachProject(ctx context.Context, userID, projectID string) error {
	r.write(ctx)
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	u.Projects = slices.DeleteFunc(u.Projects, func(id string) bool { return id == projectID })
	return nil
}

// fixture wires all services over one memStore
type fixture struct {
	store    *memStore
	tx       *fakeTx
	projects *projectService
	tasks    *taskService
	search   *searchService
	users    *userService
}

func newFixture() *fixture {
	store := newMemStore()
	tx := &fakeTx{}
	logger := discardLogger()
	projectRepo := memProjectRepo{store}
	taskRepo := memTaskRepo{store}
	userRepo := memUserRepo{store}

	authorizer := auth.NewOwnerBasedAuthorizer(projectRepo)

	return &fixture{
		store:    store,
		tx:       tx,
		projects: NewProjectService(projectRepo, taskRepo, userRepo, tx, logger).(*projectService),
		tasks:    NewTaskService(taskRepo, projectRepo, tx, authorizer, logger).(*taskService),
		search:   NewSearchService(projectRepo, taskRepo, logger).(*searchService),
		users:    NewUserService(userRepo, logger).(*userService),
	}
}

// seedProjects adds n projects named P1..Pn for user
func (f *fixture) seedProjects(userID string, n int) []*models.Project {
	out := make([]*models.Project, n)
	for i := range out {
		out[i] = f.store.addProject(userID, "P"+strconv.Itoa(i+1))
	}
	return out
}
