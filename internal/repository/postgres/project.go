package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const projectColumns = `id, user_id, name, tags, task_ids, created_at, updated_at`

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, task_ids, created_at, updated_at
	`, r.tables.Projects)

	if project.Tags == nil {
		project.Tags = []string{}
	}

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.UserID,
		project.Name,
		project.Tags,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID, &project.TaskIDs, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("user %s: %w", project.UserID, domain.ErrNotFound)
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id, userID string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	project, err := scanProject(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return project, nil
}

// List retrieves all projects for a user in creation order
func (r *PostgresProjectRepository) List(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, projectColumns, r.tables.Projects)

	return r.queryProjects(ctx, "list projects", query, userID)
}

// ListPage retrieves one slice of the user's projects in creation order
func (r *PostgresProjectRepository) ListPage(ctx context.Context, userID string, offset, limit int) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
		OFFSET $2 LIMIT $3
	`, projectColumns, r.tables.Projects)

	return r.queryProjects(ctx, "list project page", query, userID, offset, limit)
}

// Count returns the number of projects a user owns
func (r *PostgresProjectRepository) Count(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE user_id = $1`, r.tables.Projects)

	var count int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}

	return int(count), nil
}

// ListByTag retrieves the user's projects carrying tag
func (r *PostgresProjectRepository) ListByTag(ctx context.Context, userID, tag string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND $2 = ANY(tags)
		ORDER BY created_at ASC, id ASC
	`, projectColumns, r.tables.Projects)

	return r.queryProjects(ctx, "list projects by tag", query, userID, tag)
}

// ListTags returns the distinct tags across the user's projects
func (r *PostgresProjectRepository) ListTags(ctx context.Context, userID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT tag
		FROM %s, unnest(tags) AS tag
		WHERE user_id = $1
		ORDER BY tag
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}

	return tags, nil
}

// ListByIDs retrieves the user's projects among ids
func (r *PostgresProjectRepository) ListByIDs(ctx context.Context, userID string, ids []string) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND id = ANY($2)
		ORDER BY created_at ASC, id ASC
	`, projectColumns, r.tables.Projects)

	return r.queryProjects(ctx, "list projects by ids", query, userID, ids)
}

// SearchByNameOrTag matches pattern case-insensitively against name and tags
func (r *PostgresProjectRepository) SearchByNameOrTag(ctx context.Context, userID, pattern string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		  AND (name ~* $2 OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ~* $2))
		ORDER BY created_at ASC, id ASC
	`, projectColumns, r.tables.Projects)

	projects, err := r.queryProjects(ctx, "search projects", query, userID, pattern)
	if IsPgInvalidRegexError(err) {
		return nil, fmt.Errorf("invalid search pattern: %w", domain.ErrValidation)
	}
	return projects, err
}

// Update updates a project's name, tags and updated_at timestamp
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, tags = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`, r.tables.Projects)

	if project.Tags == nil {
		project.Tags = []string{}
	}

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		project.Name,
		project.Tags,
		project.UpdatedAt,
		project.ID,
		project.UserID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a project row
func (r *PostgresProjectRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s still has tasks: %w", id, domain.ErrValidation)
		}
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AttachTask appends taskID to the project's task list
func (r *PostgresProjectRepository) AttachTask(ctx context.Context, projectID, taskID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET task_ids = array_append(task_ids, $2), updated_at = NOW()
		WHERE id = $1
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID, taskID)
	if err != nil {
		return fmt.Errorf("attach task: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}

	return nil
}

// DetachTasks removes taskIDs from the project's task list, keeping order
func (r *PostgresProjectRepository) DetachTasks(ctx context.Context, projectID string, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET task_ids = COALESCE((
			SELECT array_agg(t ORDER BY ord)
			FROM unnest(task_ids) WITH ORDINALITY AS u(t, ord)
			WHERE t <> ALL($2)
		), '{}'), updated_at = NOW()
		WHERE id = $1
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID, taskIDs); err != nil {
		return fmt.Errorf("detach tasks: %w", err)
	}

	return nil
}

func (r *PostgresProjectRepository) queryProjects(ctx context.Context, op, query string, args ...interface{}) ([]models.Project, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}

func scanProject(row scanner) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.Tags,
		&project.TaskIDs,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}
