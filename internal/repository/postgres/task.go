package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, project_id, user_id, content, resolved, created_at, updated_at`

// PostgresTaskRepository implements the TaskRepository interface
type PostgresTaskRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(config *RepositoryConfig) repositories.TaskRepository {
	return &PostgresTaskRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new task
func (r *PostgresTaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, user_id, content, resolved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		task.ProjectID,
		task.UserID,
		task.Content,
		task.Resolved,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", task.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by ID
func (r *PostgresTaskRepository) GetByID(ctx context.Context, id, userID string) (*models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, taskColumns, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	task, err := scanTask(executor.QueryRow(ctx, query, id, userID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	return task, nil
}

// ListByProject retrieves a project's tasks in creation order
func (r *PostgresTaskRepository) ListByProject(ctx context.Context, projectID, userID string) ([]models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1 AND user_id = $2
		ORDER BY created_at ASC, id ASC
	`, taskColumns, r.tables.Tasks)

	return r.queryTasks(ctx, "list tasks", query, projectID, userID)
}

// ListByProjects retrieves the tasks of several projects in creation order
func (r *PostgresTaskRepository) ListByProjects(ctx context.Context, userID string, projectIDs []string) ([]models.Task, error) {
	if len(projectIDs) == 0 {
		return []models.Task{}, nil
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND project_id = ANY($2)
		ORDER BY created_at ASC, id ASC
	`, taskColumns, r.tables.Tasks)

	return r.queryTasks(ctx, "list tasks by projects", query, userID, projectIDs)
}

// SearchByContent matches pattern case-insensitively against task content
func (r *PostgresTaskRepository) SearchByContent(ctx context.Context, userID, pattern string) ([]models.Task, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1 AND content ~* $2
		ORDER BY created_at ASC, id ASC
	`, taskColumns, r.tables.Tasks)

	tasks, err := r.queryTasks(ctx, "search tasks", query, userID, pattern)
	if IsPgInvalidRegexError(err) {
		return nil, fmt.Errorf("invalid search pattern: %w", domain.ErrValidation)
	}
	return tasks, err
}

// Update persists content and resolved
func (r *PostgresTaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $1, resolved = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		task.Content,
		task.Resolved,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", task.ID, domain.ErrNotFound)
	}

	return nil
}

// SetResolved sets resolved on every matching task. Tasks already in the
// target state count as matched but not modified.
func (r *PostgresTaskRepository) SetResolved(ctx context.Context, filter repositories.TaskFilter, resolved bool) (int64, int64, error) {
	where, args := filterClause(filter)
	args = append(args, resolved)
	resolvedArg := "$" + strconv.Itoa(len(args))

	query := fmt.Sprintf(`
		WITH matched AS (
			SELECT id, resolved FROM %[1]s WHERE %[2]s
		), updated AS (
			UPDATE %[1]s t
			SET resolved = %[3]s, updated_at = NOW()
			FROM matched m
			WHERE t.id = m.id AND m.resolved <> %[3]s
			RETURNING t.id
		)
		SELECT (SELECT count(*) FROM matched), (SELECT count(*) FROM updated)
	`, r.tables.Tasks, where, resolvedArg)

	var matched, modified int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, args...).Scan(&matched, &modified); err != nil {
		return 0, 0, fmt.Errorf("bulk update tasks: %w", err)
	}

	return matched, modified, nil
}

// Find returns the tasks matching filter
func (r *PostgresTaskRepository) Find(ctx context.Context, filter repositories.TaskFilter) ([]models.Task, error) {
	where, args := filterClause(filter)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY created_at ASC, id ASC
	`, taskColumns, r.tables.Tasks, where)

	return r.queryTasks(ctx, "find tasks", query, args...)
}

// DeleteMany deletes every task matching filter
func (r *PostgresTaskRepository) DeleteMany(ctx context.Context, filter repositories.TaskFilter) (int64, error) {
	where, args := filterClause(filter)
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s`, r.tables.Tasks, where)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk delete tasks: %w", err)
	}

	return result.RowsAffected(), nil
}

// Delete removes one task
func (r *PostgresTaskRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByProject removes all tasks of a project
func (r *PostgresTaskRepository) DeleteByProject(ctx context.Context, projectID, userID string) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1 AND user_id = $2`, r.tables.Tasks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, projectID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete project tasks: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *PostgresTaskRepository) queryTasks(ctx context.Context, op, query string, args ...interface{}) ([]models.Task, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tasks, nil
}

// filterClause renders the WHERE clause for a bulk filter, numbering args from $1
func filterClause(filter repositories.TaskFilter) (string, []interface{}) {
	where := "user_id = $1 AND id = ANY($2)"
	args := []interface{}{filter.UserID, filter.IDs}
	if filter.ProjectID != "" {
		args = append(args, filter.ProjectID)
		where += " AND project_id = $3"
	}
	return where, args
}

func scanTask(row scanner) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.UserID,
		&task.Content,
		&task.Resolved,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
