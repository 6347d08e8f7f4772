package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"taskdeck/internal/domain"
	"taskdeck/internal/domain/models"
	"taskdeck/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, external_id, username, display_name, profile_url, profile_pic, project_ids, created_at, updated_at`

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert creates the user or refreshes its profile fields using ON CONFLICT
func (r *PostgresUserRepository) Upsert(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (external_id, username, display_name, profile_url, profile_pic, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (external_id)
		DO UPDATE SET
			username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			profile_url = EXCLUDED.profile_url,
			profile_pic = EXCLUDED.profile_pic,
			updated_at = NOW()
		RETURNING %s
	`, r.tables.Users, userColumns)

	executor := GetExecutor(ctx, r.pool)
	stored, err := scanUser(executor.QueryRow(ctx, query,
		user.ExternalID,
		user.Username,
		user.DisplayName,
		user.ProfileURL,
		user.ProfilePic,
	))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	*user = *stored
	return nil
}

// GetByID retrieves a user by internal ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userColumns, r.tables.Users)
	return r.getOne(ctx, query, id)
}

// GetByExternalID retrieves a user by provider-qualified identity
func (r *PostgresUserRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE external_id = $1`, userColumns, r.tables.Users)
	return r.getOne(ctx, query, externalID)
}

// AttachProject adds projectID to the user's project set
func (r *PostgresUserRepository) AttachProject(ctx context.Context, userID, projectID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET project_ids = CASE WHEN $2 = ANY(project_ids) THEN project_ids ELSE array_append(project_ids, $2) END,
			updated_at = NOW()
		WHERE id = $1
	`, r.tables.Users)

	return r.execUserUpdate(ctx, "attach project", query, userID, projectID)
}

// DetachProject removes projectID from the user's project set
func (r *PostgresUserRepository) DetachProject(ctx context.Context, userID, projectID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET project_ids = array_remove(project_ids, $2), updated_at = NOW()
		WHERE id = $1
	`, r.tables.Users)

	return r.execUserUpdate(ctx, "detach project", query, userID, projectID)
}

func (r *PostgresUserRepository) execUserUpdate(ctx context.Context, op, query, userID, projectID string) error {
	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, userID, projectID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query, arg string) (*models.User, error) {
	executor := GetExecutor(ctx, r.pool)
	user, err := scanUser(executor.QueryRow(ctx, query, arg))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", arg, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func scanUser(row scanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.ExternalID,
		&user.Username,
		&user.DisplayName,
		&user.ProfileURL,
		&user.ProfilePic,
		&user.Projects,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
