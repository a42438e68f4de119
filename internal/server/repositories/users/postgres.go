package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/dbx"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
)

// Constraint names from the users migration.
const (
	emailConstraint    = "users_email_key"
	usernameConstraint = "users_username_key"
)

const userColumns = `id, email, username, password_hash, full_name, bio, avatar_url,
		 saldo, level, created_at, updated_at, is_active`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.FullName, &u.Bio, &u.AvatarURL,
		&u.Saldo, &u.Level, &u.CreatedAt, &u.UpdatedAt, &u.IsActive)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// mapError translates driver errors into the repository's error contract.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if constraint, ok := dbx.UniqueViolation(err); ok {
		switch constraint {
		case emailConstraint:
			return common.ErrEmailTaken
		case usernameConstraint:
			return common.ErrUsernameTaken
		}
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (` + userColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Username, user.PasswordHash, user.FullName, user.Bio, user.AvatarURL,
		user.Saldo, user.Level, user.CreatedAt, user.UpdatedAt, user.IsActive)

	if err != nil {
		return nil, mapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) getBy(ctx context.Context, column, value string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		 WHERE ` + column + ` = $1
		 `

	user, err := scanUser(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		return nil, mapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email", email)
}

// GetByUsername never matches unclaimed accounts.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, common.ErrorNotFound
	}
	return r.getBy(ctx, "username", username)
}

func (r *PostgresRepository) SetUsername(ctx context.Context, id, username string, at time.Time) (*models.User, error) {
	query :=
		`UPDATE users SET username = $2, updated_at = GREATEST(updated_at, $3)
		 WHERE id = $1
		 RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id, username, at))
	if err != nil {
		return nil, mapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, upd models.UserUpdate, at time.Time) (*models.User, error) {
	query :=
		`UPDATE users SET
		 full_name = COALESCE($2, full_name),
		 bio = COALESCE($3, bio),
		 avatar_url = COALESCE($4, avatar_url),
		 updated_at = GREATEST(updated_at, $5)
		 WHERE id = $1
		 RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id, upd.FullName, upd.Bio, upd.AvatarURL, at))
	if err != nil {
		return nil, mapError(err)
	}

	return user, nil
}
