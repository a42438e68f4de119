package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/client/models"
	"github.com/dmitrijs2005/hoverboard/internal/dbx"
)

const (
	keyAccessToken = "access_token"
	keyUserID      = "user_id"
	keyEmail       = "email"
	keyUsername    = "username"
	keySavedAt     = "saved_at"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, key string) (string, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return string(value), nil
}

func (r *SQLiteRepository) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, []byte(value))
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

// Load returns ErrNoSession when no access token is stored.
func (r *SQLiteRepository) Load(ctx context.Context) (*models.Session, error) {
	token, err := r.get(ctx, keyAccessToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoSession
	}

	s := &models.Session{AccessToken: token}
	for key, dst := range map[string]*string{
		keyUserID:   &s.UserID,
		keyEmail:    &s.Email,
		keyUsername: &s.Username,
	} {
		if *dst, err = r.get(ctx, key); err != nil {
			return nil, err
		}
	}

	savedAt, err := r.get(ctx, keySavedAt)
	if err != nil {
		return nil, err
	}
	if savedAt != "" {
		if s.SavedAt, err = time.Parse(time.RFC3339, savedAt); err != nil {
			return nil, fmt.Errorf("failed to parse metadata[%s]: %w", keySavedAt, err)
		}
	}

	return s, nil
}

// Save overwrites every session key. Callers wanting all-or-nothing
// semantics pass a transaction as db.
func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	pairs := [][2]string{
		{keyAccessToken, s.AccessToken},
		{keyUserID, s.UserID},
		{keyEmail, s.Email},
		{keyUsername, s.Username},
		{keySavedAt, s.SavedAt.UTC().Format(time.RFC3339)},
	}
	for _, p := range pairs {
		if err := r.set(ctx, p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) SetUsername(ctx context.Context, username string) error {
	return r.set(ctx, keyUsername, username)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata`)
	if err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}
