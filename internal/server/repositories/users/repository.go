// Package users stores user accounts. PostgresRepository is the production
// store; MemoryRepository backs tests and database-less development runs.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/server/models"
)

// Repository is the user-record store. Implementations enforce unique emails
// and unique non-empty usernames, reporting violations as common.ErrEmailTaken
// and common.ErrUsernameTaken, and common.ErrorNotFound for unknown records.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// SetUsername sets the handle and bumps updated_at in one write.
	SetUsername(ctx context.Context, id, username string, at time.Time) (*models.User, error)
	Update(ctx context.Context, id string, upd models.UserUpdate, at time.Time) (*models.User, error)
}
