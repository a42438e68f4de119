// Package session persists the CLI session as key/value rows in the local
// SQLite database.
package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hoverboard/internal/client/models"
)

// ErrNoSession is returned by Load when nothing has been saved.
var ErrNoSession = errors.New("no saved session")

type Repository interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	SetUsername(ctx context.Context, username string) error
	Clear(ctx context.Context) error
}
