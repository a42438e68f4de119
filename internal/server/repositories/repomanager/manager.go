package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hoverboard/internal/dbx"
	"github.com/dmitrijs2005/hoverboard/internal/server/repositories/projects"
	"github.com/dmitrijs2005/hoverboard/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a database handle, which may
// be a *sql.DB or a transaction. Backends without SQL ignore the handle.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Projects(db dbx.DBTX) projects.Repository
	// WithTx runs fn atomically where the backend supports it.
	WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error
}
