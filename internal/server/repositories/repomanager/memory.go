package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hoverboard/internal/dbx"
	"github.com/dmitrijs2005/hoverboard/internal/server/repositories/projects"
	"github.com/dmitrijs2005/hoverboard/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out the same in-memory repositories for
// every handle. WithTx is not atomic across repositories.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	projects *projects.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		projects: projects.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Projects(dbx.DBTX) projects.Repository {
	return m.projects
}

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return fn(ctx, nil)
}

// UserStore exposes the concrete store for test helpers such as Delete.
func (m *MemoryRepositoryManager) UserStore() *users.MemoryRepository {
	return m.users
}
