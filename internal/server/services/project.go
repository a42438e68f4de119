package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/server/auth"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
	"github.com/dmitrijs2005/hoverboard/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ProjectService manages portfolio projects. Reads are public; writes are
// gated on ownership.
type ProjectService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	newID       func() string
}

func NewProjectService(db *sql.DB, m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{
		db:          db,
		repomanager: m,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.NewString() },
	}
}

func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	return s.repomanager.Projects(s.db).List(ctx)
}

// Get returns the project with its view counter already incremented.
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	return s.repomanager.Projects(s.db).IncrementViews(ctx, id)
}

// ListByUsername lists the projects of the user holding username.
func (s *ProjectService) ListByUsername(ctx context.Context, username string) ([]*models.Project, error) {
	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Projects(s.db).ListByUser(ctx, user.ID)
}

func (s *ProjectService) Create(ctx context.Context, ownerID string, in models.ProjectCreate) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := models.NewProject(s.newID(), ownerID, in, s.now())

	p, err := s.repomanager.Projects(s.db).Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error creating project: %w", err)
	}
	return p, nil
}

// loadOwned fetches a project and checks that subjectID owns it.
func (s *ProjectService) loadOwned(ctx context.Context, subjectID, id string) (*models.Project, error) {
	p, err := s.repomanager.Projects(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwner(subjectID, p.UserID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, subjectID, id string, upd models.ProjectUpdate) (*models.Project, error) {
	p, err := s.loadOwned(ctx, subjectID, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(p)
	if p.Title == "" || p.Category == "" {
		return nil, fmt.Errorf("%w: title and category cannot be cleared", common.ErrorInvalidInput)
	}

	p, err = s.repomanager.Projects(s.db).Update(ctx, p)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating project: %w", err)
	}
	return p, nil
}

// Delete reports whether a record was actually removed.
func (s *ProjectService) Delete(ctx context.Context, subjectID, id string) (bool, error) {
	if _, err := s.loadOwned(ctx, subjectID, id); err != nil {
		return false, err
	}

	deleted, err := s.repomanager.Projects(s.db).Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("error deleting project: %w", err)
	}
	return deleted, nil
}
