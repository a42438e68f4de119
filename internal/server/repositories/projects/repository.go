// Package projects stores portfolio projects.
package projects

import (
	"context"

	"github.com/dmitrijs2005/hoverboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	// List returns all projects, newest first.
	List(ctx context.Context) ([]*models.Project, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Project, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// Update overwrites every mutable column of p.
	Update(ctx context.Context, p *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id string) (bool, error)
	// IncrementViews bumps the view counter and returns the updated project.
	IncrementViews(ctx context.Context, id string) (*models.Project, error)
}
