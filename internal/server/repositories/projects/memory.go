package projects

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	projects map[string]*models.Project
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{projects: make(map[string]*models.Project)}
}

func clone(p *models.Project) *models.Project {
	c := *p
	c.GalleryImages = slices.Clone(p.GalleryImages)
	c.TechStack = slices.Clone(p.TechStack)
	c.Features = slices.Clone(p.Features)
	c.Challenges = slices.Clone(p.Challenges)
	c.Solutions = slices.Clone(p.Solutions)
	return &c
}

func (r *MemoryRepository) Create(_ context.Context, p *models.Project) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.projects[p.ID] = clone(p)
	return p, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(p), nil
}

func (r *MemoryRepository) filter(match func(*models.Project) bool) []*models.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Project, 0)
	for _, p := range r.projects {
		if match(p) {
			result = append(result, clone(p))
		}
	}
	slices.SortFunc(result, func(a, b *models.Project) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result
}

func (r *MemoryRepository) List(_ context.Context) ([]*models.Project, error) {
	return r.filter(func(*models.Project) bool { return true }), nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]*models.Project, error) {
	return r.filter(func(p *models.Project) bool { return p.UserID == userID }), nil
}

func (r *MemoryRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	list, _ := r.ListByUser(ctx, userID)
	return len(list), nil
}

func (r *MemoryRepository) Update(_ context.Context, p *models.Project) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.projects[p.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	next := clone(p)
	next.UserID = cur.UserID
	next.CreatedAt = cur.CreatedAt
	next.Views = cur.Views
	r.projects[p.ID] = next
	return clone(next), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return false, nil
	}
	delete(r.projects, id)
	return true, nil
}

func (r *MemoryRepository) IncrementViews(_ context.Context, id string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Views++
	return clone(p), nil
}
