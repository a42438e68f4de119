package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/dmitrijs2005/hoverboard/internal/server/models"
)

// MemoryRepository keeps users in a map. Every write holds the lock for the
// whole check-and-set, so uniqueness holds under concurrent callers.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*models.User)}
}

func clone(u *models.User) *models.User {
	c := *u
	return &c
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.ErrEmailTaken
		}
		if user.Username != "" && u.Username == user.Username {
			return nil, common.ErrUsernameTaken
		}
	}

	r.users[user.ID] = clone(user)
	return user, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return clone(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, common.ErrorNotFound
	}
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *MemoryRepository) SetUsername(_ context.Context, id, username string, at time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	for otherID, other := range r.users {
		if otherID != id && username != "" && other.Username == username {
			return nil, common.ErrUsernameTaken
		}
	}

	u.Username = username
	touch(u, at)
	return clone(u), nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, upd models.UserUpdate, at time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	upd.Apply(u)
	touch(u, at)
	return clone(u), nil
}

// Delete removes a user outright. The service layer never calls it.
func (r *MemoryRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// SetActive flips the active flag.
func (r *MemoryRepository) SetActive(id string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.IsActive = active
	}
}

func touch(u *models.User, at time.Time) {
	if at.After(u.UpdatedAt) {
		u.UpdatedAt = at
	}
}
