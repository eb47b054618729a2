package userRepo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"hotelsa/database/repository/shared"
	"hotelsa/models"
)

// MemoryUserRepo implements UserRepository in process memory.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]models.User)}
}

func (r *MemoryUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("user %s: %w", user.ID, ErrDuplicateUser)
	}
	for _, u := range r.users {
		if u.Email == email {
			return fmt.Errorf("user %s: %w", email, ErrDuplicateUser)
		}
	}
	now := time.Now()
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, shared.ErrNotFound)
	}
	return &u, nil
}

func (r *MemoryUserRepo) UpdateName(ctx context.Context, id, name string) error {
	return r.update(id, func(u *models.User) { u.Name = name })
}

func (r *MemoryUserRepo) SetPushToken(ctx context.Context, id, token string) error {
	return r.update(id, func(u *models.User) { u.PushToken = token })
}

func (r *MemoryUserRepo) update(id string, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, shared.ErrNotFound)
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return nil
}
