package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

type userRepo struct{ c *Connection }

func (r *userRepo) Create(ctx context.Context, email, passwordHash string) (*repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	for _, u := range r.c.users {
		if u.Email == email {
			return nil, repository.ErrConflict
		}
	}
	u := repository.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    r.c.now().UTC(),
	}
	r.c.users[u.ID] = u
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	for _, u := range r.c.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	u, ok := r.c.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}
