package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

type tokenRepo struct{ c *Connection }

func (r *tokenRepo) Create(ctx context.Context, in repository.CreateRefreshTokenInput) (*repository.RefreshToken, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	t := repository.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		TokenHash: in.TokenHash,
		CreatedAt: r.c.now().UTC(),
		ExpiresAt: in.ExpiresAt,
	}
	r.c.tokens[t.ID] = t
	return &t, nil
}

func (r *tokenRepo) GetByHash(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	for _, t := range r.c.tokens {
		if t.TokenHash == tokenHash {
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *tokenRepo) Revoke(ctx context.Context, id string, replacedBy *string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	t, ok := r.c.tokens[id]
	if !ok || t.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := r.c.now().UTC()
	t.RevokedAt = &now
	t.ReplacedBy = replacedBy
	r.c.tokens[id] = t
	return nil
}
