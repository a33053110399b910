package repository

import (
	"context"
	"time"
)

// RefreshToken es un refresh token persistido. Solo se guarda el hash.
type RefreshToken struct {
	ID         string
	UserID     string
	TokenHash  string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	ReplacedBy *string
}

// Active reporta si el token puede usarse en el instante now.
func (t *RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

// CreateRefreshTokenInput contiene los datos para emitir un refresh token.
type CreateRefreshTokenInput struct {
	UserID    string
	TokenHash string
	ExpiresAt time.Time
}

// TokenRepository define operaciones sobre refresh tokens.
type TokenRepository interface {
	// Create persiste un token y retorna su id.
	Create(ctx context.Context, in CreateRefreshTokenInput) (*RefreshToken, error)

	// GetByHash busca por hash. ErrNotFound si no existe.
	GetByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)

	// Revoke marca el token como revocado; replacedBy es opcional.
	// ErrNotFound si el token ya estaba revocado o no existe.
	Revoke(ctx context.Context, id string, replacedBy *string) error
}
