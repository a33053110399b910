package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

// ─── TokenRepository ───

type tokenRepo struct{ pool *pgxpool.Pool }

func (r *tokenRepo) Create(ctx context.Context, in repository.CreateRefreshTokenInput) (*repository.RefreshToken, error) {
	const query = `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id::text, user_id::text, token_hash, created_at, expires_at
	`
	var t repository.RefreshToken
	err := r.pool.QueryRow(ctx, query, in.UserID, in.TokenHash, in.ExpiresAt).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.CreatedAt, &t.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("pg: create refresh token: %w", err)
	}
	return &t, nil
}

func (r *tokenRepo) GetByHash(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
	const query = `
		SELECT id::text, user_id::text, token_hash, created_at, expires_at, revoked_at, replaced_by::text
		FROM refresh_tokens WHERE token_hash = $1
	`
	var t repository.RefreshToken
	err := r.pool.QueryRow(ctx, query, tokenHash).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.CreatedAt, &t.ExpiresAt, &t.RevokedAt, &t.ReplacedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: get refresh token: %w", err)
	}
	return &t, nil
}

// Revoke solo afecta tokens activos: dos rotaciones concurrentes del mismo
// token no pueden ganar ambas.
func (r *tokenRepo) Revoke(ctx context.Context, id string, replacedBy *string) error {
	if !validID(id) {
		return repository.ErrNotFound
	}
	const query = `
		UPDATE refresh_tokens SET revoked_at = now(), replaced_by = $2
		WHERE id = $1 AND revoked_at IS NULL
	`
	tag, err := r.pool.Exec(ctx, query, id, replacedBy)
	if err != nil {
		return fmt.Errorf("pg: revoke refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
