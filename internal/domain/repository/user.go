package repository

import (
	"context"
	"time"
)

// User es una identidad registrada en el identity provider.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository define operaciones sobre usuarios.
type UserRepository interface {
	// Create inserta un usuario. ErrConflict si el email ya existe.
	Create(ctx context.Context, email, passwordHash string) (*User, error)

	// GetByEmail busca por email normalizado (lowercase).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID busca por id.
	GetByID(ctx context.Context, id string) (*User, error)
}
