// Package identity implementa el identity provider de BizFlow: registro,
// login, sesiones (access JWT + refresh opaco rotativo) y resolución de usuario.
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/bizflow/internal/cache"
	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	"github.com/dropDatabas3/bizflow/internal/security/password"
)

// User es la identidad expuesta a páginas y API (sin hash).
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session es un par de tokens emitido por el provider.
type Session struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	User             User
}

// Provider define el contrato del identity provider.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*User, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	// GetUser retorna nil sin error para tokens inválidos o vencidos.
	// Solo falla si el backend no responde.
	GetUser(ctx context.Context, accessToken string) (*User, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
}

// Errores del provider.
var (
	ErrInvalidEmail        = errors.New("identity: invalid email")
	ErrWeakPassword        = errors.New("identity: password does not meet policy")
	ErrEmailTaken          = errors.New("identity: email already registered")
	ErrInvalidCredentials  = errors.New("identity: invalid credentials")
	ErrInvalidRefreshToken = errors.New("identity: invalid or expired refresh token")
)

// Deps contiene las dependencias del provider local.
type Deps struct {
	Users  repository.UserRepository
	Tokens repository.TokenRepository
	// Cache es opcional; sin él GetUser consulta siempre el repositorio.
	Cache    cache.Client
	CacheTTL time.Duration

	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	Policy         password.Policy
	PasswordParams password.Params

	Now func() time.Time
}

func (d *Deps) defaults() {
	if d.Issuer == "" {
		d.Issuer = "bizflow"
	}
	if d.AccessTTL <= 0 {
		d.AccessTTL = time.Hour
	}
	if d.RefreshTTL <= 0 {
		d.RefreshTTL = 30 * 24 * time.Hour
	}
	if d.CacheTTL <= 0 {
		d.CacheTTL = time.Minute
	}
	if d.Policy.MinLength == 0 {
		d.Policy = password.DefaultPolicy
	}
	if d.PasswordParams.KeyLen == 0 {
		d.PasswordParams = password.Default
	}
	if d.Now == nil {
		d.Now = time.Now
	}
}
