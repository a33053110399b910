package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/bizflow/internal/cache"
	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
	"github.com/dropDatabas3/bizflow/internal/security/password"
	tokens "github.com/dropDatabas3/bizflow/internal/security/token"
)

const refreshTokenBytes = 32

var tracer = otel.Tracer("github.com/dropDatabas3/bizflow/internal/identity")

type localProvider struct {
	deps Deps
	// refreshes colapsa refresh concurrentes del mismo token.
	refreshes singleflight.Group
}

// NewLocal crea el provider respaldado por el store.
func NewLocal(deps Deps) Provider {
	deps.defaults()
	return &localProvider{deps: deps}
}

// NormalizeEmail aplica trim + lowercase.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (p *localProvider) SignUp(ctx context.Context, email, plain string) (*User, error) {
	log := logger.From(ctx).With(logger.Layer("identity"), logger.Op("SignUp"))

	email = NormalizeEmail(email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if ok, reasons := p.deps.Policy.Validate(plain); !ok {
		return nil, fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(reasons, ","))
	}

	hash, err := password.Hash(p.deps.PasswordParams, plain)
	if err != nil {
		return nil, fmt.Errorf("identity: hash password: %w", err)
	}

	u, err := p.deps.Users.Create(ctx, email, hash)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	log.Info("user registered", logger.UserID(u.ID))
	return &User{ID: u.ID, Email: u.Email}, nil
}

func (p *localProvider) SignIn(ctx context.Context, email, plain string) (*Session, error) {
	u, err := p.deps.Users.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !password.Verify(plain, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return p.issueSession(ctx, User{ID: u.ID, Email: u.Email})
}

func (p *localProvider) SignOut(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}
	tok, err := p.deps.Tokens.GetByHash(ctx, tokens.SHA256Base64URL(refreshToken))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := p.deps.Tokens.Revoke(ctx, tok.ID, nil); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if p.deps.Cache != nil {
		_ = p.deps.Cache.Delete(ctx, userCacheKey(tok.UserID))
	}
	return nil
}

func (p *localProvider) GetUser(ctx context.Context, accessToken string) (*User, error) {
	claims, err := p.parseAccess(accessToken)
	if err != nil {
		return nil, nil
	}

	if u, ok := p.cachedUser(ctx, claims.Subject); ok {
		return u, nil
	}

	ru, err := p.deps.Users.GetByID(ctx, claims.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := &User{ID: ru.ID, Email: ru.Email}
	p.cacheUser(ctx, u)
	return u, nil
}

func (p *localProvider) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}
	hash := tokens.SHA256Base64URL(refreshToken)

	// Los callers que comparten token reciben el mismo par rotado.
	v, err, shared := p.refreshes.Do(hash, func() (any, error) {
		return p.rotate(context.WithoutCancel(ctx), hash)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.From(ctx).Debug("refresh collapsed", logger.Layer("identity"), logger.Op("Refresh"))
	}
	s := *v.(*Session)
	return &s, nil
}

func (p *localProvider) rotate(ctx context.Context, hash string) (*Session, error) {
	ctx, span := tracer.Start(ctx, "identity.rotate")
	defer span.End()

	old, err := p.deps.Tokens.GetByHash(ctx, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, err
	}
	if !old.Active(p.deps.Now()) {
		return nil, ErrInvalidRefreshToken
	}

	ru, err := p.deps.Users.GetByID(ctx, old.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return nil, err
	}

	sess, newTok, err := p.newSession(ctx, User{ID: ru.ID, Email: ru.Email})
	if err != nil {
		return nil, err
	}

	if err := p.deps.Tokens.Revoke(ctx, old.ID, &newTok.ID); err != nil {
		// Otra instancia rotó primero: el token nuevo no debe sobrevivir.
		_ = p.deps.Tokens.Revoke(ctx, newTok.ID, nil)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	return sess, nil
}

func (p *localProvider) issueSession(ctx context.Context, u User) (*Session, error) {
	sess, _, err := p.newSession(ctx, u)
	return sess, err
}

// newSession persiste un refresh token nuevo y firma el access token asociado.
func (p *localProvider) newSession(ctx context.Context, u User) (*Session, *repository.RefreshToken, error) {
	raw, err := tokens.GenerateOpaqueToken(refreshTokenBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("identity: generate refresh token: %w", err)
	}
	now := p.deps.Now()
	rt, err := p.deps.Tokens.Create(ctx, repository.CreateRefreshTokenInput{
		UserID:    u.ID,
		TokenHash: tokens.SHA256Base64URL(raw),
		ExpiresAt: now.Add(p.deps.RefreshTTL),
	})
	if err != nil {
		return nil, nil, err
	}

	access, exp, err := p.signAccess(u, rt.ID, now)
	if err != nil {
		return nil, nil, err
	}
	return &Session{
		AccessToken:      access,
		RefreshToken:     raw,
		AccessExpiresAt:  exp,
		RefreshExpiresAt: rt.ExpiresAt,
		User:             u,
	}, rt, nil
}

func userCacheKey(id string) string { return "user:" + id }

func (p *localProvider) cachedUser(ctx context.Context, id string) (*User, bool) {
	if p.deps.Cache == nil {
		return nil, false
	}
	raw, err := p.deps.Cache.Get(ctx, userCacheKey(id))
	if err != nil {
		if !cache.IsNotFound(err) {
			logger.From(ctx).Warn("user cache get failed", logger.Err(err))
		}
		return nil, false
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID != id {
		return nil, false
	}
	return &u, true
}

func (p *localProvider) cacheUser(ctx context.Context, u *User) {
	if p.deps.Cache == nil {
		return
	}
	b, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := p.deps.Cache.Set(ctx, userCacheKey(u.ID), string(b), p.deps.CacheTTL); err != nil {
		logger.From(ctx).Warn("user cache set failed", logger.Err(err))
	}
}
