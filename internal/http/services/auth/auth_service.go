// Package auth expone las operaciones del identity provider a controllers.
package auth

import (
	"context"
	"errors"

	"github.com/dropDatabas3/bizflow/internal/audit"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
)

// Service define registro, login, logout y refresh.
type Service interface {
	Register(ctx context.Context, email, password string) (*identity.User, error)
	Login(ctx context.Context, email, password string) (*identity.Session, error)
	Logout(ctx context.Context, refreshToken string)
	Refresh(ctx context.Context, refreshToken string) (*identity.Session, error)
	CurrentUser(ctx context.Context, accessToken string) (*identity.User, error)
}

// Deps contiene las dependencias del service.
type Deps struct {
	Provider identity.Provider
}

type service struct {
	deps Deps
}

// NewService crea el service de auth.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

func (s *service) Register(ctx context.Context, email, password string) (*identity.User, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth"), logger.Op("Register"))
	u, err := s.deps.Provider.SignUp(ctx, email, password)
	if err != nil {
		if !isClientError(err) {
			log.Error("sign up failed", logger.Err(err))
		}
		return nil, err
	}
	log.Info("user registered", logger.UserID(u.ID))
	audit.Log(ctx, audit.Event{Name: audit.UserRegistered, ActorID: u.ID})
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*identity.Session, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth"), logger.Op("Login"))
	sess, err := s.deps.Provider.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			log.Debug("invalid credentials")
		} else {
			log.Error("sign in failed", logger.Err(err))
		}
		return nil, err
	}
	log.Info("user signed in", logger.UserID(sess.User.ID))
	audit.Log(ctx, audit.Event{Name: audit.UserSignedIn, ActorID: sess.User.ID})
	return sess, nil
}

// Logout revoca el refresh token; es best-effort.
func (s *service) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	if err := s.deps.Provider.SignOut(ctx, refreshToken); err != nil {
		logger.From(ctx).Warn("sign out failed",
			logger.Layer("service"), logger.Component("auth"), logger.Op("Logout"), logger.Err(err))
		return
	}
	audit.Log(ctx, audit.Event{Name: audit.UserSignedOut})
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*identity.Session, error) {
	return s.deps.Provider.Refresh(ctx, refreshToken)
}

func (s *service) CurrentUser(ctx context.Context, accessToken string) (*identity.User, error) {
	if accessToken == "" {
		return nil, nil
	}
	return s.deps.Provider.GetUser(ctx, accessToken)
}

func isClientError(err error) bool {
	return errors.Is(err, identity.ErrInvalidEmail) ||
		errors.Is(err, identity.ErrWeakPassword) ||
		errors.Is(err, identity.ErrEmailTaken)
}
