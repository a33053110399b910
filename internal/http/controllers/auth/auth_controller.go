// Package auth contiene los controllers JSON de autenticación.
package auth

import (
	"errors"
	"net/http"
	"time"

	dto "github.com/dropDatabas3/bizflow/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/bizflow/internal/http/errors"
	"github.com/dropDatabas3/bizflow/internal/http/helpers"
	svc "github.com/dropDatabas3/bizflow/internal/http/services/auth"
	"github.com/dropDatabas3/bizflow/internal/identity"
)

// Controller maneja /api/auth/*.
type Controller struct {
	service svc.Service
	cookies identity.CookieConfig
	now     func() time.Time
}

// NewController crea el controller de auth.
func NewController(service svc.Service, cookies identity.CookieConfig) *Controller {
	return &Controller{service: service, cookies: cookies, now: time.Now}
}

// MapError traduce errores del identity provider a AppError.
func MapError(err error) error {
	switch {
	case errors.Is(err, identity.ErrInvalidEmail):
		return httperrors.ErrInvalidFormat.WithDetail("email").WithCause(err)
	case errors.Is(err, identity.ErrWeakPassword):
		return httperrors.ErrPasswordTooWeak.WithCause(err)
	case errors.Is(err, identity.ErrEmailTaken):
		return httperrors.ErrEmailAlreadyInUse.WithCause(err)
	case errors.Is(err, identity.ErrInvalidCredentials):
		return httperrors.ErrInvalidCredentials.WithCause(err)
	case errors.Is(err, identity.ErrInvalidRefreshToken):
		return httperrors.ErrSessionExpired.WithCause(err)
	}
	return err
}

// Signup maneja POST /api/auth/signup.
func (c *Controller) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("email, password"))
		return
	}
	u, err := c.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		httperrors.WriteError(w, MapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.UserResponse{User: *u})
}

// Login maneja POST /api/auth/login. Setea las cookies de sesión.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("email, password"))
		return
	}
	s, err := c.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httperrors.WriteError(w, MapError(err))
		return
	}
	helpers.SetCookies(w, c.cookies.SessionCookies(s))
	helpers.WriteJSON(w, http.StatusOK, dto.FromSession(s, c.now()))
}

// Logout maneja POST /api/auth/logout. Siempre limpia las cookies.
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	_, refresh := identity.TokensFromRequest(r)
	c.service.Logout(r.Context(), refresh)
	helpers.SetCookies(w, c.cookies.ClearCookies())
	helpers.NoContent(w)
}

// Refresh maneja POST /api/auth/refresh. El token puede venir en body o cookie.
func (c *Controller) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if r.ContentLength > 0 {
		if !helpers.ReadJSON(w, r, &req) {
			return
		}
	}
	token := req.RefreshToken
	if token == "" {
		_, token = identity.TokensFromRequest(r)
	}
	if token == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("refresh_token"))
		return
	}
	s, err := c.service.Refresh(r.Context(), token)
	if err != nil {
		httperrors.WriteError(w, MapError(err))
		return
	}
	helpers.SetCookies(w, c.cookies.SessionCookies(s))
	helpers.WriteJSON(w, http.StatusOK, dto.FromSession(s, c.now()))
}

// User maneja GET /api/auth/user. Requiere WithIdentity.
func (c *Controller) User(w http.ResponseWriter, r *http.Request) {
	u := identity.UserFrom(r.Context())
	if u == nil {
		httperrors.WriteError(w, httperrors.ErrUnauthorized)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.UserResponse{User: *u})
}
