package pages

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/bizflow/internal/http/helpers"
	"github.com/dropDatabas3/bizflow/internal/http/views"
	"github.com/dropDatabas3/bizflow/internal/identity"
)

// authErrorKey traduce errores del provider a key + status.
func authErrorKey(err error) (string, int, bool) {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		return "auth.invalidCredentials", http.StatusUnauthorized, true
	case errors.Is(err, identity.ErrInvalidEmail):
		return "auth.invalidEmail", http.StatusBadRequest, true
	case errors.Is(err, identity.ErrWeakPassword):
		return "auth.weakPassword", http.StatusUnprocessableEntity, true
	case errors.Is(err, identity.ErrEmailTaken):
		return "auth.emailTaken", http.StatusConflict, true
	}
	return "", 0, false
}

func credentials(r *http.Request) (email, password string) {
	return strings.TrimSpace(r.PostFormValue("email")), r.PostFormValue("password")
}

// LoginPage maneja GET /{locale}/login.
func (c *Controller) LoginPage(w http.ResponseWriter, r *http.Request) {
	if identity.UserFrom(r.Context()) != nil {
		redirect(w, r, "/dashboard")
		return
	}
	p := c.page(r, "common.login", views.AuthForm{})
	if r.URL.Query().Get("registered") == "1" {
		p.Notice = "auth.registered"
	}
	c.deps.Views.Render(w, r, http.StatusOK, views.PageLogin, p)
}

// Login maneja POST /{locale}/login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	email, password := credentials(r)
	p := c.page(r, "common.login", views.AuthForm{Email: email})

	s, err := c.deps.Auth.Login(r.Context(), email, password)
	if err != nil {
		if key, status, ok := authErrorKey(err); ok {
			p.Error = key
			c.deps.Views.Render(w, r, status, views.PageLogin, p)
			return
		}
		c.fail(w, r, views.PageLogin, p, err)
		return
	}
	helpers.SetCookies(w, c.deps.Cookies.SessionCookies(s))
	redirect(w, r, "/dashboard")
}

// RegisterPage maneja GET /{locale}/register.
func (c *Controller) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if identity.UserFrom(r.Context()) != nil {
		redirect(w, r, "/dashboard")
		return
	}
	c.deps.Views.Render(w, r, http.StatusOK, views.PageRegister, c.page(r, "common.register", views.AuthForm{}))
}

// Register maneja POST /{locale}/register. No inicia sesión.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	email, password := credentials(r)
	p := c.page(r, "common.register", views.AuthForm{Email: email})

	if _, err := c.deps.Auth.Register(r.Context(), email, password); err != nil {
		if key, status, ok := authErrorKey(err); ok {
			p.Error = key
			c.deps.Views.Render(w, r, status, views.PageRegister, p)
			return
		}
		c.fail(w, r, views.PageRegister, p, err)
		return
	}
	redirect(w, r, "/login?registered=1")
}

// Logout maneja POST /{locale}/logout.
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	_, refresh := identity.TokensFromRequest(r)
	c.deps.Auth.Logout(r.Context(), refresh)
	helpers.SetCookies(w, c.deps.Cookies.ClearCookies())
	redirect(w, r, "/login")
}
