// Package pages contiene los controllers de las páginas HTML localizadas.
// Todas las rutas viven bajo /{locale} y pasan por WithSessionLocale.
package pages

import (
	"net/http"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	"github.com/dropDatabas3/bizflow/internal/http/middlewares"
	"github.com/dropDatabas3/bizflow/internal/http/services/auth"
	"github.com/dropDatabas3/bizflow/internal/http/services/customers"
	"github.com/dropDatabas3/bizflow/internal/http/services/dashboard"
	"github.com/dropDatabas3/bizflow/internal/http/services/forms"
	"github.com/dropDatabas3/bizflow/internal/http/views"
	"github.com/dropDatabas3/bizflow/internal/i18n"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
	"github.com/go-chi/chi/v5"
)

// Deps contiene lo que necesitan las páginas.
type Deps struct {
	Auth      auth.Service
	Customers customers.Service
	Forms     forms.Service
	Dashboard dashboard.Service
	Views     *views.Renderer
	Cookies   identity.CookieConfig
}

// Controller maneja todas las páginas.
type Controller struct {
	deps Deps
}

// NewController crea el controller de páginas.
func NewController(deps Deps) *Controller {
	return &Controller{deps: deps}
}

// localeOf prioriza el locale decidido por el pipeline.
func localeOf(r *http.Request) string {
	if loc := middlewares.GetLocale(r.Context()); loc != "" {
		return loc
	}
	if loc := chi.URLParam(r, "locale"); i18n.IsSupported(loc) {
		return loc
	}
	if seg, _ := i18n.FirstSegment(r.URL.Path); i18n.IsSupported(seg) {
		return seg
	}
	return i18n.Default
}

// pathOf es la ruta sin el prefijo de locale.
func pathOf(r *http.Request) string {
	seg, rest := i18n.FirstSegment(r.URL.Path)
	if i18n.IsSupported(seg) {
		return rest
	}
	return r.URL.Path
}

func (c *Controller) page(r *http.Request, title string, data any) views.Page {
	return views.Page{
		Locale: localeOf(r),
		Title:  title,
		User:   identity.UserFrom(r.Context()),
		Path:   pathOf(r),
		Data:   data,
	}
}

// redirect envía a /{locale}{path} con 303 (post/redirect/get).
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, "/"+localeOf(r)+path, http.StatusSeeOther)
}

// requireUser redirige al login si no hay sesión.
func requireUser(w http.ResponseWriter, r *http.Request) (*identity.User, bool) {
	u := identity.UserFrom(r.Context())
	if u == nil {
		redirect(w, r, "/login")
		return nil, false
	}
	return u, true
}

// fail renderiza name con el error traducido. Sin backend muestra missingEnv.
func (c *Controller) fail(w http.ResponseWriter, r *http.Request, name string, p views.Page, err error) {
	switch {
	case repository.IsNoDatabase(err):
		p.MissingEnv = true
		c.deps.Views.Render(w, r, http.StatusServiceUnavailable, name, p)
	case repository.IsNotFound(err):
		c.NotFound(w, r)
	default:
		logger.From(r.Context()).Error("page failed",
			logger.Layer("controller"), logger.Component("pages"), logger.String("page", name), logger.Err(err))
		p.Error = "common.unexpectedError"
		c.deps.Views.Render(w, r, http.StatusInternalServerError, name, p)
	}
}

// NotFound renderiza la página 404 localizada.
func (c *Controller) NotFound(w http.ResponseWriter, r *http.Request) {
	c.deps.Views.Render(w, r, http.StatusNotFound, views.PageNotFound, c.page(r, "common.notFound", nil))
}

// Home redirige al dashboard o al login según la sesión.
func (c *Controller) Home(w http.ResponseWriter, r *http.Request) {
	if identity.UserFrom(r.Context()) != nil {
		redirect(w, r, "/dashboard")
		return
	}
	redirect(w, r, "/login")
}
