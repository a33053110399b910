// Package router define las rutas HTTP de BizFlow sobre chi.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/bizflow/internal/http/controllers"
	httperrors "github.com/dropDatabas3/bizflow/internal/http/errors"
	mw "github.com/dropDatabas3/bizflow/internal/http/middlewares"
	"github.com/dropDatabas3/bizflow/internal/i18n"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/rate"
)

// Deps contiene las dependencias del router.
type Deps struct {
	Controllers *controllers.Controllers
	Provider    identity.Provider
	Cookies     identity.CookieConfig
	// Limiters opcionales: nil deshabilita el rate limit del scope.
	AuthLimiter       rate.Limiter
	AutomationLimiter rate.Limiter
	CORSOrigins       []string
	// Metrics es el handler de /metrics; nil no lo expone.
	Metrics http.Handler
}

// New arma el router completo: API JSON, páginas por locale, health y métricas.
func New(d Deps) http.Handler {
	c := d.Controllers
	notFound := http.HandlerFunc(c.Pages.NotFound)

	r := chi.NewRouter()
	r.Use(
		mw.WithRecover(),
		mw.WithRequestID(),
		mw.WithLogging(),
		mw.WithMetrics(),
		// Las rutas fuera del Matcher pasan por sesión + locale antes del ruteo.
		mw.WithSessionLocale(mw.PipelineConfig{
			Provider: d.Provider,
			Cookies:  d.Cookies,
			Matcher:  mw.DefaultMatcher(),
			NotFound: notFound,
		}),
	)

	r.Get("/healthz", c.Health.Healthz)
	r.Get("/readyz", c.Health.Readyz)
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics)
	}

	r.Route("/api", func(api chi.Router) {
		registerAPIRoutes(api, d)
	})

	r.Route("/{locale}", func(p chi.Router) {
		registerPageRoutes(p, c)
	})

	r.NotFound(notFound)
	return r
}

func registerAPIRoutes(api chi.Router, d Deps) {
	c := d.Controllers

	api.Use(
		mw.WithSecurityHeaders(),
		mw.WithNoStore(),
		mw.WithCORS(d.CORSOrigins),
		mw.WithIdentity(d.Provider),
	)

	// ─── Auth (público, con rate limit) ───
	api.Group(func(g chi.Router) {
		g.Use(mw.WithRateLimit(mw.RateLimitConfig{Limiter: d.AuthLimiter, Scope: "auth"}))
		g.Post("/auth/signup", c.Auth.Signup)
		g.Post("/auth/login", c.Auth.Login)
		g.Post("/auth/refresh", c.Auth.Refresh)
	})
	api.Post("/auth/logout", c.Auth.Logout)
	api.Get("/auth/user", c.Auth.User)

	// ─── Automation ───
	api.With(mw.WithRateLimit(mw.RateLimitConfig{Limiter: d.AutomationLimiter, Scope: "automation"})).
		Post("/automation/welcome-email", c.Automation.Welcome)

	// ─── Recursos del usuario ───
	api.Group(func(g chi.Router) {
		g.Use(mw.RequireUser())

		g.Route("/customers", func(cr chi.Router) {
			cr.Get("/", c.Customers.List)
			cr.Post("/", c.Customers.Create)
			cr.Get("/{id}", c.Customers.Get)
			cr.Put("/{id}", c.Customers.Update)
			cr.Delete("/{id}", c.Customers.Delete)
		})

		g.Route("/forms", func(fr chi.Router) {
			fr.Get("/", c.Forms.List)
			fr.Post("/", c.Forms.Create)
			fr.Get("/{id}", c.Forms.Get)
			fr.Delete("/{id}", c.Forms.Delete)
		})
	})

	api.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	api.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})
}

func registerPageRoutes(p chi.Router, c *controllers.Controllers) {
	pc := c.Pages
	p.Use(supportedLocale(http.HandlerFunc(pc.NotFound)), mw.WithPageSecurityHeaders())

	p.Get("/", pc.Home)

	p.Get("/login", pc.LoginPage)
	p.Post("/login", pc.Login)
	p.Get("/register", pc.RegisterPage)
	p.Post("/register", pc.Register)
	p.Post("/logout", pc.Logout)

	p.Route("/dashboard", func(d chi.Router) {
		d.Get("/", pc.Dashboard)

		d.Get("/customers", pc.Customers)
		d.Get("/customers/new", pc.NewCustomer)
		d.Post("/customers/new", pc.CreateCustomer)
		d.Get("/customers/{id}", pc.EditCustomer)
		d.Post("/customers/{id}", pc.UpdateCustomer)
		d.Post("/customers/{id}/delete", pc.DeleteCustomer)

		d.Get("/forms", pc.FormsBuilder)
		d.Post("/forms", pc.FormsAction)
	})

	p.NotFound(pc.NotFound)
}

// supportedLocale responde 404 cuando {locale} no es un locale soportado
// (p. ej. archivos que el pipeline deja pasar).
func supportedLocale(notFound http.Handler) mw.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !i18n.IsSupported(chi.URLParam(r, "locale")) {
				notFound.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
