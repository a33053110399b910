// Package controllers agrupa los controllers HTTP por dominio.
package controllers

import (
	"github.com/dropDatabas3/bizflow/internal/http/controllers/auth"
	"github.com/dropDatabas3/bizflow/internal/http/controllers/automation"
	"github.com/dropDatabas3/bizflow/internal/http/controllers/customers"
	"github.com/dropDatabas3/bizflow/internal/http/controllers/forms"
	"github.com/dropDatabas3/bizflow/internal/http/controllers/health"
	"github.com/dropDatabas3/bizflow/internal/http/controllers/pages"
	"github.com/dropDatabas3/bizflow/internal/http/services"
	"github.com/dropDatabas3/bizflow/internal/http/views"
	"github.com/dropDatabas3/bizflow/internal/identity"
)

// Deps contiene lo necesario para construir los controllers.
type Deps struct {
	Services services.Services
	Views    *views.Renderer
	Cookies  identity.CookieConfig
}

// Controllers agrupa todos los controllers.
type Controllers struct {
	Auth       *auth.Controller
	Customers  *customers.Controller
	Forms      *forms.Controller
	Automation *automation.Controller
	Health     *health.Controller
	Pages      *pages.Controller
}

// New crea el agregador de controllers.
func New(d Deps) *Controllers {
	s := d.Services
	return &Controllers{
		Auth:       auth.NewController(s.Auth, d.Cookies),
		Customers:  customers.NewController(s.Customers),
		Forms:      forms.NewController(s.Forms),
		Automation: automation.NewController(s.Automation),
		Health:     health.NewController(s.Health),
		Pages: pages.NewController(pages.Deps{
			Auth:      s.Auth,
			Customers: s.Customers,
			Forms:     s.Forms,
			Dashboard: s.Dashboard,
			Views:     d.Views,
			Cookies:   d.Cookies,
		}),
	}
}
