// Package services es el composition root de los services HTTP.
// Cada dominio vive en services/{dominio} con su Deps y su NewService.
package services

import (
	"github.com/dropDatabas3/bizflow/internal/email"
	"github.com/dropDatabas3/bizflow/internal/http/services/auth"
	"github.com/dropDatabas3/bizflow/internal/http/services/automation"
	"github.com/dropDatabas3/bizflow/internal/http/services/customers"
	"github.com/dropDatabas3/bizflow/internal/http/services/dashboard"
	"github.com/dropDatabas3/bizflow/internal/http/services/forms"
	"github.com/dropDatabas3/bizflow/internal/http/services/health"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/notify"
	"github.com/dropDatabas3/bizflow/internal/store"
)

// Deps contiene las dependencias base para crear los services.
type Deps struct {
	Store    store.AdapterConnection
	Provider identity.Provider
	Notifier notify.Firer
	Mailer   *email.WelcomeService
	Health   health.Deps
}

// Services agrupa todos los services por dominio.
type Services struct {
	Auth       auth.Service
	Customers  customers.Service
	Forms      forms.Service
	Dashboard  dashboard.Service
	Automation automation.Service
	Health     health.Service
}

// New construye todos los services.
func New(d Deps) Services {
	return Services{
		Auth:       auth.NewService(auth.Deps{Provider: d.Provider}),
		Customers:  customers.NewService(customers.Deps{Repo: d.Store.Customers(), Notifier: d.Notifier}),
		Forms:      forms.NewService(forms.Deps{Repo: d.Store.Forms(), Notifier: d.Notifier}),
		Dashboard:  dashboard.NewService(dashboard.Deps{Customers: d.Store.Customers()}),
		Automation: automation.NewService(automation.Deps{Mailer: d.Mailer}),
		Health:     health.NewService(d.Health),
	}
}
