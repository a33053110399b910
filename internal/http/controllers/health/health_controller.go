// Package health contiene los controllers de /healthz y /readyz.
package health

import (
	"net/http"
	"sort"
	"strings"

	httperrors "github.com/dropDatabas3/bizflow/internal/http/errors"
	"github.com/dropDatabas3/bizflow/internal/http/helpers"
	svc "github.com/dropDatabas3/bizflow/internal/http/services/health"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
)

// Controller maneja las rutas de health check.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de health.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Healthz responde 200 aun en degraded: el proceso está vivo.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := c.service.Check(r.Context())
	if resp.Version != "" {
		w.Header().Set("X-Service-Version", resp.Version)
	}
	logger.From(r.Context()).Debug("health check completed",
		logger.Layer("controller"), logger.String("status", resp.Status))
	helpers.WriteJSON(w, http.StatusOK, resp)
}

// Readyz responde 503 si algún componente no responde al ping.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	resp := c.service.Check(r.Context())
	if resp.Version != "" {
		w.Header().Set("X-Service-Version", resp.Version)
	}
	if resp.Status == "ok" {
		helpers.WriteJSON(w, http.StatusOK, resp)
		return
	}

	down := make([]string, 0, len(resp.Components))
	for name, st := range resp.Components {
		if st != "ok" {
			down = append(down, name)
		}
	}
	sort.Strings(down)
	logger.From(r.Context()).Warn("not ready",
		logger.Layer("controller"), logger.String("down", strings.Join(down, ",")))
	httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail(strings.Join(down, ", ")))
}
