// Package health implementa el chequeo de /healthz.
package health

import (
	"context"
	"time"

	dto "github.com/dropDatabas3/bizflow/internal/http/dto/health"
)

// Pinger es cualquier dependencia con Ping (store, cache).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service define el chequeo de salud.
type Service interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Deps contiene las dependencias chequeadas.
type Deps struct {
	Version string
	// Components por nombre (store, cache).
	Components map[string]Pinger
	Timeout    time.Duration
}

type service struct {
	deps Deps
}

// NewService crea el service de health.
func NewService(deps Deps) Service {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	return &service{deps: deps}
}

// Check nunca falla: un componente caído deja el estado en degraded.
func (s *service) Check(ctx context.Context) dto.HealthResponse {
	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Version: s.deps.Version, Components: map[string]string{}}
	for name, p := range s.deps.Components {
		if p == nil {
			continue
		}
		if err := p.Ping(ctx); err != nil {
			resp.Components[name] = err.Error()
			resp.Status = "degraded"
			continue
		}
		resp.Components[name] = "ok"
	}
	return resp
}
