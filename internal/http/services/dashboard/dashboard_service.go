// Package dashboard arma el resumen de la página principal.
package dashboard

import (
	"context"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	dto "github.com/dropDatabas3/bizflow/internal/http/dto/dashboard"
	"golang.org/x/sync/errgroup"
)

// RecentLimit es la cantidad de customers recientes del dashboard.
const RecentLimit = 5

// Service define el resumen del dashboard.
type Service interface {
	Summary(ctx context.Context, ownerID string) (dto.Summary, error)
}

// Deps contiene las dependencias del service.
type Deps struct {
	Customers repository.CustomerRepository
}

type service struct {
	deps Deps
}

// NewService crea el service de dashboard.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

// Summary consulta conteos y recientes en paralelo.
func (s *service) Summary(ctx context.Context, ownerID string) (dto.Summary, error) {
	var out dto.Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		st, err := s.deps.Customers.Stats(gctx, ownerID)
		out.Stats = st
		return err
	})
	g.Go(func() error {
		recent, err := s.deps.Customers.Recent(gctx, ownerID, RecentLimit)
		out.Recent = recent
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.Summary{}, err
	}
	return out, nil
}
