// Package customers implementa el CRUD de customers con ownership explícito.
package customers

import (
	"context"
	"errors"
	"strings"

	"github.com/dropDatabas3/bizflow/internal/audit"
	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	dto "github.com/dropDatabas3/bizflow/internal/http/dto/customers"
	"github.com/dropDatabas3/bizflow/internal/metrics"
	"github.com/dropDatabas3/bizflow/internal/notify"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
)

// NotificationKind etiqueta la notificación posterior al create.
const NotificationKind = "customer.created"

// Service define las operaciones sobre customers del owner.
type Service interface {
	List(ctx context.Context, ownerID string) ([]repository.Customer, error)
	Get(ctx context.Context, ownerID, id string) (*repository.Customer, error)
	Create(ctx context.Context, ownerID string, in dto.CustomerRequest) (*repository.Customer, error)
	Update(ctx context.Context, ownerID, id string, in dto.CustomerRequest) (*repository.Customer, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Deps contiene las dependencias del service.
type Deps struct {
	Repo repository.CustomerRepository
	// Notifier es opcional; sin él no se envía la bienvenida.
	Notifier notify.Firer
}

// Errores de validación (sentinel).
var (
	ErrNameRequired  = errors.New("customer name is required")
	ErrEmailRequired = errors.New("customer email is required")
	ErrInvalidStatus = errors.New("customer status must be active or inactive")
	ErrNoOwner       = errors.New("owner identity is required")
)

type service struct {
	deps Deps
}

// NewService crea el service de customers.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

// Normalize limpia y valida el input. Status vacío es active.
func Normalize(in dto.CustomerRequest) (repository.CustomerInput, error) {
	out := repository.CustomerInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Company: strings.TrimSpace(in.Company),
		Status:  repository.CustomerStatus(strings.ToLower(strings.TrimSpace(in.Status))),
	}
	if out.Status == "" {
		out.Status = repository.CustomerActive
	}
	switch {
	case out.Name == "":
		return out, ErrNameRequired
	case out.Email == "":
		return out, ErrEmailRequired
	case !out.Status.Valid():
		return out, ErrInvalidStatus
	}
	return out, nil
}

func (s *service) List(ctx context.Context, ownerID string) ([]repository.Customer, error) {
	if ownerID == "" {
		return nil, ErrNoOwner
	}
	return s.deps.Repo.List(ctx, ownerID)
}

func (s *service) Get(ctx context.Context, ownerID, id string) (*repository.Customer, error) {
	if ownerID == "" {
		return nil, ErrNoOwner
	}
	c, err := s.deps.Repo.Get(ctx, ownerID, id)
	metrics.RecordCustomerOp("get", result(err))
	return c, err
}

func (s *service) Create(ctx context.Context, ownerID string, in dto.CustomerRequest) (*repository.Customer, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("customers"),
		logger.Op("Create"),
	)
	if ownerID == "" {
		return nil, ErrNoOwner
	}
	input, err := Normalize(in)
	if err != nil {
		metrics.RecordCustomerOp("create", "invalid")
		return nil, err
	}

	c, err := s.deps.Repo.Create(ctx, ownerID, input)
	metrics.RecordCustomerOp("create", result(err))
	if err != nil {
		log.Warn("create failed", logger.Err(err))
		return nil, err
	}
	log.Info("customer created", logger.CustomerID(c.ID))
	audit.Log(ctx, audit.Event{Name: audit.CustomerCreated, ActorID: ownerID, ResourceID: c.ID})

	if s.deps.Notifier != nil {
		s.deps.Notifier.Fire(ctx, NotificationKind, c.Email, c.Name)
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, ownerID, id string, in dto.CustomerRequest) (*repository.Customer, error) {
	if ownerID == "" {
		return nil, ErrNoOwner
	}
	input, err := Normalize(in)
	if err != nil {
		metrics.RecordCustomerOp("update", "invalid")
		return nil, err
	}
	c, err := s.deps.Repo.Update(ctx, ownerID, id, input)
	metrics.RecordCustomerOp("update", result(err))
	if err == nil {
		audit.Log(ctx, audit.Event{Name: audit.CustomerUpdated, ActorID: ownerID, ResourceID: id})
	}
	return c, err
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrNoOwner
	}
	err := s.deps.Repo.Delete(ctx, ownerID, id)
	metrics.RecordCustomerOp("delete", result(err))
	if err == nil {
		logger.From(ctx).Info("customer deleted",
			logger.Layer("service"), logger.Op("Delete"), logger.CustomerID(id))
		audit.Log(ctx, audit.Event{Name: audit.CustomerDeleted, ActorID: ownerID, ResourceID: id})
	}
	return err
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case repository.IsNotFound(err):
		return "not_found"
	case repository.IsNoDatabase(err):
		return "no_database"
	default:
		return "error"
	}
}
