package forms

import (
	"context"
	"errors"
	"strings"

	"github.com/dropDatabas3/bizflow/internal/audit"
	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	dto "github.com/dropDatabas3/bizflow/internal/http/dto/forms"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/notify"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
)

// NotificationKind etiqueta la notificación posterior al create.
const NotificationKind = "form.created"

// ErrNoOwner indica que falta la identidad del caller.
var ErrNoOwner = errors.New("owner identity is required")

// Service define las operaciones sobre smart forms del owner.
type Service interface {
	List(ctx context.Context, ownerID string) ([]repository.SmartForm, error)
	Get(ctx context.Context, ownerID, id string) (*repository.SmartForm, error)
	// Create persiste el form y notifica al owner (best-effort).
	Create(ctx context.Context, owner identity.User, in dto.FormRequest) (*repository.SmartForm, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Deps contiene las dependencias del service.
type Deps struct {
	Repo     repository.FormRepository
	Notifier notify.Firer
}

type service struct {
	deps Deps
}

// NewService crea el service de forms.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

func (s *service) List(ctx context.Context, ownerID string) ([]repository.SmartForm, error) {
	if ownerID == "" {
		return nil, ErrNoOwner
	}
	return s.deps.Repo.List(ctx, ownerID)
}

func (s *service) Get(ctx context.Context, ownerID, id string) (*repository.SmartForm, error) {
	if ownerID == "" {
		return nil, ErrNoOwner
	}
	return s.deps.Repo.Get(ctx, ownerID, id)
}

func (s *service) Create(ctx context.Context, owner identity.User, in dto.FormRequest) (*repository.SmartForm, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("forms"),
		logger.Op("Create"),
	)
	if owner.ID == "" {
		return nil, ErrNoOwner
	}
	fields, err := Validate(in.Name, in.ToFields())
	if err != nil {
		return nil, err
	}

	f, err := s.deps.Repo.Create(ctx, owner.ID, repository.FormInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Fields:      fields,
	})
	if err != nil {
		log.Warn("create failed", logger.Err(err))
		return nil, err
	}
	log.Info("form created", logger.FormID(f.ID), logger.Count(len(f.Fields)))
	audit.Log(ctx, audit.Event{Name: audit.FormCreated, ActorID: owner.ID, ResourceID: f.ID})

	if s.deps.Notifier != nil {
		s.deps.Notifier.Fire(ctx, NotificationKind, owner.Email, f.Name)
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return ErrNoOwner
	}
	if err := s.deps.Repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	audit.Log(ctx, audit.Event{Name: audit.FormDeleted, ActorID: ownerID, ResourceID: id})
	return nil
}

// IsValidation reporta si err es un error de validación del builder.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNameRequired) || errors.Is(err, ErrNoFields) ||
		errors.Is(err, ErrInvalidField) || errors.Is(err, ErrDuplicateField)
}
