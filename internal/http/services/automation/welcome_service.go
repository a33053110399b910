// Package automation implementa el paso "send welcome email".
package automation

import (
	"context"
	"errors"
	"strings"

	"github.com/dropDatabas3/bizflow/internal/email"
	dto "github.com/dropDatabas3/bizflow/internal/http/dto/automation"
	"github.com/dropDatabas3/bizflow/internal/metrics"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
)

// ErrMissingEmail indica que el body no trae destinatario.
var ErrMissingEmail = errors.New("email is required")

// Service define el envío de la bienvenida.
type Service interface {
	Welcome(ctx context.Context, in dto.WelcomeRequest) (dto.WelcomeResponse, error)
}

// Mailer es el subconjunto de email.WelcomeService que usa el service.
type Mailer interface {
	SendWelcome(ctx context.Context, to, name string) (email.WelcomeResult, error)
}

// Deps contiene las dependencias del service.
type Deps struct {
	Mailer Mailer
}

type service struct {
	deps Deps
}

// NewService crea el service de automatización.
func NewService(deps Deps) Service {
	return &service{deps: deps}
}

func (s *service) Welcome(ctx context.Context, in dto.WelcomeRequest) (dto.WelcomeResponse, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("automation"), logger.Op("Welcome"))

	to := strings.TrimSpace(in.Email)
	if to == "" {
		return dto.WelcomeResponse{Success: false, Error: ErrMissingEmail.Error()}, ErrMissingEmail
	}

	res, err := s.deps.Mailer.SendWelcome(ctx, to, strings.TrimSpace(in.Name))
	if err != nil {
		metrics.RecordEmail("failed")
		log.Error("welcome email failed", logger.Err(err))
		return dto.WelcomeResponse{Success: false, Error: dto.ErrorSend}, err
	}
	if res.Logged {
		metrics.RecordEmail("logged")
		return dto.WelcomeResponse{Success: true, Message: dto.MessageLogged}, nil
	}
	metrics.RecordEmail("sent")
	return dto.WelcomeResponse{Success: true, Message: dto.MessageSent}, nil
}
