// Package audit emite eventos de negocio (altas, bajas, sesiones) como
// logs estructurados bajo el logger "audit".
package audit

import (
	"context"
	"time"

	"github.com/dropDatabas3/bizflow/internal/observability/logger"
)

// Eventos conocidos.
const (
	UserRegistered  = "user.registered"
	UserSignedIn    = "user.signed_in"
	UserSignedOut   = "user.signed_out"
	CustomerCreated = "customer.created"
	CustomerUpdated = "customer.updated"
	CustomerDeleted = "customer.deleted"
	FormCreated     = "form.created"
	FormDeleted     = "form.deleted"
)

// Event describe quién hizo qué sobre qué recurso.
type Event struct {
	Name       string
	ActorID    string
	ResourceID string
}

var now = time.Now

// Log escribe el evento en el logger del contexto.
func Log(ctx context.Context, e Event, extra ...logger.Field) {
	fields := make([]logger.Field, 0, 4+len(extra))
	fields = append(fields,
		logger.String("event", e.Name),
		logger.String("ts", now().UTC().Format(time.RFC3339Nano)),
	)
	if e.ActorID != "" {
		fields = append(fields, logger.String("actor_id", e.ActorID))
	}
	if e.ResourceID != "" {
		fields = append(fields, logger.String("resource_id", e.ResourceID))
	}
	fields = append(fields, extra...)
	logger.From(ctx).Named("audit").Info("audit", fields...)
}
