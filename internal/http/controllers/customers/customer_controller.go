// Package customers contiene el controller JSON de customers.
package customers

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/bizflow/internal/http/dto/customers"
	httperrors "github.com/dropDatabas3/bizflow/internal/http/errors"
	"github.com/dropDatabas3/bizflow/internal/http/helpers"
	svc "github.com/dropDatabas3/bizflow/internal/http/services/customers"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/go-chi/chi/v5"
)

// Controller maneja /api/customers. Requiere RequireUser.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de customers.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, svc.ErrNameRequired):
		return httperrors.ErrMissingFields.WithDetail("name").WithCause(err)
	case errors.Is(err, svc.ErrEmailRequired):
		return httperrors.ErrMissingFields.WithDetail("email").WithCause(err)
	case errors.Is(err, svc.ErrInvalidStatus):
		return httperrors.ErrInvalidFormat.WithDetail("status").WithCause(err)
	case errors.Is(err, svc.ErrNoOwner):
		return httperrors.ErrUnauthorized.WithCause(err)
	}
	return err
}

func ownerID(r *http.Request) string {
	if u := identity.UserFrom(r.Context()); u != nil {
		return u.ID
	}
	return ""
}

// List maneja GET /api/customers.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	cs, err := c.service.List(r.Context(), ownerID(r))
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.ListResponse{Customers: dto.FromDomainList(cs)})
}

// Get maneja GET /api/customers/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	cu, err := c.service.Get(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromDomain(*cu))
}

// Create maneja POST /api/customers.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	cu, err := c.service.Create(r.Context(), ownerID(r), req)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.FromDomain(*cu))
}

// Update maneja PUT /api/customers/{id}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	cu, err := c.service.Update(r.Context(), ownerID(r), chi.URLParam(r, "id"), req)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromDomain(*cu))
}

// Delete maneja DELETE /api/customers/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.NoContent(w)
}
