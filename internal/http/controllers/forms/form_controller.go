// Package forms contiene el controller JSON de smart forms.
package forms

import (
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/bizflow/internal/http/dto/forms"
	httperrors "github.com/dropDatabas3/bizflow/internal/http/errors"
	"github.com/dropDatabas3/bizflow/internal/http/helpers"
	svc "github.com/dropDatabas3/bizflow/internal/http/services/forms"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/go-chi/chi/v5"
)

// Controller maneja /api/forms. Requiere RequireUser.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de forms.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

func mapError(err error) error {
	switch {
	case svc.IsValidation(err):
		return httperrors.ErrUnprocessableEntity.WithDetail(err.Error()).WithCause(err)
	case errors.Is(err, svc.ErrNoOwner):
		return httperrors.ErrUnauthorized.WithCause(err)
	}
	return err
}

func owner(r *http.Request) identity.User {
	if u := identity.UserFrom(r.Context()); u != nil {
		return *u
	}
	return identity.User{}
}

// List maneja GET /api/forms.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	fs, err := c.service.List(r.Context(), owner(r).ID)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.ListResponse{Forms: dto.FromDomainList(fs)})
}

// Get maneja GET /api/forms/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	f, err := c.service.Get(r.Context(), owner(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusOK, dto.FromDomain(*f))
}

// Create maneja POST /api/forms.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.FormRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}
	f, err := c.service.Create(r.Context(), owner(r), req)
	if err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, dto.FromDomain(*f))
}

// Delete maneja DELETE /api/forms/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), owner(r).ID, chi.URLParam(r, "id")); err != nil {
		httperrors.WriteError(w, mapError(err))
		return
	}
	helpers.NoContent(w)
}
