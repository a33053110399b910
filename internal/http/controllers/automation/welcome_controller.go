// Package automation contiene el controller del endpoint welcome-email.
package automation

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/bizflow/internal/http/dto/automation"
	"github.com/dropDatabas3/bizflow/internal/http/helpers"
	svc "github.com/dropDatabas3/bizflow/internal/http/services/automation"
)

// Controller maneja POST /api/automation/welcome-email.
type Controller struct {
	service svc.Service
}

// NewController crea el controller de automatización.
func NewController(service svc.Service) *Controller {
	return &Controller{service: service}
}

// Welcome responde siempre {success, message|error}.
func (c *Controller) Welcome(w http.ResponseWriter, r *http.Request) {
	var req dto.WelcomeRequest
	r.Body = http.MaxBytesReader(w, r.Body, helpers.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.WriteJSON(w, http.StatusBadRequest, dto.WelcomeResponse{Success: false, Error: "Invalid JSON body"})
		return
	}

	resp, err := c.service.Welcome(r.Context(), req)
	switch {
	case errors.Is(err, svc.ErrMissingEmail):
		helpers.WriteJSON(w, http.StatusBadRequest, resp)
	case err != nil:
		helpers.WriteJSON(w, http.StatusInternalServerError, resp)
	default:
		helpers.WriteJSON(w, http.StatusOK, resp)
	}
}
