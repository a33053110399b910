// Package customers contiene los DTOs de la API de customers.
package customers

import (
	"time"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

// CustomerRequest es el body de create/update.
// id y user_id no forman parte del contrato: si llegan se ignoran.
type CustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Status  string `json:"status"`
}

// CustomerResponse es la representación pública de un customer.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id"`
}

// ListResponse envuelve el listado.
type ListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// FromDomain convierte un customer del repositorio.
func FromDomain(c repository.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		UserID:    c.UserID,
	}
}

// FromDomainList convierte un listado; nunca devuelve nil.
func FromDomainList(cs []repository.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromDomain(c))
	}
	return out
}
