package repository

import (
	"context"
	"time"
)

// CustomerStatus es el estado comercial de un customer.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

// Valid reporta si el status pertenece al enum.
func (s CustomerStatus) Valid() bool {
	return s == CustomerActive || s == CustomerInactive
}

// Customer representa un registro de cliente de un usuario.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	Status    CustomerStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string
}

// CustomerInput contiene los campos editables por el usuario.
// No incluye id ni user_id: ambos los asigna el repositorio.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Status  CustomerStatus
}

// CustomerStats agrega conteos para el dashboard.
type CustomerStats struct {
	Total  int
	Active int
}

// CustomerRepository define el contrato CRUD con filtro de ownership.
type CustomerRepository interface {
	// List retorna todos los customers del owner, ordenados por created_at DESC.
	List(ctx context.Context, ownerID string) ([]Customer, error)

	// Recent retorna los últimos limit customers del owner.
	Recent(ctx context.Context, ownerID string, limit int) ([]Customer, error)

	// Stats retorna total y activos del owner.
	Stats(ctx context.Context, ownerID string) (CustomerStats, error)

	// Get filtra por id y owner en la misma query. ErrNotFound si no hay fila.
	Get(ctx context.Context, ownerID, id string) (*Customer, error)

	// Create asigna id, created_at y updated_at; user_id = ownerID.
	Create(ctx context.Context, ownerID string, in CustomerInput) (*Customer, error)

	// Update refresca updated_at. ErrNotFound si la fila no es del owner.
	Update(ctx context.Context, ownerID, id string, in CustomerInput) (*Customer, error)

	// Delete elimina la fila del owner. ErrNotFound si no existe o es ajena.
	Delete(ctx context.Context, ownerID, id string) error
}
