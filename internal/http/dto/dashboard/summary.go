// Package dashboard contiene el DTO del resumen del dashboard.
package dashboard

import "github.com/dropDatabas3/bizflow/internal/domain/repository"

// Summary agrega los datos de la página principal.
type Summary struct {
	Stats  repository.CustomerStats
	Recent []repository.Customer
}
