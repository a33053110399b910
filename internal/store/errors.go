package store

import "errors"

// Errores comunes del DAL.
var (
	// ErrNotMigratable indica que el adapter no soporta migraciones.
	ErrNotMigratable = errors.New("store: adapter does not support migrations")
)
