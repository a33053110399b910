// Package migrations embebe las migraciones SQL de Postgres (formato goose).
package migrations

import "embed"

// FS contiene las migraciones en formato goose.
//
//go:embed *.sql
var FS embed.FS

// Dir es el directorio dentro de FS donde viven las migraciones.
const Dir = "."
