// Package store provee el Data Access Layer de BizFlow.
//
// Los adapters (postgres, memory) se registran en init() y se abren por nombre.
// Cuando el driver es postgres y no hay DSN, Open retorna una conexión
// "unconfigured" cuyos repos responden repository.ErrNoDatabase.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

// Adapter define la interfaz que cada adapter de almacenamiento implementa.
type Adapter interface {
	// Name retorna el nombre del adapter (ej: "postgres", "memory").
	Name() string

	// Connect establece conexión con el almacenamiento.
	Connect(ctx context.Context, cfg AdapterConfig) (AdapterConnection, error)
}

// AdapterConnection representa una conexión activa.
// Provee acceso a los repositorios implementados por el adapter.
type AdapterConnection interface {
	// Name retorna el nombre del adapter.
	Name() string

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close cierra la conexión.
	Close() error

	// ─── Repositorios ───

	Users() repository.UserRepository
	Tokens() repository.TokenRepository
	Customers() repository.CustomerRepository
	Forms() repository.FormRepository
}

// MigratableConnection interfaz opcional para conexiones que pueden ejecutar migraciones.
type MigratableConnection interface {
	Migrate(ctx context.Context) error
}

// PoolStater interfaz opcional para conexiones con pool (métricas).
type PoolStater interface {
	PoolStats() (acquired, idle, total int32)
}

// AdapterConfig configuración para conectar a un almacenamiento.
type AdapterConfig struct {
	// Name del adapter: "postgres", "memory"
	Name string

	// DSN connection string (para DBs)
	DSN string

	// Pool settings (para DBs)
	MaxOpenConns int
	MaxIdleConns int
}

// ─── Registry Global ───

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// RegisterAdapter registra un adapter en el registry global.
// Llamar en init() de cada adapter.
func RegisterAdapter(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := a.Name()
	if _, exists := adapters[name]; exists {
		panic(fmt.Sprintf("adapter: %q already registered", name))
	}
	adapters[name] = a
}

// GetAdapter obtiene un adapter por nombre.
func GetAdapter(name string) (Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[name]
	return a, ok
}

// ListAdapters retorna los nombres de todos los adapters registrados.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenAdapter abre una conexión usando el adapter registrado con cfg.Name.
func OpenAdapter(ctx context.Context, cfg AdapterConfig) (AdapterConnection, error) {
	a, ok := GetAdapter(cfg.Name)
	if !ok {
		return nil, fmt.Errorf("adapter: %q not registered", cfg.Name)
	}
	return a.Connect(ctx, cfg)
}

// Open resuelve la conexión según cfg.
// Driver postgres sin DSN → conexión unconfigured (no falla el arranque).
func Open(ctx context.Context, cfg AdapterConfig) (AdapterConnection, error) {
	if cfg.Name == "" {
		cfg.Name = "postgres"
	}
	if cfg.Name == "postgres" && cfg.DSN == "" {
		return Unconfigured(), nil
	}
	return OpenAdapter(ctx, cfg)
}

// IsConfigured reporta si la conexión tiene almacenamiento real detrás.
func IsConfigured(conn AdapterConnection) bool {
	return conn != nil && conn.Name() != unconfiguredName
}

// Migrate ejecuta las migraciones si la conexión las soporta.
func Migrate(ctx context.Context, conn AdapterConnection) error {
	m, ok := conn.(MigratableConnection)
	if !ok {
		return ErrNotMigratable
	}
	return m.Migrate(ctx)
}
