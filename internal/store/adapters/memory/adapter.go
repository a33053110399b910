// Package memory implementa un adapter en memoria del store.
// Se usa en desarrollo local y en tests; los datos se pierden al reiniciar.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	"github.com/dropDatabas3/bizflow/internal/store"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	return New(), nil
}

// Connection guarda todas las tablas detrás de un único mutex.
type Connection struct {
	mu  sync.RWMutex
	now func() time.Time

	users     map[string]repository.User
	tokens    map[string]repository.RefreshToken
	customers map[string]memCustomer
	forms     map[string]memForm
	seq       int64
}

// memCustomer agrega el orden de inserción para desempatar created_at.
type memCustomer struct {
	repository.Customer
	seq int64
}

type memForm struct {
	repository.SmartForm
	seq int64
}

// New crea una conexión vacía.
func New() *Connection {
	return &Connection{
		now:       time.Now,
		users:     make(map[string]repository.User),
		tokens:    make(map[string]repository.RefreshToken),
		customers: make(map[string]memCustomer),
		forms:     make(map[string]memForm),
	}
}

// WithClock reemplaza el reloj (tests).
func (c *Connection) WithClock(now func() time.Time) *Connection {
	c.now = now
	return c
}

func (c *Connection) Name() string                   { return "memory" }
func (c *Connection) Ping(ctx context.Context) error { return nil }
func (c *Connection) Close() error                   { return nil }

func (c *Connection) Users() repository.UserRepository         { return &userRepo{c} }
func (c *Connection) Tokens() repository.TokenRepository       { return &tokenRepo{c} }
func (c *Connection) Customers() repository.CustomerRepository { return &customerRepo{c} }
func (c *Connection) Forms() repository.FormRepository         { return &formRepo{c} }

func (c *Connection) nextSeq() int64 {
	c.seq++
	return c.seq
}
