package store

import (
	"context"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

const unconfiguredName = "unconfigured"

// La conexión unconfigured NO se registra: se usa explícitamente cuando
// falta el DSN. Ping reporta ErrNoDatabase para que /healthz lo muestre.

type unconfiguredConnection struct{}

// Unconfigured retorna una conexión sin almacenamiento.
func Unconfigured() AdapterConnection { return unconfiguredConnection{} }

func (unconfiguredConnection) Name() string                   { return unconfiguredName }
func (unconfiguredConnection) Ping(ctx context.Context) error { return repository.ErrNoDatabase }
func (unconfiguredConnection) Close() error                   { return nil }

// Todos los repos retornan ErrNoDatabase
func (unconfiguredConnection) Users() repository.UserRepository         { return noUsers{} }
func (unconfiguredConnection) Tokens() repository.TokenRepository       { return noTokens{} }
func (unconfiguredConnection) Customers() repository.CustomerRepository { return noCustomers{} }
func (unconfiguredConnection) Forms() repository.FormRepository         { return noForms{} }

type noUsers struct{}

func (noUsers) Create(ctx context.Context, email, passwordHash string) (*repository.User, error) {
	return nil, repository.ErrNoDatabase
}
func (noUsers) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	return nil, repository.ErrNoDatabase
}
func (noUsers) GetByID(ctx context.Context, id string) (*repository.User, error) {
	return nil, repository.ErrNoDatabase
}

type noTokens struct{}

func (noTokens) Create(ctx context.Context, in repository.CreateRefreshTokenInput) (*repository.RefreshToken, error) {
	return nil, repository.ErrNoDatabase
}
func (noTokens) GetByHash(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
	return nil, repository.ErrNoDatabase
}
func (noTokens) Revoke(ctx context.Context, id string, replacedBy *string) error {
	return repository.ErrNoDatabase
}

type noCustomers struct{}

func (noCustomers) List(ctx context.Context, ownerID string) ([]repository.Customer, error) {
	return nil, repository.ErrNoDatabase
}
func (noCustomers) Recent(ctx context.Context, ownerID string, limit int) ([]repository.Customer, error) {
	return nil, repository.ErrNoDatabase
}
func (noCustomers) Stats(ctx context.Context, ownerID string) (repository.CustomerStats, error) {
	return repository.CustomerStats{}, repository.ErrNoDatabase
}
func (noCustomers) Get(ctx context.Context, ownerID, id string) (*repository.Customer, error) {
	return nil, repository.ErrNoDatabase
}
func (noCustomers) Create(ctx context.Context, ownerID string, in repository.CustomerInput) (*repository.Customer, error) {
	return nil, repository.ErrNoDatabase
}
func (noCustomers) Update(ctx context.Context, ownerID, id string, in repository.CustomerInput) (*repository.Customer, error) {
	return nil, repository.ErrNoDatabase
}
func (noCustomers) Delete(ctx context.Context, ownerID, id string) error {
	return repository.ErrNoDatabase
}

type noForms struct{}

func (noForms) List(ctx context.Context, ownerID string) ([]repository.SmartForm, error) {
	return nil, repository.ErrNoDatabase
}
func (noForms) Get(ctx context.Context, ownerID, id string) (*repository.SmartForm, error) {
	return nil, repository.ErrNoDatabase
}
func (noForms) Create(ctx context.Context, ownerID string, in repository.FormInput) (*repository.SmartForm, error) {
	return nil, repository.ErrNoDatabase
}
func (noForms) Delete(ctx context.Context, ownerID, id string) error {
	return repository.ErrNoDatabase
}
