// Package pg implementa el adapter PostgreSQL del store.
// Usa pgxpool directamente; las migraciones corren con goose sobre pgx/stdlib.
package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	"github.com/dropDatabas3/bizflow/internal/store"
	migrations "github.com/dropDatabas3/bizflow/migrations/postgres"
)

func init() {
	store.RegisterAdapter(&postgresAdapter{})
}

// pgUniqueViolation es el SQLSTATE de unique_violation.
const pgUniqueViolation = "23505"

// postgresAdapter implementa store.Adapter para PostgreSQL.
type postgresAdapter struct{}

func (a *postgresAdapter) Name() string { return "postgres" }

func (a *postgresAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (store.AdapterConnection, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}

	// Configurar pool
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	} else {
		poolCfg.MinConns = 1
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}

	// Verificar conexión
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}

	return &pgConnection{pool: pool}, nil
}

// pgConnection representa una conexión activa a PostgreSQL.
type pgConnection struct {
	pool *pgxpool.Pool
}

func (c *pgConnection) Name() string { return "postgres" }

func (c *pgConnection) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

func (c *pgConnection) Close() error {
	c.pool.Close()
	return nil
}

// ─── Repositorios ───

func (c *pgConnection) Users() repository.UserRepository         { return &userRepo{pool: c.pool} }
func (c *pgConnection) Tokens() repository.TokenRepository       { return &tokenRepo{pool: c.pool} }
func (c *pgConnection) Customers() repository.CustomerRepository { return &customerRepo{pool: c.pool} }
func (c *pgConnection) Forms() repository.FormRepository         { return &formRepo{pool: c.pool} }

// PoolStats implementa store.PoolStater.
func (c *pgConnection) PoolStats() (acquired, idle, total int32) {
	st := c.pool.Stat()
	return st.AcquiredConns(), st.IdleConns(), st.TotalConns()
}

// Migrate implementa store.MigratableConnection.
func (c *pgConnection) Migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(c.pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("pg: goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, migrations.Dir); err != nil {
		return fmt.Errorf("pg: migrate: %w", err)
	}
	return nil
}

// isUniqueViolation detecta violaciones de índice único.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// validID evita round-trips con ids que no son uuid (Postgres fallaría con 22P02).
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
