package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

// ─── CustomerRepository ───

type customerRepo struct{ pool *pgxpool.Pool }

const customerColumns = `id::text, name, email, phone, company, status, created_at, updated_at, user_id::text`

func scanCustomer(row pgx.Row) (*repository.Customer, error) {
	var c repository.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Status,
		&c.CreatedAt, &c.UpdatedAt, &c.UserID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context, ownerID string) ([]repository.Customer, error) {
	if !validID(ownerID) {
		return []repository.Customer{}, nil
	}
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1 ORDER BY created_at DESC`
	return r.query(ctx, query, ownerID)
}

func (r *customerRepo) Recent(ctx context.Context, ownerID string, limit int) ([]repository.Customer, error) {
	if !validID(ownerID) {
		return []repository.Customer{}, nil
	}
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	return r.query(ctx, query, ownerID, limit)
}

func (r *customerRepo) query(ctx context.Context, query string, args ...any) ([]repository.Customer, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pg: list customers: %w", err)
	}
	defer rows.Close()

	out := []repository.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("pg: scan customer: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *customerRepo) Stats(ctx context.Context, ownerID string) (repository.CustomerStats, error) {
	var st repository.CustomerStats
	if !validID(ownerID) {
		return st, nil
	}
	const query = `
		SELECT count(*), count(*) FILTER (WHERE status = 'active')
		FROM customers WHERE user_id = $1
	`
	if err := r.pool.QueryRow(ctx, query, ownerID).Scan(&st.Total, &st.Active); err != nil {
		return st, fmt.Errorf("pg: customer stats: %w", err)
	}
	return st, nil
}

func (r *customerRepo) Get(ctx context.Context, ownerID, id string) (*repository.Customer, error) {
	if !validID(id) || !validID(ownerID) {
		return nil, repository.ErrNotFound
	}
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND user_id = $2`
	c, err := scanCustomer(r.pool.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: get customer: %w", err)
	}
	return c, nil
}

func (r *customerRepo) Create(ctx context.Context, ownerID string, in repository.CustomerInput) (*repository.Customer, error) {
	const query = `
		INSERT INTO customers (id, name, email, phone, company, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + customerColumns
	c, err := scanCustomer(r.pool.QueryRow(ctx, query,
		uuid.NewString(), in.Name, in.Email, in.Phone, in.Company, string(in.Status), ownerID,
	))
	if err != nil {
		return nil, fmt.Errorf("pg: create customer: %w", err)
	}
	return c, nil
}

func (r *customerRepo) Update(ctx context.Context, ownerID, id string, in repository.CustomerInput) (*repository.Customer, error) {
	if !validID(id) || !validID(ownerID) {
		return nil, repository.ErrNotFound
	}
	const query = `
		UPDATE customers
		SET name = $3, email = $4, phone = $5, company = $6, status = $7, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + customerColumns
	c, err := scanCustomer(r.pool.QueryRow(ctx, query,
		id, ownerID, in.Name, in.Email, in.Phone, in.Company, string(in.Status),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: update customer: %w", err)
	}
	return c, nil
}

func (r *customerRepo) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) || !validID(ownerID) {
		return repository.ErrNotFound
	}
	const query = `DELETE FROM customers WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("pg: delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
