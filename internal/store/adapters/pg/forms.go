package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

// ─── FormRepository ───

type formRepo struct{ pool *pgxpool.Pool }

const formColumns = `id::text, name, description, fields, user_id::text, created_at`

func scanForm(row pgx.Row) (*repository.SmartForm, error) {
	var (
		f   repository.SmartForm
		raw []byte
	)
	if err := row.Scan(&f.ID, &f.Name, &f.Description, &raw, &f.UserID, &f.CreatedAt); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f.Fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
	}
	return &f, nil
}

func (r *formRepo) List(ctx context.Context, ownerID string) ([]repository.SmartForm, error) {
	out := []repository.SmartForm{}
	if !validID(ownerID) {
		return out, nil
	}
	const query = `SELECT ` + formColumns + ` FROM forms WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pg: list forms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("pg: scan form: %w", err)
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (r *formRepo) Get(ctx context.Context, ownerID, id string) (*repository.SmartForm, error) {
	if !validID(id) || !validID(ownerID) {
		return nil, repository.ErrNotFound
	}
	const query = `SELECT ` + formColumns + ` FROM forms WHERE id = $1 AND user_id = $2`
	f, err := scanForm(r.pool.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pg: get form: %w", err)
	}
	return f, nil
}

func (r *formRepo) Create(ctx context.Context, ownerID string, in repository.FormInput) (*repository.SmartForm, error) {
	fields := in.Fields
	if fields == nil {
		fields = []repository.FormField{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("pg: encode fields: %w", err)
	}
	const query = `
		INSERT INTO forms (id, name, description, fields, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + formColumns
	f, err := scanForm(r.pool.QueryRow(ctx, query, uuid.NewString(), in.Name, in.Description, raw, ownerID))
	if err != nil {
		return nil, fmt.Errorf("pg: create form: %w", err)
	}
	return f, nil
}

func (r *formRepo) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) || !validID(ownerID) {
		return repository.ErrNotFound
	}
	const query = `DELETE FROM forms WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("pg: delete form: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
