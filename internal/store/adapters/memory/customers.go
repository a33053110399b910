package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

type customerRepo struct{ c *Connection }

// owned retorna los customers del owner, más nuevos primero.
func (r *customerRepo) owned(ownerID string) []memCustomer {
	var out []memCustomer
	for _, mc := range r.c.customers {
		if mc.UserID == ownerID {
			out = append(out, mc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].seq > out[j].seq
	})
	return out
}

func (r *customerRepo) List(ctx context.Context, ownerID string) ([]repository.Customer, error) {
	return r.Recent(ctx, ownerID, 0)
}

func (r *customerRepo) Recent(ctx context.Context, ownerID string, limit int) ([]repository.Customer, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	owned := r.owned(ownerID)
	if limit > 0 && len(owned) > limit {
		owned = owned[:limit]
	}
	out := make([]repository.Customer, 0, len(owned))
	for _, mc := range owned {
		out = append(out, mc.Customer)
	}
	return out, nil
}

func (r *customerRepo) Stats(ctx context.Context, ownerID string) (repository.CustomerStats, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	var st repository.CustomerStats
	for _, mc := range r.c.customers {
		if mc.UserID != ownerID {
			continue
		}
		st.Total++
		if mc.Status == repository.CustomerActive {
			st.Active++
		}
	}
	return st, nil
}

func (r *customerRepo) Get(ctx context.Context, ownerID, id string) (*repository.Customer, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	mc, ok := r.c.customers[id]
	if !ok || mc.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	out := mc.Customer
	return &out, nil
}

func (r *customerRepo) Create(ctx context.Context, ownerID string, in repository.CustomerInput) (*repository.Customer, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	now := r.c.now().UTC()
	cust := repository.Customer{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    ownerID,
	}
	r.c.customers[cust.ID] = memCustomer{Customer: cust, seq: r.c.nextSeq()}
	return &cust, nil
}

func (r *customerRepo) Update(ctx context.Context, ownerID, id string, in repository.CustomerInput) (*repository.Customer, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	mc, ok := r.c.customers[id]
	if !ok || mc.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	mc.Name = in.Name
	mc.Email = in.Email
	mc.Phone = in.Phone
	mc.Company = in.Company
	mc.Status = in.Status
	mc.UpdatedAt = r.c.now().UTC()
	r.c.customers[id] = mc
	out := mc.Customer
	return &out, nil
}

func (r *customerRepo) Delete(ctx context.Context, ownerID, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	mc, ok := r.c.customers[id]
	if !ok || mc.UserID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.c.customers, id)
	return nil
}
