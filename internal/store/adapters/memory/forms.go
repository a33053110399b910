package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

type formRepo struct{ c *Connection }

func (r *formRepo) List(ctx context.Context, ownerID string) ([]repository.SmartForm, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	var owned []memForm
	for _, mf := range r.c.forms {
		if mf.UserID == ownerID {
			owned = append(owned, mf)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].seq > owned[j].seq
	})
	out := make([]repository.SmartForm, 0, len(owned))
	for _, mf := range owned {
		out = append(out, cloneForm(mf.SmartForm))
	}
	return out, nil
}

func (r *formRepo) Get(ctx context.Context, ownerID, id string) (*repository.SmartForm, error) {
	r.c.mu.RLock()
	defer r.c.mu.RUnlock()
	mf, ok := r.c.forms[id]
	if !ok || mf.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	out := cloneForm(mf.SmartForm)
	return &out, nil
}

func (r *formRepo) Create(ctx context.Context, ownerID string, in repository.FormInput) (*repository.SmartForm, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	f := repository.SmartForm{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Fields:      in.Fields,
		UserID:      ownerID,
		CreatedAt:   r.c.now().UTC(),
	}
	f = cloneForm(f)
	r.c.forms[f.ID] = memForm{SmartForm: f, seq: r.c.nextSeq()}
	out := cloneForm(f)
	return &out, nil
}

func (r *formRepo) Delete(ctx context.Context, ownerID, id string) error {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()
	mf, ok := r.c.forms[id]
	if !ok || mf.UserID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.c.forms, id)
	return nil
}

// cloneForm copia los slices para que el caller no mute el estado interno.
func cloneForm(f repository.SmartForm) repository.SmartForm {
	fields := make([]repository.FormField, len(f.Fields))
	for i, fld := range f.Fields {
		if fld.Options != nil {
			fld.Options = append([]string(nil), fld.Options...)
		}
		fields[i] = fld
	}
	f.Fields = fields
	return f
}
