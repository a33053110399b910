// Package forms contiene los DTOs de la API de smart forms.
package forms

import (
	"time"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

// FieldDTO es un campo tal como viaja por la API.
type FieldDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// FormRequest es el body de create.
type FormRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Fields      []FieldDTO `json:"fields"`
}

// FormResponse es la representación pública de un smart form.
type FormResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Fields      []FieldDTO `json:"fields"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ListResponse envuelve el listado.
type ListResponse struct {
	Forms []FormResponse `json:"forms"`
}

// ToFields convierte los campos del request al tipo de dominio.
func (r FormRequest) ToFields() []repository.FormField {
	out := make([]repository.FormField, 0, len(r.Fields))
	for _, f := range r.Fields {
		out = append(out, repository.FormField{
			ID:       f.ID,
			Name:     f.Name,
			Label:    f.Label,
			Type:     repository.FieldType(f.Type),
			Required: f.Required,
			Options:  f.Options,
		})
	}
	return out
}

// FromDomain convierte un form del repositorio.
func FromDomain(f repository.SmartForm) FormResponse {
	fields := make([]FieldDTO, 0, len(f.Fields))
	for _, fd := range f.Fields {
		fields = append(fields, FieldDTO{
			ID:       fd.ID,
			Name:     fd.Name,
			Label:    fd.Label,
			Type:     string(fd.Type),
			Required: fd.Required,
			Options:  fd.Options,
		})
	}
	return FormResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Fields:      fields,
		UserID:      f.UserID,
		CreatedAt:   f.CreatedAt,
	}
}

// FromDomainList convierte un listado; nunca devuelve nil.
func FromDomainList(fs []repository.SmartForm) []FormResponse {
	out := make([]FormResponse, 0, len(fs))
	for _, f := range fs {
		out = append(out, FromDomain(f))
	}
	return out
}
