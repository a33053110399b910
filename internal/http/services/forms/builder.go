// Package forms implementa el builder de smart forms y su persistencia.
package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	"github.com/dropDatabas3/bizflow/internal/i18n"
	"github.com/google/uuid"
)

// LabelFunc produce el label de un campo nuevo a partir de su índice (1-based).
type LabelFunc func(index int) string

// CatalogLabels usa forms.newFieldLabel del catálogo.
func CatalogLabels(c *i18n.Catalog, locale string) LabelFunc {
	return func(index int) string {
		return c.T(locale, "forms.newFieldLabel", map[string]any{"index": index})
	}
}

func defaultLabel(index int) string { return fmt.Sprintf("Field %d", index) }

// NewField crea un campo de texto opcional llamado field_<index>.
func NewField(index int, label LabelFunc) repository.FormField {
	if label == nil {
		label = defaultLabel
	}
	return repository.FormField{
		ID:    uuid.NewString(),
		Name:  fmt.Sprintf("field_%d", index),
		Label: label(index),
		Type:  repository.FieldText,
	}
}

// DefaultFields es el estado inicial del builder: un texto requerido.
func DefaultFields() []repository.FormField {
	return []repository.FormField{{
		ID:       uuid.NewString(),
		Name:     "field",
		Label:    "Text",
		Type:     repository.FieldText,
		Required: true,
	}}
}

// AddField agrega un campo nuevo al final. No muta fields.
func AddField(fields []repository.FormField, label LabelFunc) []repository.FormField {
	out := make([]repository.FormField, 0, len(fields)+1)
	out = append(out, fields...)
	return append(out, NewField(nextIndex(fields), label))
}

// nextIndex es el mayor sufijo field_<n> en uso + 1 (mínimo len+1), así
// un campo nuevo nunca repite el nombre de otro tras un RemoveField.
func nextIndex(fields []repository.FormField) int {
	next := len(fields) + 1
	for _, f := range fields {
		suffix, ok := strings.CutPrefix(f.Name, "field_")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}

// RemoveField quita el campo con id. No muta fields.
func RemoveField(fields []repository.FormField, id string) []repository.FormField {
	out := make([]repository.FormField, 0, len(fields))
	for _, f := range fields {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// FieldPatch describe cambios parciales; nil deja el valor actual.
type FieldPatch struct {
	Name     *string
	Label    *string
	Type     *repository.FieldType
	Required *bool
	Options  []string
}

// UpdateField aplica patch al campo con id. No muta fields.
func UpdateField(fields []repository.FormField, id string, patch FieldPatch) []repository.FormField {
	out := make([]repository.FormField, len(fields))
	copy(out, fields)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		if patch.Name != nil {
			out[i].Name = *patch.Name
		}
		if patch.Label != nil {
			out[i].Label = *patch.Label
		}
		if patch.Type != nil {
			out[i].Type = *patch.Type
		}
		if patch.Required != nil {
			out[i].Required = *patch.Required
		}
		if patch.Options != nil {
			out[i].Options = append([]string(nil), patch.Options...)
		}
	}
	return out
}

// Errores de validación.
var (
	ErrNameRequired   = errors.New("form name is required")
	ErrNoFields       = errors.New("form needs at least one field")
	ErrInvalidField   = errors.New("invalid form field")
	ErrDuplicateField = errors.New("duplicate form field name")
)

// Validate normaliza y valida un formulario. Devuelve los campos limpios:
// strings trimmeados, ids asignados, opciones solo en select.
func Validate(name string, fields []repository.FormField) ([]repository.FormField, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	seen := make(map[string]struct{}, len(fields))
	out := make([]repository.FormField, 0, len(fields))
	for i, f := range fields {
		f.Name = strings.TrimSpace(f.Name)
		f.Label = strings.TrimSpace(f.Label)
		f.Type = repository.FieldType(strings.ToLower(strings.TrimSpace(string(f.Type))))
		if f.ID == "" {
			f.ID = uuid.NewString()
		}
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidField, i+1)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = struct{}{}
		if !f.Type.Valid() {
			return nil, fmt.Errorf("%w: %s has unknown type %q", ErrInvalidField, f.Name, f.Type)
		}
		if f.Label == "" {
			f.Label = f.Name
		}

		if f.Type == repository.FieldSelect {
			opts := make([]string, 0, len(f.Options))
			for _, o := range f.Options {
				if o = strings.TrimSpace(o); o != "" {
					opts = append(opts, o)
				}
			}
			if len(opts) == 0 {
				return nil, fmt.Errorf("%w: select %s needs options", ErrInvalidField, f.Name)
			}
			f.Options = opts
		} else {
			f.Options = nil
		}
		out = append(out, f)
	}
	return out, nil
}

// SplitOptions parsea opciones separadas por coma.
func SplitOptions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
