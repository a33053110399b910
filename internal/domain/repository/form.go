package repository

import (
	"context"
	"time"
)

// FieldType es el tipo de input de un campo de formulario.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldEmail    FieldType = "email"
	FieldNumber   FieldType = "number"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
)

// FieldTypes lista los tipos soportados en orden de presentación.
var FieldTypes = []FieldType{FieldText, FieldEmail, FieldNumber, FieldTextarea, FieldSelect}

// Valid reporta si el tipo pertenece al enum.
func (t FieldType) Valid() bool {
	for _, ft := range FieldTypes {
		if ft == t {
			return true
		}
	}
	return false
}

// FormField es un campo de un SmartForm. Se persiste como JSON.
type FormField struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// SmartForm es un formulario de captura definido por un usuario.
type SmartForm struct {
	ID          string
	Name        string
	Description string
	Fields      []FormField
	UserID      string
	CreatedAt   time.Time
}

// FormInput contiene los datos de un formulario nuevo.
type FormInput struct {
	Name        string
	Description string
	Fields      []FormField
}

// FormRepository define operaciones sobre smart forms, siempre por owner.
type FormRepository interface {
	List(ctx context.Context, ownerID string) ([]SmartForm, error)
	Get(ctx context.Context, ownerID, id string) (*SmartForm, error)
	Create(ctx context.Context, ownerID string, in FormInput) (*SmartForm, error)
	Delete(ctx context.Context, ownerID, id string) error
}
