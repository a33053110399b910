package pages

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	dto "github.com/dropDatabas3/bizflow/internal/http/dto/forms"
	"github.com/dropDatabas3/bizflow/internal/http/services/forms"
	"github.com/dropDatabas3/bizflow/internal/http/views"
	"github.com/dropDatabas3/bizflow/internal/identity"
)

// Acciones del builder (valor del botón "action").
const (
	actionAdd    = "add"
	actionSave   = "save"
	removePrefix = "remove:"
)

func formErrorKey(err error) string {
	switch {
	case errors.Is(err, forms.ErrNameRequired):
		return "forms.nameRequired"
	case errors.Is(err, forms.ErrNoFields):
		return "forms.fieldsRequired"
	default:
		return "forms.invalidFields"
	}
}

// builderFields reconstruye los campos a partir de los inputs paralelos del form.
func builderFields(r *http.Request) []repository.FormField {
	ids := r.PostForm["field_id"]
	names := r.PostForm["field_name"]
	labels := r.PostForm["field_label"]
	types := r.PostForm["field_type"]
	options := r.PostForm["field_options"]

	required := make(map[string]bool)
	for _, id := range r.PostForm["field_required"] {
		required[id] = true
	}

	at := func(vals []string, i int) string {
		if i < len(vals) {
			return vals[i]
		}
		return ""
	}

	out := make([]repository.FormField, 0, len(ids))
	for _, id := range ids {
		out = append(out, repository.FormField{ID: id})
	}
	for i, id := range ids {
		name, label := at(names, i), at(labels, i)
		typ := repository.FieldType(at(types, i))
		req := required[id]
		out = forms.UpdateField(out, id, forms.FieldPatch{
			Name:     &name,
			Label:    &label,
			Type:     &typ,
			Required: &req,
			Options:  forms.SplitOptions(at(options, i)),
		})
	}
	return out
}

func toRequest(b views.FormsBuilder) dto.FormRequest {
	req := dto.FormRequest{Name: b.Name, Description: b.Description}
	for _, f := range b.Fields {
		req.Fields = append(req.Fields, dto.FieldDTO{
			ID:       f.ID,
			Name:     f.Name,
			Label:    f.Label,
			Type:     string(f.Type),
			Required: f.Required,
			Options:  f.Options,
		})
	}
	return req
}

// renderBuilder completa los forms existentes y renderiza.
func (c *Controller) renderBuilder(w http.ResponseWriter, r *http.Request, u *identity.User, status int, p views.Page, b views.FormsBuilder) {
	existing, err := c.deps.Forms.List(r.Context(), u.ID)
	if err != nil {
		p.Data = b
		c.fail(w, r, views.PageForms, p, err)
		return
	}
	b.Existing = existing
	p.Data = b
	c.deps.Views.Render(w, r, status, views.PageForms, p)
}

// FormsBuilder maneja GET /{locale}/dashboard/forms.
func (c *Controller) FormsBuilder(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	p := c.page(r, "forms.title", nil)
	if r.URL.Query().Get("saved") == "1" {
		p.Notice = "forms.saved"
	}
	c.renderBuilder(w, r, u, http.StatusOK, p, views.FormsBuilder{Fields: forms.DefaultFields()})
}

// FormsAction maneja POST /{locale}/dashboard/forms: add, remove:<id> o save.
func (c *Controller) FormsAction(w http.ResponseWriter, r *http.Request) {
	u, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	p := c.page(r, "forms.title", nil)
	b := views.FormsBuilder{
		Name:        r.PostFormValue("form_name"),
		Description: r.PostFormValue("form_description"),
		Fields:      builderFields(r),
	}

	action := r.PostFormValue("action")
	switch {
	case action == actionAdd:
		b.Fields = forms.AddField(b.Fields, forms.CatalogLabels(c.deps.Views.Catalog(), p.Locale))
	case strings.HasPrefix(action, removePrefix):
		b.Fields = forms.RemoveField(b.Fields, strings.TrimPrefix(action, removePrefix))
	case action == actionSave || action == "":
		_, err := c.deps.Forms.Create(r.Context(), *u, toRequest(b))
		if err == nil {
			redirect(w, r, "/dashboard/forms?saved=1")
			return
		}
		if !forms.IsValidation(err) {
			p.Data = b
			c.fail(w, r, views.PageForms, p, err)
			return
		}
		p.Error = formErrorKey(err)
		c.renderBuilder(w, r, u, http.StatusUnprocessableEntity, p, b)
		return
	}
	c.renderBuilder(w, r, u, http.StatusOK, p, b)
}
