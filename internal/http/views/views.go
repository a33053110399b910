// Package views renderiza las páginas HTML localizadas (html/template embebido).
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	"github.com/dropDatabas3/bizflow/internal/i18n"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Nombres de página.
const (
	PageLogin        = "login"
	PageRegister     = "register"
	PageDashboard    = "dashboard"
	PageCustomers    = "customers"
	PageCustomerForm = "customer_form"
	PageForms        = "forms"
	PageNotFound     = "notfound"
)

var pageNames = []string{PageLogin, PageRegister, PageDashboard, PageCustomers, PageCustomerForm, PageForms, PageNotFound}

// Page es el modelo común de todas las páginas.
type Page struct {
	Locale string
	Dir    string
	// Title es una key del catálogo.
	Title string
	User  *identity.User
	// Path es la ruta sin prefijo de locale (para el selector de idioma).
	Path string
	// Error y Notice son keys del catálogo (o texto literal).
	Error      string
	Notice     string
	MissingEnv bool
	Data       any
}

// AuthForm repuebla los formularios de login/registro.
type AuthForm struct {
	Email string
}

// CustomerForm repuebla el formulario de customer.
type CustomerForm struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Company string
	Status  string
}

// FormsBuilder es el estado del builder más los forms existentes.
type FormsBuilder struct {
	Name        string
	Description string
	Fields      []repository.FormField
	Existing    []repository.SmartForm
}

// Renderer mantiene los templates parseados por página.
type Renderer struct {
	catalog *i18n.Catalog
	pages   map[string]*template.Template
}

// New parsea layout + cada página.
func New(catalog *i18n.Catalog) (*Renderer, error) {
	funcs := template.FuncMap{
		"t":       func(locale, key string) string { return catalog.T(locale, key) },
		"locales": func() []string { return i18n.Supported },
		"localePath": func(locale, path string) string {
			if path == "" || path == "/" {
				return "/" + locale
			}
			return "/" + locale + path
		},
		"fieldTypes": func() []repository.FieldType { return repository.FieldTypes },
		"join":       strings.Join,
	}

	r := &Renderer{catalog: catalog, pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustNew es New que paniquea; los templates son embebidos.
func MustNew(catalog *i18n.Catalog) *Renderer {
	r, err := New(catalog)
	if err != nil {
		panic(err)
	}
	return r
}

// Catalog retorna el catálogo usado por los templates.
func (r *Renderer) Catalog() *i18n.Catalog { return r.catalog }

// Render escribe la página con status. Completa Dir a partir del locale.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, p Page) {
	t, ok := r.pages[name]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	if p.Locale == "" {
		p.Locale = i18n.Default
	}
	p.Dir = i18n.Dir(p.Locale)

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		logger.From(req.Context()).Error("template render failed",
			logger.Component("views"), logger.String("page", name), logger.Err(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
