package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	"github.com/dropDatabas3/bizflow/internal/http/dto/dashboard"
	"github.com/dropDatabas3/bizflow/internal/i18n"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, name string, p Page) string {
	t.Helper()
	r, err := New(i18n.MustLoad())
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	r.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, name, p)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestArabicRendersRTL(t *testing.T) {
	body := render(t, PageLogin, Page{Locale: i18n.AR, Path: "/login", Data: AuthForm{}})
	assert.Contains(t, body, `dir="rtl"`)
	assert.Contains(t, body, `lang="ar"`)
	assert.Contains(t, body, `href="/nl/login"`)
}

func TestMissingEnvMessage(t *testing.T) {
	body := render(t, PageLogin, Page{Locale: i18n.EN, MissingEnv: true, Data: AuthForm{}})
	assert.Contains(t, body, "The backend is not configured")
	assert.Contains(t, body, `dir="ltr"`)
}

func TestAllPagesRender(t *testing.T) {
	user := &identity.User{ID: "u1", Email: "ana@example.com"}
	customer := repository.Customer{ID: "c1", Name: "Ana <script>", Email: "a@b.c", Status: repository.CustomerActive}
	cases := map[string]any{
		PageLogin:        AuthForm{Email: "x@y.z"},
		PageRegister:     AuthForm{},
		PageDashboard:    dashboard.Summary{Stats: repository.CustomerStats{Total: 1, Active: 1}, Recent: []repository.Customer{customer}},
		PageCustomers:    []repository.Customer{customer},
		PageCustomerForm: CustomerForm{ID: "c1", Name: "Ana", Status: "inactive"},
		PageForms: FormsBuilder{
			Fields: []repository.FormField{
				{ID: "f1", Name: "plan", Label: "Plan", Type: repository.FieldSelect, Options: []string{"a", "b"}},
			},
			Existing: []repository.SmartForm{{ID: "s1", Name: "Leads"}},
		},
		PageNotFound: nil,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			body := render(t, name, Page{Locale: i18n.NL, User: user, Path: "/dashboard", Data: data})
			assert.Contains(t, body, "ana@example.com")
			assert.NotContains(t, body, "<script>")
		})
	}
}
