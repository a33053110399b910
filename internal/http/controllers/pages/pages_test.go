package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	"github.com/dropDatabas3/bizflow/internal/http/middlewares"
	"github.com/dropDatabas3/bizflow/internal/http/services"
	"github.com/dropDatabas3/bizflow/internal/http/views"
	"github.com/dropDatabas3/bizflow/internal/i18n"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/security/password"
	"github.com/dropDatabas3/bizflow/internal/store"
	"github.com/dropDatabas3/bizflow/internal/store/adapters/memory"
)

type testEnv struct {
	handler  http.Handler
	conn     store.AdapterConnection
	provider identity.Provider
}

func newEnv(t *testing.T, conn store.AdapterConnection) *testEnv {
	t.Helper()
	provider := identity.NewLocal(identity.Deps{
		Users:          conn.Users(),
		Tokens:         conn.Tokens(),
		Secret:         []byte("test-secret-test-secret-test-secret"),
		PasswordParams: password.Fast,
	})
	s := services.New(services.Deps{Store: conn, Provider: provider})
	c := NewController(Deps{
		Auth:      s.Auth,
		Customers: s.Customers,
		Forms:     s.Forms,
		Dashboard: s.Dashboard,
		Views:     views.MustNew(i18n.MustLoad()),
	})

	r := chi.NewRouter()
	// Reemplaza al pipeline: locale del path y usuario de X-Test-User.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if seg, _ := i18n.FirstSegment(r.URL.Path); i18n.IsSupported(seg) {
				ctx = middlewares.WithLocale(ctx, seg)
			}
			if id := r.Header.Get("X-Test-User"); id != "" {
				ctx = identity.WithUser(ctx, &identity.User{ID: id, Email: id + "@example.com"})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	r.Route("/{locale}", func(p chi.Router) {
		p.Get("/", c.Home)
		p.Get("/login", c.LoginPage)
		p.Post("/login", c.Login)
		p.Get("/register", c.RegisterPage)
		p.Post("/register", c.Register)
		p.Post("/logout", c.Logout)
		p.Get("/dashboard", c.Dashboard)
		p.Get("/dashboard/customers", c.Customers)
		p.Get("/dashboard/customers/new", c.NewCustomer)
		p.Post("/dashboard/customers/new", c.CreateCustomer)
		p.Get("/dashboard/customers/{id}", c.EditCustomer)
		p.Post("/dashboard/customers/{id}", c.UpdateCustomer)
		p.Post("/dashboard/customers/{id}/delete", c.DeleteCustomer)
		p.Get("/dashboard/forms", c.FormsBuilder)
		p.Post("/dashboard/forms", c.FormsAction)
	})
	return &testEnv{handler: r, conn: conn, provider: provider}
}

func (e *testEnv) get(path, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) post(path, user string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestHomeRedirects(t *testing.T) {
	e := newEnv(t, memory.New())

	rec := e.get("/nl/", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/nl/login", rec.Header().Get("Location"))

	rec = e.get("/nl/", "u1")
	assert.Equal(t, "/nl/dashboard", rec.Header().Get("Location"))
}

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t, memory.New())
	creds := url.Values{"email": {"ada@example.com"}, "password": {"secret1"}}

	rec := e.post("/en/register", "", creds)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/login?registered=1", rec.Header().Get("Location"))
	assert.Empty(t, rec.Result().Cookies(), "el registro no inicia sesión")

	rec = e.get("/en/login?registered=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Account created. You can sign in now.")

	rec = e.post("/en/register", "", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "This email is already registered.")

	rec = e.post("/nl/login", "", url.Values{"email": {"ada@example.com"}, "password": {"wrong!!"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ongeldig e-mailadres of wachtwoord.")
	assert.Contains(t, rec.Body.String(), `value="ada@example.com"`)

	rec = e.post("/nl/login", "", creds)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/nl/dashboard", rec.Header().Get("Location"))
	names := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		names[ck.Name] = ck.Value != ""
	}
	assert.True(t, names[identity.AccessCookie])
	assert.True(t, names[identity.RefreshCookie])
}

func TestSignedInUserSkipsAuthPages(t *testing.T) {
	e := newEnv(t, memory.New())
	assert.Equal(t, "/en/dashboard", e.get("/en/login", "u1").Header().Get("Location"))
	assert.Equal(t, "/en/dashboard", e.get("/en/register", "u1").Header().Get("Location"))
}

func TestLogoutClearsCookies(t *testing.T) {
	e := newEnv(t, memory.New())
	rec := e.post("/ar/logout", "u1", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/ar/login", rec.Header().Get("Location"))
	for _, ck := range rec.Result().Cookies() {
		assert.Equal(t, -1, ck.MaxAge)
	}
}

func TestDashboard(t *testing.T) {
	conn := memory.New()
	e := newEnv(t, conn)

	rec := e.get("/en/dashboard", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/login", rec.Header().Get("Location"))

	_, err := conn.Customers().Create(context.Background(), "u1", repository.CustomerInput{
		Name: "Acme", Email: "acme@example.com", Status: repository.CustomerActive,
	})
	require.NoError(t, err)

	rec = e.get("/en/dashboard", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<strong id="total">1</strong>`)
	assert.Contains(t, rec.Body.String(), "Acme")
}

func TestMissingDatabaseNotice(t *testing.T) {
	e := newEnv(t, store.Unconfigured())

	rec := e.get("/en/dashboard", "u1")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "STORAGE_DSN")

	rec = e.post("/en/login", "", url.Values{"email": {"ada@example.com"}, "password": {"secret1"}})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "STORAGE_DSN")
}

func TestCustomerPages(t *testing.T) {
	conn := memory.New()
	e := newEnv(t, conn)
	ctx := context.Background()

	rec := e.post("/en/dashboard/customers/new", "u1", url.Values{
		"name": {"Acme"}, "email": {"acme@example.com"},
		"id": {"forged"}, "user_id": {"u2"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/dashboard/customers", rec.Header().Get("Location"))

	list, err := conn.Customers().List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEqual(t, "forged", list[0].ID)
	assert.Equal(t, "u1", list[0].UserID)
	assert.Equal(t, repository.CustomerActive, list[0].Status)

	other, err := conn.Customers().List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	id := list[0].ID
	rec = e.get("/en/dashboard/customers/"+id, "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Acme"`)

	assert.Equal(t, http.StatusNotFound, e.get("/en/dashboard/customers/"+id, "u2").Code)

	rec = e.post("/en/dashboard/customers/"+id, "u1", url.Values{"name": {""}, "email": {"acme@example.com"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required.")

	rec = e.post("/en/dashboard/customers/"+id, "u1", url.Values{"name": {"Acme BV"}, "email": {"acme@example.com"}, "status": {"inactive"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	got, err := conn.Customers().Get(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, "Acme BV", got.Name)
	assert.Equal(t, repository.CustomerInactive, got.Status)

	assert.Equal(t, http.StatusNotFound, e.post("/en/dashboard/customers/"+id+"/delete", "u2", url.Values{}).Code)
	assert.Equal(t, http.StatusSeeOther, e.post("/en/dashboard/customers/"+id+"/delete", "u1", url.Values{}).Code)
	_, err = conn.Customers().Get(ctx, "u1", id)
	assert.True(t, repository.IsNotFound(err))
}

func builderForm(action string) url.Values {
	return url.Values{
		"form_name":        {"Contact"},
		"form_description": {"Leads"},
		"field_id":         {"f1"},
		"field_name":       {"email"},
		"field_label":      {"Email"},
		"field_type":       {"email"},
		"field_options":    {""},
		"field_required":   {"f1"},
		"action":           {action},
	}
}

func TestFormsBuilder(t *testing.T) {
	conn := memory.New()
	e := newEnv(t, conn)

	rec := e.get("/en/dashboard/forms", "u1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="field_id"`)

	rec = e.post("/nl/dashboard/forms", "u1", builderForm("add"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Veld 2"`)
	assert.Contains(t, rec.Body.String(), `value="field_2"`)

	rec = e.post("/en/dashboard/forms", "u1", builderForm("remove:f1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `value="f1"`)

	noName := builderForm("save")
	noName.Set("form_name", " ")
	rec = e.post("/en/dashboard/forms", "u1", noName)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Form name is required.")

	rec = e.post("/en/dashboard/forms", "u1", builderForm("save"))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/en/dashboard/forms?saved=1", rec.Header().Get("Location"))

	saved, err := conn.Forms().List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Len(t, saved[0].Fields, 1)
	assert.True(t, saved[0].Fields[0].Required)
	assert.Equal(t, repository.FieldEmail, saved[0].Fields[0].Type)

	rec = e.get("/en/dashboard/forms?saved=1", "u1")
	assert.Contains(t, rec.Body.String(), "Form saved.")
	assert.Contains(t, rec.Body.String(), "<strong>Contact</strong>")
}
