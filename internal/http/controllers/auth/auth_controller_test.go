package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/dropDatabas3/bizflow/internal/http/dto/auth"
	"github.com/dropDatabas3/bizflow/internal/http/middlewares"
	svc "github.com/dropDatabas3/bizflow/internal/http/services/auth"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/security/password"
	"github.com/dropDatabas3/bizflow/internal/store/adapters/memory"
)

func newTestController(t *testing.T) (*Controller, identity.Provider) {
	t.Helper()
	conn := memory.New()
	p := identity.NewLocal(identity.Deps{
		Users:          conn.Users(),
		Tokens:         conn.Tokens(),
		Secret:         []byte("test-secret-test-secret-test-secret"),
		PasswordParams: password.Fast,
	})
	c := NewController(svc.NewService(svc.Deps{Provider: p}), identity.CookieConfig{MaxAge: time.Hour})
	return c, p
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestSignup(t *testing.T) {
	c, _ := newTestController(t)

	rec := post(c.Signup, `{"email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID)
	assert.Empty(t, rec.Result().Cookies(), "signup no inicia sesión")

	rec = post(c.Signup, `{"email":"ada@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMAIL_ALREADY_IN_USE", errorCode(t, rec))

	rec = post(c.Signup, `{"email":"bob@example.com","password":"123"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = post(c.Signup, `{"email":"not-an-email","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(c.Signup, `{"email":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSetsCookies(t *testing.T) {
	c, _ := newTestController(t)
	require.Equal(t, http.StatusCreated, post(c.Signup, `{"email":"ada@example.com","password":"secret1"}`).Code)

	rec := post(c.Login, `{"email":"ada@example.com","password":"wrong!!"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	rec = post(c.Login, `{"email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Positive(t, resp.ExpiresIn)

	names := map[string]string{}
	for _, ck := range rec.Result().Cookies() {
		names[ck.Name] = ck.Value
	}
	assert.Equal(t, resp.AccessToken, names[identity.AccessCookie])
	assert.Equal(t, resp.RefreshToken, names[identity.RefreshCookie])
}

func TestRefresh(t *testing.T) {
	c, p := newTestController(t)
	_, err := p.SignUp(t.Context(), "ada@example.com", "secret1")
	require.NoError(t, err)
	s, err := p.SignIn(t.Context(), "ada@example.com", "secret1")
	require.NoError(t, err)

	t.Run("invalid token gives 401 without cookies", func(t *testing.T) {
		rec := post(c.Refresh, `{"refresh_token":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "SESSION_EXPIRED", errorCode(t, rec))
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("cookie token rotates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: identity.RefreshCookie, Value: s.RefreshToken})
		rec := httptest.NewRecorder()
		c.Refresh(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEqual(t, s.RefreshToken, resp.RefreshToken)
		assert.Len(t, rec.Result().Cookies(), 2)
	})

	t.Run("rotated token is no longer valid", func(t *testing.T) {
		rec := post(c.Refresh, `{"refresh_token":"`+s.RefreshToken+`"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLogoutClearsCookies(t *testing.T) {
	c, _ := newTestController(t)
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: identity.RefreshCookie, Value: "whatever"})
	rec := httptest.NewRecorder()
	c.Logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, ck := range cookies {
		assert.Equal(t, -1, ck.MaxAge)
	}
}

func TestUser(t *testing.T) {
	c, p := newTestController(t)
	h := middlewares.Chain(http.HandlerFunc(c.User), middlewares.WithIdentity(p))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	_, err := p.SignUp(t.Context(), "ada@example.com", "secret1")
	require.NoError(t, err)
	s, err := p.SignIn(t.Context(), "ada@example.com", "secret1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")
}
