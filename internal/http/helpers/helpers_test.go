package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	var v struct {
		Email string `json:"email"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","extra":1}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	assert.True(t, ReadJSON(w, r, &v))
	assert.Equal(t, "a@b.c", v.Email)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	w = httptest.NewRecorder()
	assert.False(t, ReadJSON(w, r, &v))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_JSON")

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "text/plain")
	w = httptest.NewRecorder()
	assert.False(t, ReadJSON(w, r, &v))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientIPIgnoresForwardingFromUntrustedPeer(t *testing.T) {
	SetTrustedProxies(nil)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:1234"
	assert.Equal(t, "203.0.113.7", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "1.2.3.4")
	r.Header.Set("X-Real-IP", "5.6.7.8")
	assert.Equal(t, "203.0.113.7", ClientIP(r), "headers from a direct client are ignored")
}

func TestClientIPBehindTrustedProxy(t *testing.T) {
	proxies, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.168.1.5 "})
	require.NoError(t, err)
	SetTrustedProxies(proxies)
	t.Cleanup(func() { SetTrustedProxies(nil) })

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", ClientIP(r))

	// el cliente puede inventar hops a la izquierda; cuenta el último no confiable
	r.Header.Set("X-Forwarded-For", "9.9.9.9, 1.2.3.4, 192.168.1.5")
	assert.Equal(t, "1.2.3.4", ClientIP(r))

	r.Header.Set("X-Forwarded-For", "garbage, 10.0.0.2")
	assert.Equal(t, "10.0.0.1", ClientIP(r))

	r.Header.Del("X-Forwarded-For")
	r.Header.Set("X-Real-IP", "5.6.7.8")
	assert.Equal(t, "5.6.7.8", ClientIP(r))
}

func TestParseTrustedProxiesRejectsInvalid(t *testing.T) {
	_, err := ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"not-an-ip"})
	assert.Error(t, err)
}
