package identity

import (
	"net/http"
	"strings"
	"time"
)

// Nombres de las cookies de sesión.
const (
	AccessCookie  = "bf-access-token"
	RefreshCookie = "bf-refresh-token"
)

// CookieConfig controla atributos de las cookies de sesión.
type CookieConfig struct {
	Domain   string
	SameSite string
	Secure   bool
	// MaxAge aplica a ambas cookies (TTL del refresh token).
	MaxAge time.Duration
}

func ParseSameSite(s string) http.SameSite {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (c CookieConfig) build(name, value string) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: ParseSameSite(c.SameSite),
	}
	if strings.TrimSpace(c.Domain) != "" {
		ck.Domain = c.Domain
	}
	if c.MaxAge > 0 {
		ck.MaxAge = int(c.MaxAge.Seconds())
	}
	return ck
}

// SessionCookies retorna access + refresh listos para Set-Cookie.
func (c CookieConfig) SessionCookies(s *Session) []*http.Cookie {
	return []*http.Cookie{
		c.build(AccessCookie, s.AccessToken),
		c.build(RefreshCookie, s.RefreshToken),
	}
}

// ClearCookies retorna cookies de borrado (MaxAge -1).
func (c CookieConfig) ClearCookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, 2)
	for _, name := range []string{AccessCookie, RefreshCookie} {
		ck := c.build(name, "")
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0).UTC()
		out = append(out, ck)
	}
	return out
}

// TokensFromRequest lee ambos tokens de las cookies.
func TokensFromRequest(r *http.Request) (access, refresh string) {
	if ck, err := r.Cookie(AccessCookie); err == nil {
		access = ck.Value
	}
	if ck, err := r.Cookie(RefreshCookie); err == nil {
		refresh = ck.Value
	}
	return access, refresh
}

// BearerToken extrae el token de "Authorization: Bearer ...".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
