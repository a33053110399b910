package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/bizflow/internal/i18n"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/metrics"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
)

// =================================================================================
// MATCHER
// =================================================================================

// Matcher decide qué paths saltean el pipeline de sesión + locale.
// Se configura una vez al arrancar.
type Matcher struct {
	prefixes []string
	exact    map[string]struct{}
}

// NewMatcher crea un Matcher con prefijos y paths exactos excluidos.
// Los paths cuyo último segmento contiene un punto (assets) siempre se excluyen.
func NewMatcher(prefixes, exact []string) *Matcher {
	m := &Matcher{exact: make(map[string]struct{}, len(exact))}
	for _, p := range prefixes {
		if p = strings.TrimSpace(p); p != "" {
			m.prefixes = append(m.prefixes, p)
		}
	}
	for _, p := range exact {
		m.exact[p] = struct{}{}
	}
	return m
}

// DefaultMatcher excluye API, internos de build, estáticos, métricas y health.
func DefaultMatcher() *Matcher {
	return NewMatcher(
		[]string{"/api/", "/_internal/", "/static/"},
		[]string{"/api", "/metrics", "/healthz", "/readyz"},
	)
}

// Bypass reporta si path no pasa por el pipeline.
func (m *Matcher) Bypass(path string) bool {
	if _, ok := m.exact[path]; ok {
		return true
	}
	for _, p := range m.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	last := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		last = path[i+1:]
	}
	return strings.Contains(last, ".")
}

// =================================================================================
// RESPONSE
// =================================================================================

// Response es el resultado puro de un paso del pipeline.
// Status 0 significa pass-through.
type Response struct {
	Status   int
	Location string
	Locale   string
	Cookies  []*http.Cookie

	// Identidad y tokens vigentes según el paso de sesión.
	User    *identity.User
	Session *identity.Session
}

// Finished reporta si la respuesta corta el request (redirect o not-found).
func (r Response) Finished() bool { return r.Status != 0 }

// Cookie busca una cookie por nombre.
func (r Response) Cookie(name string) *http.Cookie {
	for _, c := range r.Cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// =================================================================================
// STEPS
// =================================================================================

// SessionStep valida o refresca la sesión de las cookies del request.
// Nunca falla: una sesión inválida o un provider caído producen una
// respuesta sin identidad y sin cookies.
func SessionStep(ctx context.Context, provider identity.Provider, cookies identity.CookieConfig, r *http.Request) Response {
	log := logger.From(ctx).With(logger.Layer("middleware"), logger.Op("SessionStep"))
	access, refresh := identity.TokensFromRequest(r)

	if access != "" {
		u, err := provider.GetUser(ctx, access)
		if err != nil {
			log.Warn("identity provider unavailable", logger.Err(err))
			return Response{}
		}
		if u != nil {
			return Response{User: u}
		}
	}
	if refresh == "" {
		return Response{}
	}

	s, err := provider.Refresh(ctx, refresh)
	switch {
	case errors.Is(err, identity.ErrInvalidRefreshToken):
		metrics.RecordSessionRefresh("invalid")
		log.Debug("refresh token rejected")
		return Response{}
	case err != nil:
		metrics.RecordSessionRefresh("error")
		log.Warn("session refresh failed", logger.Err(err))
		return Response{}
	}

	metrics.RecordSessionRefresh("refreshed")
	u := s.User
	return Response{
		User:    &u,
		Session: s,
		Cookies: cookies.SessionCookies(s),
	}
}

// LocaleStep decide el routing por locale a partir del primer segmento.
//   - locale soportado: pass-through y cookie de preferencia si cambió.
//   - segmento con forma de locale pero no soportado: 404.
//   - cualquier otro path: 307 al mismo path con el locale negociado.
func LocaleStep(r *http.Request) Response {
	seg, _ := i18n.FirstSegment(r.URL.Path)

	if i18n.IsSupported(seg) {
		resp := Response{Locale: seg}
		if ck, err := r.Cookie(i18n.CookieName); err != nil || ck.Value != seg {
			resp.Cookies = []*http.Cookie{localeCookie(seg)}
		}
		return resp
	}

	if looksLikeLocale(seg) {
		return Response{Status: http.StatusNotFound}
	}

	pref := ""
	if ck, err := r.Cookie(i18n.CookieName); err == nil {
		pref = ck.Value
	}
	loc := i18n.Negotiate(pref, r.Header.Get("Accept-Language"))

	target := "/" + loc
	if r.URL.Path != "/" && r.URL.Path != "" {
		target += r.URL.Path
	}
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return Response{Status: http.StatusTemporaryRedirect, Location: target, Locale: loc}
}

// looksLikeLocale reconoce "xx" o "xx-YY" (ASCII).
func looksLikeLocale(seg string) bool {
	isAlpha := func(s string) bool {
		for i := 0; i < len(s); i++ {
			c := s[i] | 0x20
			if c < 'a' || c > 'z' {
				return false
			}
		}
		return true
	}
	switch {
	case len(seg) == 2:
		return isAlpha(seg)
	case len(seg) == 5 && (seg[2] == '-' || seg[2] == '_'):
		return isAlpha(seg[:2]) && isAlpha(seg[3:])
	}
	return false
}

func localeCookie(loc string) *http.Cookie {
	return &http.Cookie{
		Name:     i18n.CookieName,
		Value:    loc,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	}
}

// Merge combina ambos pasos. La respuesta de locale manda en status,
// location y locale; las cookies de sesión se superponen por nombre
// (gana la última escritura).
func Merge(localeResp, sessionResp Response) Response {
	out := localeResp
	out.User = sessionResp.User
	out.Session = sessionResp.Session

	cookies := make([]*http.Cookie, 0, len(localeResp.Cookies)+len(sessionResp.Cookies))
	index := make(map[string]int)
	for _, c := range append(append([]*http.Cookie{}, localeResp.Cookies...), sessionResp.Cookies...) {
		if i, ok := index[c.Name]; ok {
			cookies[i] = c
			continue
		}
		index[c.Name] = len(cookies)
		cookies = append(cookies, c)
	}
	out.Cookies = cookies
	return out
}

// Apply escribe las cookies y termina el request si la respuesta es
// redirect o not-found. Si no, devuelve el request a usar downstream
// (identidad, locale y cookies refrescadas) y ok=true.
func Apply(w http.ResponseWriter, r *http.Request, resp Response, notFound http.Handler) (*http.Request, bool) {
	for _, c := range resp.Cookies {
		http.SetCookie(w, c)
	}

	switch {
	case resp.Status == http.StatusNotFound:
		if notFound == nil {
			notFound = http.NotFoundHandler()
		}
		notFound.ServeHTTP(w, r)
		return r, false
	case resp.Status != 0:
		w.Header().Set("Location", resp.Location)
		w.WriteHeader(resp.Status)
		return r, false
	}

	ctx := r.Context()
	if resp.Locale != "" {
		ctx = WithLocale(ctx, resp.Locale)
	}
	if resp.User != nil {
		ctx = identity.WithUser(ctx, resp.User)
		ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.UserID(resp.User.ID)))
	}
	out := r.Clone(ctx)
	if resp.Session != nil {
		rewriteSessionCookies(out, resp.Session)
	}
	return out, true
}

// rewriteSessionCookies reemplaza los tokens en el header Cookie para que
// los handlers vean la sesión rotada.
func rewriteSessionCookies(r *http.Request, s *identity.Session) {
	fresh := map[string]string{
		identity.AccessCookie:  s.AccessToken,
		identity.RefreshCookie: s.RefreshToken,
	}
	existing := r.Cookies()
	r.Header.Del("Cookie")
	for _, c := range existing {
		if v, ok := fresh[c.Name]; ok {
			r.AddCookie(&http.Cookie{Name: c.Name, Value: v})
			delete(fresh, c.Name)
			continue
		}
		r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	for _, name := range []string{identity.AccessCookie, identity.RefreshCookie} {
		if v, ok := fresh[name]; ok {
			r.AddCookie(&http.Cookie{Name: name, Value: v})
		}
	}
}

// =================================================================================
// MIDDLEWARE
// =================================================================================

// PipelineConfig configura WithSessionLocale.
type PipelineConfig struct {
	Provider identity.Provider
	Cookies  identity.CookieConfig
	Matcher  *Matcher
	NotFound http.Handler
}

// WithSessionLocale ejecuta sesión y locale, combina y aplica.
// Los paths del Matcher pasan directo.
func WithSessionLocale(cfg PipelineConfig) Middleware {
	if cfg.Matcher == nil {
		cfg.Matcher = DefaultMatcher()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Matcher.Bypass(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			var sessionResp Response
			if cfg.Provider != nil {
				sessionResp = SessionStep(r.Context(), cfg.Provider, cfg.Cookies, r)
			}
			localeResp := LocaleStep(r)
			merged := Merge(localeResp, sessionResp)

			decision := "pass"
			switch merged.Status {
			case http.StatusNotFound:
				decision = "not_found"
			case 0:
			default:
				decision = "redirect"
			}
			metrics.RecordLocaleDecision(decision, merged.Locale)
			if merged.Location != "" {
				logger.From(r.Context()).Debug("locale redirect",
					logger.Redirect(merged.Location), logger.Locale(merged.Locale))
			}

			if req, ok := Apply(w, r, merged, cfg.NotFound); ok {
				next.ServeHTTP(w, req)
			}
		})
	}
}
