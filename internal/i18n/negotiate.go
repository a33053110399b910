package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// CookieName es la cookie de preferencia de locale.
const CookieName = "NEXT_LOCALE"

var matcher = language.NewMatcher([]language.Tag{
	language.English, // default primero
	language.Arabic,
	language.Dutch,
})

// Negotiate elige el locale: cookie de preferencia, luego Accept-Language,
// luego Default.
func Negotiate(cookieValue, acceptLanguage string) string {
	if IsSupported(cookieValue) {
		return cookieValue
	}
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return Supported[idx]
}

// FirstSegment retorna el primer segmento del path y el resto (con "/" inicial).
func FirstSegment(path string) (segment, rest string) {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i], p[i:]
	}
	return p, ""
}
