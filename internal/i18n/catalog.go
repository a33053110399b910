// Package i18n contiene los catálogos de mensajes por locale y la
// negociación de locale usada por el pipeline de páginas.
package i18n

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Locales soportados. El primero es el default.
const (
	EN = "en"
	AR = "ar"
	NL = "nl"

	Default = EN
)

// Supported lista los locales en orden de preferencia del servidor.
var Supported = []string{EN, AR, NL}

// IsSupported reporta si s es un locale soportado (case-sensitive, como la URL).
func IsSupported(s string) bool {
	for _, l := range Supported {
		if l == s {
			return true
		}
	}
	return false
}

// Dir retorna la dirección de escritura del locale.
func Dir(locale string) string {
	if locale == AR {
		return "rtl"
	}
	return "ltr"
}

//go:embed messages/*.yaml
var messagesFS embed.FS

// Catalog es un catálogo plano: locale -> "namespace.key" -> mensaje.
type Catalog struct {
	messages map[string]map[string]string
}

// Load lee los catálogos embebidos.
func Load() (*Catalog, error) {
	c := &Catalog{messages: make(map[string]map[string]string, len(Supported))}
	for _, l := range Supported {
		b, err := messagesFS.ReadFile("messages/" + l + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", l, err)
		}
		var tree map[string]any
		if err := yaml.Unmarshal(b, &tree); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", l, err)
		}
		flat := make(map[string]string)
		flatten("", tree, flat)
		c.messages[l] = flat
	}
	return c, nil
}

// MustLoad es Load que paniquea; los catálogos son embebidos.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// T traduce key en locale. Cae al locale default y luego a la key misma.
// args reemplaza placeholders {nombre}.
func (c *Catalog) T(locale, key string, args ...map[string]any) string {
	msg, ok := c.messages[locale][key]
	if !ok {
		msg, ok = c.messages[Default][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args[0])*2)
	for name, v := range args[0] {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Keys retorna las keys del locale ordenadas.
func (c *Catalog) Keys(locale string) []string {
	keys := make([]string, 0, len(c.messages[locale]))
	for k := range c.messages[locale] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
