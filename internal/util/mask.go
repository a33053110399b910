// Package util contiene helpers chicos sin dependencias del dominio.
package util

import "strings"

// MaskEmail oculta el usuario y el primer label del dominio:
// "ada.lovelace@example.com" -> "a…@e….com". Opera sobre runas.
func MaskEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	user, dom, ok := strings.Cut(s, "@")
	if !ok || user == "" {
		return MaskSecret(s)
	}

	labels := strings.Split(dom, ".")
	labels[0] = keepFirst(labels[0])
	return keepFirst(user) + "@" + strings.Join(labels, ".")
}

// MaskSecret deja visibles el primer y último carácter (tokens, ids opacos).
func MaskSecret(s string) string {
	r := []rune(s)
	switch {
	case len(r) == 0:
		return ""
	case len(r) <= 3:
		return "***"
	}
	return string(r[0]) + "…" + string(r[len(r)-1])
}

func keepFirst(s string) string {
	r := []rune(s)
	if len(r) <= 1 {
		return s
	}
	return string(r[0]) + "…"
}
