package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"":                         "",
		"Ada.Lovelace@Example.com": "a…@e….com",
		"a@b.co":                   "a@b.co",
		"josé@mañana.nl":           "j…@m….nl",
		"no-at-sign":               "n…n",
		"@example.com":             "@…m",
	}
	for in, want := range cases {
		assert.Equal(t, want, MaskEmail(in), in)
	}
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", MaskSecret(""))
	assert.Equal(t, "***", MaskSecret("abc"))
	assert.Equal(t, "a…z", MaskSecret("abcdefz"))
}
