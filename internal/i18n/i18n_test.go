package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogsHaveSameKeys(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	en := c.Keys(EN)
	require.NotEmpty(t, en)
	for _, l := range []string{AR, NL} {
		assert.Equal(t, en, c.Keys(l), "locale %s", l)
	}
}

func TestT(t *testing.T) {
	c := MustLoad()

	assert.Equal(t, "Customers", c.T(EN, "common.customers"))
	assert.Equal(t, "Klanten", c.T(NL, "common.customers"))
	assert.Equal(t, "Field 3", c.T(EN, "forms.newFieldLabel", map[string]any{"index": 3}))
	assert.Equal(t, "Customers", c.T("fr", "common.customers"))
	assert.Equal(t, "missing.key", c.T(EN, "missing.key"))
}

func TestNegotiate(t *testing.T) {
	cases := []struct {
		cookie, accept, want string
	}{
		{"", "", EN},
		{"nl", "ar", NL},
		{"fr", "", EN},
		{"", "ar-EG,ar;q=0.9,en;q=0.5", AR},
		{"", "nl-BE", NL},
		{"", "de-DE,fr;q=0.8", EN},
		{"", "not a header;;;", EN},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Negotiate(tc.cookie, tc.accept), "%q %q", tc.cookie, tc.accept)
	}
}

func TestDirAndSupport(t *testing.T) {
	assert.Equal(t, "rtl", Dir(AR))
	assert.Equal(t, "ltr", Dir(EN))
	assert.True(t, IsSupported("nl"))
	assert.False(t, IsSupported("NL"))
	assert.False(t, IsSupported(""))
}

func TestFirstSegment(t *testing.T) {
	seg, rest := FirstSegment("/en/dashboard/customers")
	assert.Equal(t, "en", seg)
	assert.Equal(t, "/dashboard/customers", rest)

	seg, rest = FirstSegment("/")
	assert.Equal(t, "", seg)
	assert.Equal(t, "", rest)

	seg, rest = FirstSegment("/nl")
	assert.Equal(t, "nl", seg)
	assert.Equal(t, "", rest)
}
