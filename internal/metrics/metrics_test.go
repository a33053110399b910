package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"":  "/",
		"/": "/",
		"/en/dashboard/customers/3f2b8c1e-5d4a-4e2b-9c1d-0a1b2c3d4e5f": "/en/dashboard/customers/:param",
		"/api/forms/42?x=1": "/api/forms/:param",
		"/api/customers":    "/api/customers",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePath(in), in)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := Register(Config{Registry: reg, PoolStats: func() (PoolStat, bool) { return PoolStat{Total: 3}, true }})
	require.NoError(t, err)
	require.NotNil(t, h)

	_, err = Register(Config{Registry: reg})
	require.NoError(t, err)

	RecordLocaleDecision("redirect", "en")
	RecordNotification("welcome_email", "ok")

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["bizflow_locale_decisions_total"])
	assert.True(t, names["pg_pool_total"])
}
