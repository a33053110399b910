package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("STORAGE_DSN", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SMTP_USER", "")

	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "postgres", c.Storage.Driver)
	assert.Equal(t, "", c.Storage.DSN)
	assert.Equal(t, time.Hour, c.AccessTTL())
	assert.Equal(t, 30*24*time.Hour, c.RefreshTTL())
	assert.Equal(t, DevJWTSecret, c.JWT.Secret)
	assert.Equal(t, 587, c.SMTP.Port)
	assert.Equal(t, "noreply@bizflow.app", c.SMTP.From)
	assert.False(t, c.SMTPConfigured())
	assert.Equal(t, c.Server.BaseURL, c.NotifyBaseURL())
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  addr: ":9000"
storage:
  driver: memory
jwt:
  access_ttl: 15m
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Setenv("SERVER_ADDR", ":9100")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASS", "pw")
	t.Setenv("DATABASE_URL", "postgres://from-database-url")
	t.Setenv("STORAGE_DSN", "")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9100", c.Server.Addr)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, 15*time.Minute, c.AccessTTL())
	assert.Equal(t, "postgres://from-database-url", c.Storage.DSN)
	assert.True(t, c.SMTPConfigured())
	assert.Equal(t, "pw", c.SMTP.Password)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("JWT_ACCESS_TTL", "soon")
	_, err = Load("")
	assert.Error(t, err)
}

func TestProdRequiresStrongSecret(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	c, err := Load("")
	require.NoError(t, err)
	assert.True(t, c.IsProd())
}

func TestTrustedProxiesFromEnv(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.5")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.5"}, c.Server.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "proxy.internal")
	_, err = Load("")
	assert.Error(t, err)
}
