package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dropDatabas3/bizflow/internal/audit"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
	"github.com/dropDatabas3/bizflow/internal/security/password"
	"github.com/dropDatabas3/bizflow/internal/store/adapters/memory"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	conn := memory.New()
	return NewService(Deps{Provider: identity.NewLocal(identity.Deps{
		Users:          conn.Users(),
		Tokens:         conn.Tokens(),
		Secret:         []byte("test-secret-test-secret-test-secret"),
		PasswordParams: password.Fast,
	})})
}

func auditEvents(logs *observer.ObservedLogs) []string {
	var out []string
	for _, e := range logs.FilterLoggerName("audit").All() {
		if v, ok := e.ContextMap()["event"].(string); ok {
			out = append(out, v)
		}
	}
	return out
}

func TestSessionLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core))
	s := newTestService(t)

	u, err := s.Register(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)

	_, err = s.Register(ctx, "ada@example.com", "secret1")
	assert.ErrorIs(t, err, identity.ErrEmailTaken)

	sess, err := s.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.User.ID)

	cur, err := s.CurrentUser(ctx, sess.AccessToken)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)

	rotated, err := s.Refresh(ctx, sess.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, sess.RefreshToken, rotated.RefreshToken)

	s.Logout(ctx, rotated.RefreshToken)
	_, err = s.Refresh(ctx, rotated.RefreshToken)
	assert.ErrorIs(t, err, identity.ErrInvalidRefreshToken)

	assert.Equal(t, []string{audit.UserRegistered, audit.UserSignedIn, audit.UserSignedOut}, auditEvents(logs))
}

func TestCurrentUserWithoutToken(t *testing.T) {
	u, err := newTestService(t).CurrentUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestLoginInvalidCredentials(t *testing.T) {
	s := newTestService(t)
	_, err := s.Login(context.Background(), "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}
