package bootstrap

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/security/password"
	"github.com/dropDatabas3/bizflow/internal/store/adapters/memory"
)

func newProvider() identity.Provider {
	conn := memory.New()
	return identity.NewLocal(identity.Deps{
		Users:          conn.Users(),
		Tokens:         conn.Tokens(),
		Secret:         []byte("test-secret-test-secret-test-secret"),
		PasswordParams: password.Fast,
	})
}

func TestCreateUserNonInteractive(t *testing.T) {
	p := newProvider()
	u, err := CreateUser(context.Background(), UserConfig{
		Provider: p, Email: "Ada@Example.com", Password: "secret1", SkipPrompt: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)

	_, err = CreateUser(context.Background(), UserConfig{
		Provider: p, Email: "ada@example.com", Password: "secret1", SkipPrompt: true,
	})
	assert.ErrorIs(t, err, identity.ErrEmailTaken)
}

func TestCreateUserSkipPromptRequiresCredentials(t *testing.T) {
	_, err := CreateUser(context.Background(), UserConfig{Provider: newProvider(), Email: "a@example.com", SkipPrompt: true})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestCreateUserPromptsEmail(t *testing.T) {
	var out bytes.Buffer
	u, err := CreateUser(context.Background(), UserConfig{
		Provider: newProvider(),
		Password: "secret1",
		In:       strings.NewReader("bob@example.com\n"),
		Out:      &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", u.Email)
	assert.Contains(t, out.String(), "Email: ")
}

func TestCreateUserPasswordNeedsTerminal(t *testing.T) {
	_, err := CreateUser(context.Background(), UserConfig{
		Provider: newProvider(),
		Email:    "bob@example.com",
		In:       strings.NewReader(""),
		Out:      &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, ErrNotATerminal)
}
