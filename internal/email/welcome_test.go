package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSender struct {
	to, subject, html, text string
	err                     error
}

func (c *captureSender) Send(ctx context.Context, to, subject, html, text string) error {
	c.to, c.subject, c.html, c.text = to, subject, html, text
	return c.err
}

func TestRenderWelcomeEscapesHTML(t *testing.T) {
	html, text, err := RenderWelcome(WelcomeVars{Name: "<b>Ada</b>", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Contains(t, html, "&lt;b&gt;Ada&lt;/b&gt;")
	assert.Contains(t, text, "Welcome to BizFlow, <b>Ada</b>!")
}

func TestSendWelcomeConfigured(t *testing.T) {
	s := &captureSender{}
	res, err := NewWelcomeService(s, true).SendWelcome(context.Background(), "ada@example.com", "Ada")
	require.NoError(t, err)
	assert.False(t, res.Logged)
	assert.Equal(t, "ada@example.com", s.to)
	assert.Equal(t, WelcomeSubject, s.subject)
	assert.Contains(t, s.html, "Ada")
}

func TestSendWelcomeUnconfiguredLogs(t *testing.T) {
	s := &captureSender{}
	res, err := NewWelcomeService(s, false).SendWelcome(context.Background(), "ada@example.com", "Ada")
	require.NoError(t, err)
	assert.True(t, res.Logged)
	assert.Empty(t, s.to)
}

func TestSendWelcomeFailure(t *testing.T) {
	s := &captureSender{err: errors.New("dial tcp: refused")}
	_, err := NewWelcomeService(s, true).SendWelcome(context.Background(), "ada@example.com", "Ada")
	assert.Error(t, err)

	_, err = NewWelcomeService(s, true).SendWelcome(context.Background(), "", "Ada")
	assert.ErrorIs(t, err, ErrMissingEmail)
}
