package automation

import (
	"context"
	"errors"
	"testing"

	"github.com/dropDatabas3/bizflow/internal/email"
	dto "github.com/dropDatabas3/bizflow/internal/http/dto/automation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct{ err error }

func (f fakeSender) Send(ctx context.Context, to, subject, html, text string) error { return f.err }

func TestWelcome(t *testing.T) {
	ctx := context.Background()

	resp, err := NewService(Deps{Mailer: email.NewWelcomeService(nil, false)}).
		Welcome(ctx, dto.WelcomeRequest{Email: "a@b.c", Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, dto.WelcomeResponse{Success: true, Message: dto.MessageLogged}, resp)

	resp, err = NewService(Deps{Mailer: email.NewWelcomeService(fakeSender{}, true)}).
		Welcome(ctx, dto.WelcomeRequest{Email: "a@b.c", Name: "A"})
	require.NoError(t, err)
	assert.Equal(t, dto.MessageSent, resp.Message)

	resp, err = NewService(Deps{Mailer: email.NewWelcomeService(fakeSender{err: errors.New("smtp down")}, true)}).
		Welcome(ctx, dto.WelcomeRequest{Email: "a@b.c", Name: "A"})
	require.Error(t, err)
	assert.Equal(t, dto.WelcomeResponse{Success: false, Error: dto.ErrorSend}, resp)

	_, err = NewService(Deps{Mailer: email.NewWelcomeService(nil, false)}).Welcome(ctx, dto.WelcomeRequest{})
	assert.ErrorIs(t, err, ErrMissingEmail)
}
