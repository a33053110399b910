package automation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bizflow/internal/email"
	dto "github.com/dropDatabas3/bizflow/internal/http/dto/automation"
	svc "github.com/dropDatabas3/bizflow/internal/http/services/automation"
)

type failingMailer struct{}

func (failingMailer) SendWelcome(ctx context.Context, to, name string) (email.WelcomeResult, error) {
	return email.WelcomeResult{}, errors.New("smtp down")
}

func call(t *testing.T, m svc.Mailer, body string) (int, dto.WelcomeResponse) {
	t.Helper()
	c := NewController(svc.NewService(svc.Deps{Mailer: m}))
	rec := httptest.NewRecorder()
	c.Welcome(rec, httptest.NewRequest(http.MethodPost, "/api/automation/welcome-email", strings.NewReader(body)))
	var resp dto.WelcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestWelcomeLoggedWithoutSMTP(t *testing.T) {
	code, resp := call(t, email.NewWelcomeService(nil, false), `{"email":"ada@example.com","name":"Ada"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	assert.Equal(t, dto.MessageLogged, resp.Message)
}

func TestWelcomeInvalidJSON(t *testing.T) {
	code, resp := call(t, email.NewWelcomeService(nil, false), `{nope`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, resp.Success)
}

func TestWelcomeMissingEmail(t *testing.T) {
	code, resp := call(t, email.NewWelcomeService(nil, false), `{"name":"Ada"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, resp.Success)
}

func TestWelcomeSendFailure(t *testing.T) {
	code, resp := call(t, failingMailer{}, `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrorSend, resp.Error)
}
