package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWelcomeEmailPostsPayload(t *testing.T) {
	var got welcomeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, WelcomePath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	require.NoError(t, c.WelcomeEmail(context.Background(), "ana@example.com", "Ana"))
	assert.Equal(t, welcomeRequest{Email: "ana@example.com", Name: "Ana"}, got)
}

func TestWelcomeEmailNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).WelcomeEmail(context.Background(), "a@b.c", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

type notifierFunc func(ctx context.Context, email, name string) error

func (f notifierFunc) WelcomeEmail(ctx context.Context, email, name string) error {
	return f(ctx, email, name)
}

func TestFireSurvivesCanceledRequestContext(t *testing.T) {
	done := make(chan error, 1)
	d := NewDispatcher(notifierFunc(func(ctx context.Context, email, name string) error {
		return ctx.Err()
	}), time.Second).OnDone(func(err error) { done <- err })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Fire(ctx, "customer.created", "a@b.c", "A")

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("notification never ran")
	}
}

func TestFireSwallowsErrors(t *testing.T) {
	done := make(chan error, 1)
	d := NewDispatcher(notifierFunc(func(ctx context.Context, email, name string) error {
		return errors.New("boom")
	}), time.Second).OnDone(func(err error) { done <- err })

	d.Fire(context.Background(), "form.created", "a@b.c", "A")
	assert.EqualError(t, <-done, "boom")
}

func TestFireWithoutEmailIsNoop(t *testing.T) {
	called := false
	d := NewDispatcher(notifierFunc(func(ctx context.Context, email, name string) error {
		called = true
		return nil
	}), time.Second)
	d.Fire(context.Background(), "x", "  ", "A")
	var nilDispatcher *Dispatcher
	nilDispatcher.Fire(context.Background(), "x", "a@b.c", "A")
	time.Sleep(10 * time.Millisecond)
	assert.False(t, called)
}
