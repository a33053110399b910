package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorMapsRepositorySentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{repository.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("pg: %w", repository.ErrConflict), http.StatusConflict, "CONFLICT"},
		{repository.ErrNoDatabase, http.StatusServiceUnavailable, "BACKEND_MISCONFIGURED"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{fmt.Errorf("ctl: %w", ErrMissingFields.WithDetail("name")), http.StatusBadRequest, "MISSING_FIELDS"},
	}
	for _, tc := range cases {
		got := FromError(tc.err)
		assert.Equal(t, tc.status, got.HTTPStatus, tc.err.Error())
		assert.Equal(t, tc.code, got.Code)
	}
}

func TestWriteErrorShape(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrMissingFields.WithDetail("email"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "MISSING_FIELDS", body["code"])
	assert.Equal(t, "email", body["detail"])
	assert.NotEmpty(t, body["message"])
}

func TestWithDetailDoesNotMutateBase(t *testing.T) {
	_ = ErrNotFound.WithDetail("x")
	assert.Empty(t, ErrNotFound.Detail)
}
