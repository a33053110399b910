// Package errors define AppError y su serialización JSON {code, message, detail?}.
package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dropDatabas3/bizflow/internal/domain/repository"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteError escribe la respuesta HTTP para err.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	})
}

// FromError convierte err en AppError. Los sentinels de repository se
// mapean a su status; cualquier otro error es 500 conservando la causa.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	switch {
	case repository.IsNotFound(err):
		return ErrNotFound.WithCause(err)
	case repository.IsConflict(err):
		return ErrConflict.WithCause(err)
	case repository.IsNoDatabase(err):
		return ErrBackendMisconfigured.WithCause(err)
	case stderrors.Is(err, repository.ErrInvalidInput):
		return ErrUnprocessableEntity.WithCause(err)
	}
	return ErrInternalServerError.WithCause(err)
}
