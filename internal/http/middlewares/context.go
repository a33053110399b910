package middlewares

import "context"

type ctxKey string

const (
	ctxRequestIDKey ctxKey = "request_id"
	ctxLocaleKey    ctxKey = "locale"
)

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID obtiene el request ID del contexto o "".
func GetRequestID(ctx context.Context) string {
	if s, ok := ctx.Value(ctxRequestIDKey).(string); ok {
		return s
	}
	return ""
}

// WithLocale inyecta el locale decidido por el pipeline.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, ctxLocaleKey, locale)
}

// GetLocale obtiene el locale del contexto o "".
func GetLocale(ctx context.Context) string {
	if s, ok := ctx.Value(ctxLocaleKey).(string); ok {
		return s
	}
	return ""
}
