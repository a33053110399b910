package middlewares

import (
	"net/http"

	httperrors "github.com/dropDatabas3/bizflow/internal/http/errors"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
)

// WithIdentity resuelve la identidad de la API: Bearer primero, luego la
// cookie de access. Sin token o con token inválido el request sigue anónimo.
func WithIdentity(provider identity.Provider) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := identity.BearerToken(r)
			if token == "" {
				token, _ = identity.TokensFromRequest(r)
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			u, err := provider.GetUser(r.Context(), token)
			if err != nil {
				logger.From(r.Context()).Warn("identity lookup failed",
					logger.Layer("middleware"), logger.Op("WithIdentity"), logger.Err(err))
				httperrors.WriteError(w, err)
				return
			}
			if u == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := identity.WithUser(r.Context(), u)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.UserID(u.ID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser responde 401 si no hay identidad en el contexto.
func RequireUser() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity.UserFrom(r.Context()) == nil {
				httperrors.WriteError(w, httperrors.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
