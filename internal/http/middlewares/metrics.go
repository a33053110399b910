package middlewares

import (
	"net/http"
	"time"

	"github.com/dropDatabas3/bizflow/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// WithMetrics registra latencia, conteo e inflight por ruta.
// Usa el patrón de chi cuando existe para acotar cardinalidad.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path
			metrics.Inflight(r.Method, path, 1)
			defer metrics.Inflight(r.Method, path, -1)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					path = p
				}
			}
			metrics.ObserveHTTP(r.Method, path, rec.status, time.Since(start))
		})
	}
}
