// Package health contiene el DTO de /healthz.
package health

// HealthResponse es el cuerpo de /healthz y /readyz.
type HealthResponse struct {
	Status     string            `json:"status"` // ok | degraded
	Version    string            `json:"version,omitempty"`
	Components map[string]string `json:"components"`
}
