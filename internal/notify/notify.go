// Package notify dispara la automatización de bienvenida vía HTTP.
// Los callers usan Fire: el envío nunca bloquea ni falla la operación que lo origina.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dropDatabas3/bizflow/internal/metrics"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// WelcomePath es la ruta del endpoint de automatización.
const WelcomePath = "/api/automation/welcome-email"

// Notifier envía la notificación de bienvenida.
type Notifier interface {
	WelcomeEmail(ctx context.Context, email, name string) error
}

// Client llama al endpoint de welcome-email de BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient crea un Client con transporte instrumentado.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type welcomeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// WelcomeEmail hace POST {email, name}. Status fuera de 2xx es error.
func (c *Client) WelcomeEmail(ctx context.Context, email, name string) error {
	body, err := json.Marshal(welcomeRequest{Email: email, Name: name})
	if err != nil {
		return fmt.Errorf("notify: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+WelcomePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("notify: post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify: welcome-email status %d", resp.StatusCode)
	}
	return nil
}

// Firer encola notificaciones best-effort.
type Firer interface {
	Fire(ctx context.Context, kind, email, name string)
}

// Dispatcher ejecuta notificaciones en goroutines con contexto desacoplado.
type Dispatcher struct {
	n       Notifier
	timeout time.Duration
	// done se invoca al terminar cada envío; nil en producción.
	done func(error)
}

// NewDispatcher crea un Dispatcher. Sin notifier, Fire no hace nada.
func NewDispatcher(n Notifier, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{n: n, timeout: timeout}
}

// OnDone registra un callback por envío terminado.
func (d *Dispatcher) OnDone(fn func(error)) *Dispatcher {
	d.done = fn
	return d
}

// Fire envía la bienvenida sin bloquear. El contexto del request se
// desacopla de su cancelación; los errores se loguean y se cuentan.
func (d *Dispatcher) Fire(ctx context.Context, kind, email, name string) {
	if d == nil || d.n == nil || strings.TrimSpace(email) == "" {
		return
	}
	log := logger.From(ctx).With(logger.Component("notify"), logger.Op(kind))
	bg := context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(bg, d.timeout)
		defer cancel()

		err := d.n.WelcomeEmail(ctx, email, name)
		if err != nil {
			metrics.RecordNotification(kind, "error")
			log.Warn("welcome notification failed", logger.Err(err))
		} else {
			metrics.RecordNotification(kind, "ok")
			log.Debug("welcome notification sent")
		}
		if d.done != nil {
			d.done(err)
		}
	}()
}
