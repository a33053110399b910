// Package metrics define las métricas Prometheus de BizFlow.
// Se registran una sola vez; los Record* son no-op hasta Register.
package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricsOnce sync.Once
	metricsErr  error

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInflight        *prometheus.GaugeVec

	// Pipeline / dominio
	localeDecisionsTotal *prometheus.CounterVec
	sessionRefreshTotal  *prometheus.CounterVec
	notificationsTotal   *prometheus.CounterVec
	emailsTotal          *prometheus.CounterVec
	customerOpsTotal     *prometheus.CounterVec
	rateLimitedTotal     *prometheus.CounterVec
)

// PoolStat es un snapshot de un pool de conexiones.
type PoolStat struct {
	Acquired int32
	Idle     int32
	Total    int32
}

// Config agrupa dependencias necesarias para exponer /metrics.
type Config struct {
	Registry prometheus.Registerer
	// PoolStats es opcional; ok=false si no hay pool (memory/unconfigured).
	PoolStats func() (PoolStat, bool)
}

// Register inicializa las métricas y devuelve el handler para /metrics.
func Register(cfg Config) (http.Handler, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	metricsOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Número total de requests procesadas",
		}, []string{"method", "path", "status"})

		httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latencia de los requests HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"})

		httpInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Requests en vuelo por método y ruta",
		}, []string{"method", "path"})

		localeDecisionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizflow_locale_decisions_total",
			Help: "Decisiones del paso de locale",
		}, []string{"decision", "locale"}) // decision: pass|redirect

		sessionRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizflow_session_refresh_total",
			Help: "Refresh de sesión ejecutados por el middleware",
		}, []string{"result"}) // result: refreshed|invalid|error

		notificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizflow_notifications_total",
			Help: "Notificaciones fire-and-forget por resultado",
		}, []string{"kind", "result"})

		emailsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizflow_emails_total",
			Help: "Emails de bienvenida por resultado",
		}, []string{"result"}) // result: sent|logged|failed

		customerOpsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizflow_customer_operations_total",
			Help: "Operaciones sobre customers",
		}, []string{"op", "result"})

		rateLimitedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizflow_rate_limited_total",
			Help: "Requests rechazadas por rate limit",
		}, []string{"scope"})

		for _, c := range []prometheus.Collector{
			httpRequestsTotal, httpRequestDuration, httpInflight,
			localeDecisionsTotal, sessionRefreshTotal, notificationsTotal,
			emailsTotal, customerOpsTotal, rateLimitedTotal,
		} {
			if err := registerCollector(registry, c); err != nil {
				metricsErr = err
				return
			}
		}
	})
	if metricsErr != nil {
		return nil, metricsErr
	}

	if cfg.PoolStats != nil {
		if err := registerCollector(registry, newPoolCollector(cfg.PoolStats)); err != nil {
			return nil, err
		}
	}

	if g, ok := registry.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{}), nil
	}
	return promhttp.Handler(), nil
}

// registerCollector registra el collector en el registry indicado, ignorando duplicados.
func registerCollector(reg prometheus.Registerer, collector prometheus.Collector) error {
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return nil
		}
		return err
	}
	return nil
}

// ObserveHTTP registra una request terminada.
func ObserveHTTP(method, path string, status int, d time.Duration) {
	if httpRequestsTotal == nil {
		return
	}
	label := NormalizePath(path)
	httpRequestDuration.WithLabelValues(method, label).Observe(d.Seconds())
	httpRequestsTotal.WithLabelValues(method, label, strconv.Itoa(status)).Inc()
}

// Inflight ajusta el gauge de requests en vuelo; delta es +1 o -1.
func Inflight(method, path string, delta float64) {
	if httpInflight == nil {
		return
	}
	httpInflight.WithLabelValues(method, NormalizePath(path)).Add(delta)
}

func RecordLocaleDecision(decision, locale string) {
	if localeDecisionsTotal != nil {
		localeDecisionsTotal.WithLabelValues(decision, locale).Inc()
	}
}

func RecordSessionRefresh(result string) {
	if sessionRefreshTotal != nil {
		sessionRefreshTotal.WithLabelValues(result).Inc()
	}
}

func RecordNotification(kind, result string) {
	if notificationsTotal != nil {
		notificationsTotal.WithLabelValues(kind, result).Inc()
	}
}

func RecordEmail(result string) {
	if emailsTotal != nil {
		emailsTotal.WithLabelValues(result).Inc()
	}
}

func RecordCustomerOp(op, result string) {
	if customerOpsTotal != nil {
		customerOpsTotal.WithLabelValues(op, result).Inc()
	}
}

func RecordRateLimited(scope string) {
	if rateLimitedTotal != nil {
		rateLimitedTotal.WithLabelValues(scope).Inc()
	}
}

// poolCollector expone gauges del pool de Postgres.
type poolCollector struct {
	stats        func() (PoolStat, bool)
	acquiredDesc *prometheus.Desc
	idleDesc     *prometheus.Desc
	totalDesc    *prometheus.Desc
}

func newPoolCollector(stats func() (PoolStat, bool)) *poolCollector {
	return &poolCollector{
		stats:        stats,
		acquiredDesc: prometheus.NewDesc("pg_pool_acquired", "Conexiones adquiridas", nil, nil),
		idleDesc:     prometheus.NewDesc("pg_pool_idle", "Conexiones inactivas", nil, nil),
		totalDesc:    prometheus.NewDesc("pg_pool_total", "Conexiones totales", nil, nil),
	}
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.acquiredDesc
	ch <- c.idleDesc
	ch <- c.totalDesc
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	st, ok := c.stats()
	if !ok {
		return
	}
	ch <- prometheus.MustNewConstMetric(c.acquiredDesc, prometheus.GaugeValue, float64(st.Acquired))
	ch <- prometheus.MustNewConstMetric(c.idleDesc, prometheus.GaugeValue, float64(st.Idle))
	ch <- prometheus.MustNewConstMetric(c.totalDesc, prometheus.GaugeValue, float64(st.Total))
}

var (
	uuidSegmentRE  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F-]{4}-[0-9a-fA-F-]{4,}$`)
	hexSegmentRE   = regexp.MustCompile(`^[0-9a-fA-F]{16,}$`)
	tokenSegmentRE = regexp.MustCompile(`^[A-Za-z0-9_-]{24,}$`)
)

// NormalizePath reemplaza ids y tokens por :param para acotar la cardinalidad.
func NormalizePath(p string) string {
	clean := strings.SplitN(p, "?", 2)[0]
	var out []string
	for _, seg := range strings.Split(clean, "/") {
		if seg == "" {
			continue
		}
		if isDynamicSegment(seg) {
			out = append(out, ":param")
		} else {
			out = append(out, seg)
		}
	}
	if len(out) == 0 {
		return "/"
	}
	return "/" + strings.Join(out, "/")
}

func isDynamicSegment(seg string) bool {
	if len(seg) > 48 {
		return true
	}
	if uuidSegmentRE.MatchString(seg) || hexSegmentRE.MatchString(seg) || tokenSegmentRE.MatchString(seg) {
		return true
	}
	if _, err := strconv.Atoi(seg); err == nil {
		return true
	}
	return false
}
