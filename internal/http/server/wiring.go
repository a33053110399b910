// Package server arma el handler HTTP de BizFlow con todas sus dependencias.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dropDatabas3/bizflow/internal/cache"
	"github.com/dropDatabas3/bizflow/internal/config"
	"github.com/dropDatabas3/bizflow/internal/email"
	"github.com/dropDatabas3/bizflow/internal/http/controllers"
	"github.com/dropDatabas3/bizflow/internal/http/helpers"
	"github.com/dropDatabas3/bizflow/internal/http/router"
	"github.com/dropDatabas3/bizflow/internal/http/services"
	"github.com/dropDatabas3/bizflow/internal/http/services/health"
	"github.com/dropDatabas3/bizflow/internal/http/views"
	"github.com/dropDatabas3/bizflow/internal/i18n"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/metrics"
	"github.com/dropDatabas3/bizflow/internal/notify"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
	"github.com/dropDatabas3/bizflow/internal/rate"
	"github.com/dropDatabas3/bizflow/internal/security/password"
	"github.com/dropDatabas3/bizflow/internal/store"

	// Adapters registrados vía init()
	_ "github.com/dropDatabas3/bizflow/internal/store/adapters/memory"
	_ "github.com/dropDatabas3/bizflow/internal/store/adapters/pg"
)

// Options parámetros de arranque que no vienen del YAML.
type Options struct {
	Version string
	// Registry para /metrics; nil usa el default de Prometheus.
	Registry *prometheus.Registry
}

// OpenStore abre el almacenamiento configurado y migra si corresponde.
func OpenStore(ctx context.Context, cfg *config.Config) (store.AdapterConnection, error) {
	conn, err := store.Open(ctx, store.AdapterConfig{
		Name:         cfg.Storage.Driver,
		DSN:          cfg.Storage.DSN,
		MaxOpenConns: cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Storage.Postgres.MaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if !store.IsConfigured(conn) {
		logger.L().Warn("storage not configured: pages will show the missing env notice",
			logger.Component("store"))
		return conn, nil
	}
	if cfg.Storage.AutoMigrate {
		if err := store.Migrate(ctx, conn); err != nil && !errors.Is(err, store.ErrNotMigratable) {
			_ = conn.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return conn, nil
}

// BuildHandler construye el handler y retorna una función de cleanup.
func BuildHandler(ctx context.Context, cfg *config.Config, opts Options) (http.Handler, func() error, error) {
	log := logger.L().With(logger.Component("wiring"))
	var closers []func() error
	cleanup := func() error {
		var first error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	proxies, err := helpers.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, nil, fmt.Errorf("trusted proxies: %w", err)
	}
	helpers.SetTrustedProxies(proxies)

	// 1. Store
	conn, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, conn.Close)

	// 2. Cache + rate limiters (redis compartido o memoria)
	var (
		cacheClient       cache.Client
		authLimiter       rate.Limiter
		automationLimiter rate.Limiter
	)
	if strings.EqualFold(cfg.Cache.Kind, "redis") {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			_ = cleanup()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		closers = append(closers, rdb.Close)
		cacheClient = cache.NewRedisFromClient(rdb, cfg.Cache.Redis.Prefix, cfg.CacheDefaultTTL())
		if cfg.Rate.Enabled {
			authLimiter = rate.NewRedisLimiter(rdb, cfg.Cache.Redis.Prefix+"rl:", cfg.Rate.Auth.Limit, cfg.AuthRateWindow())
			automationLimiter = rate.NewRedisLimiter(rdb, cfg.Cache.Redis.Prefix+"rl:", cfg.Rate.Automation.Limit, cfg.AutomationRateWindow())
		}
	} else {
		cacheClient, err = cache.New(cache.Config{Driver: "memory", Prefix: "bf:", DefaultTTL: cfg.CacheDefaultTTL()})
		if err != nil {
			_ = cleanup()
			return nil, nil, err
		}
		closers = append(closers, cacheClient.Close)
		if cfg.Rate.Enabled {
			authLimiter = rate.NewMemoryLimiter(cfg.Rate.Auth.Limit, cfg.AuthRateWindow())
			automationLimiter = rate.NewMemoryLimiter(cfg.Rate.Automation.Limit, cfg.AutomationRateWindow())
		}
	}

	// 3. Identity provider
	policy := password.DefaultPolicy
	if cfg.Auth.PasswordMinLength > 0 {
		policy.MinLength = cfg.Auth.PasswordMinLength
	}
	provider := identity.NewLocal(identity.Deps{
		Users:      conn.Users(),
		Tokens:     conn.Tokens(),
		Cache:      cacheClient,
		CacheTTL:   cfg.UserCacheTTL(),
		Secret:     []byte(cfg.JWT.Secret),
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.AccessTTL(),
		RefreshTTL: cfg.RefreshTTL(),
		Policy:     policy,
	})
	cookies := identity.CookieConfig{
		Domain:   cfg.Auth.Cookie.Domain,
		SameSite: cfg.Auth.Cookie.SameSite,
		Secure:   cfg.Auth.Cookie.Secure,
		MaxAge:   cfg.RefreshTTL(),
	}

	// 4. Email + notificaciones
	var sender email.Sender
	if cfg.SMTPConfigured() {
		smtp := email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		if cfg.SMTP.TLS != "" {
			smtp.TLSMode = cfg.SMTP.TLS
		}
		smtp.InsecureSkipVerify = cfg.SMTP.InsecureSkipVerify
		sender = smtp
	} else {
		log.Info("smtp not configured: welcome emails will be logged")
	}
	mailer := email.NewWelcomeService(sender, cfg.SMTPConfigured())

	var notifier notify.Firer
	if base := cfg.NotifyBaseURL(); base != "" {
		notifier = notify.NewDispatcher(notify.NewClient(base, cfg.NotifyTimeout()), cfg.NotifyTimeout())
	} else {
		log.Warn("notify base url empty: creation notifications disabled")
	}

	// 5. Services + controllers
	catalog := i18n.MustLoad()
	svcs := services.New(services.Deps{
		Store:    conn,
		Provider: provider,
		Notifier: notifier,
		Mailer:   mailer,
		Health: health.Deps{
			Version: opts.Version,
			Components: map[string]health.Pinger{
				"store": conn,
				"cache": cacheClient,
			},
		},
	})
	ctrls := controllers.New(controllers.Deps{
		Services: svcs,
		Views:    views.MustNew(catalog),
		Cookies:  cookies,
	})

	// 6. Métricas
	mcfg := metrics.Config{}
	if opts.Registry != nil {
		mcfg.Registry = opts.Registry
	}
	if ps, ok := conn.(store.PoolStater); ok {
		mcfg.PoolStats = func() (metrics.PoolStat, bool) {
			acquired, idle, total := ps.PoolStats()
			return metrics.PoolStat{Acquired: acquired, Idle: idle, Total: total}, true
		}
	}
	metricsHandler, err := metrics.Register(mcfg)
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("metrics: %w", err)
	}

	// 7. Router
	h := router.New(router.Deps{
		Controllers:       ctrls,
		Provider:          provider,
		Cookies:           cookies,
		AuthLimiter:       authLimiter,
		AutomationLimiter: automationLimiter,
		CORSOrigins:       cfg.Server.CORSAllowedOrigins,
		Metrics:           metricsHandler,
	})

	log.Info("handler ready",
		logger.String("store", conn.Name()),
		logger.String("cache", cfg.Cache.Kind),
		logger.Bool("rate_limit", cfg.Rate.Enabled),
		logger.Bool("smtp", cfg.SMTPConfigured()),
	)
	return otelhttp.NewHandler(h, "bizflow"), cleanup, nil
}
