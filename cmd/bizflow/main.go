package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/bizflow/internal/bootstrap"
	"github.com/dropDatabas3/bizflow/internal/config"
	"github.com/dropDatabas3/bizflow/internal/http/server"
	"github.com/dropDatabas3/bizflow/internal/identity"
	"github.com/dropDatabas3/bizflow/internal/observability/logger"
	"github.com/dropDatabas3/bizflow/internal/observability/telemetry"
	"github.com/dropDatabas3/bizflow/internal/security/password"
	"github.com/dropDatabas3/bizflow/internal/store"
)

// version se setea con -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 15 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	var configPath string
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "bizflow",
		Short:         "BizFlow: dashboard de customers y smart forms",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env es opcional
			_ = godotenv.Load()
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = c
			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       cfg.Log.Level,
				ServiceName: "bizflow",
				Version:     version,
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", envOr("CONFIG_PATH", "config.yaml"), "Archivo YAML de configuración (env CONFIG_PATH)")

	root.AddCommand(
		newServeCmd(func() *config.Config { return cfg }),
		newMigrateCmd(func() *config.Config { return cfg }),
		newUserCmd(func() *config.Config { return cfg }),
		&cobra.Command{
			Use:   "version",
			Short: "Imprime la versión",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(version)
			},
		},
	)
	return root
}

func newServeCmd(cfgFn func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cfgFn()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logger.L()
			shutdownTracing := telemetry.Setup(ctx, telemetry.Config{
				ServiceName: cfg.Telemetry.ServiceName,
				Version:     version,
				Endpoint:    cfg.Telemetry.OTLPEndpoint,
				Insecure:    cfg.Telemetry.Insecure,
			})

			handler, cleanup, err := server.BuildHandler(ctx, cfg, server.Options{Version: version})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      30 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Info("server listening", logger.String("addr", cfg.Server.Addr), logger.String("version", version))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Info("shutting down")
				sctx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
				defer cancel()
				err := srv.Shutdown(sctx)
				if cerr := cleanup(); cerr != nil {
					log.Warn("cleanup error", logger.Err(cerr))
				}
				if terr := shutdownTracing(sctx); terr != nil {
					log.Warn("tracing shutdown error", logger.Err(terr))
				}
				return err
			})
			return g.Wait()
		},
	}
}

func newMigrateCmd(cfgFn func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones de Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cfgFn()
			ctx := cmd.Context()
			cfg.Storage.AutoMigrate = false
			conn, err := server.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer conn.Close()
			if !store.IsConfigured(conn) {
				return errors.New("storage not configured (STORAGE_DSN)")
			}
			if err := store.Migrate(ctx, conn); err != nil {
				return err
			}
			logger.L().Info("migrations applied", logger.String("store", conn.Name()))
			return nil
		},
	}
}

func newUserCmd(cfgFn func() *config.Config) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Gestión de usuarios",
	}

	var email string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario (pide el password por terminal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cfgFn()
			ctx := cmd.Context()

			conn, err := server.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer conn.Close()
			if !store.IsConfigured(conn) {
				return errors.New("storage not configured (STORAGE_DSN)")
			}

			provider := identity.NewLocal(identity.Deps{
				Users:  conn.Users(),
				Tokens: conn.Tokens(),
				Secret: []byte(cfg.JWT.Secret),
				Policy: password.Policy{MinLength: cfg.Auth.PasswordMinLength},
			})
			u, err := bootstrap.CreateUser(ctx, bootstrap.UserConfig{
				Provider: provider,
				Email:    email,
				// fuera de una terminal se toma de BIZFLOW_PASSWORD
				Password: os.Getenv("BIZFLOW_PASSWORD"),
				In:       cmd.InOrStdin(),
				Out:      cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user created: %s (%s)\n", u.Email, u.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&email, "email", "", "Email del usuario")

	userCmd.AddCommand(createCmd)
	return userCmd
}
