package main

import (
	"context"
	"log/slog"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tendant/chi-demo/app"

	"github.com/clockit/clockit-idm/pkg/auth"
	authapi "github.com/clockit/clockit-idm/pkg/auth/api"
	"github.com/clockit/clockit-idm/pkg/config"
	"github.com/clockit/clockit-idm/pkg/notification"
	notificationapi "github.com/clockit/clockit-idm/pkg/notification/api"
	"github.com/clockit/clockit-idm/pkg/router"
	"github.com/clockit/clockit-idm/pkg/store"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServe(ctx context.Context, migrate bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if migrate {
		if err := store.Migrate(ctx, cfg.DatabaseConfig.ToDatabaseURL()); err != nil {
			return err
		}
	}

	pool, err := openPool(ctx, cfg.DatabaseConfig)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc, err := newServices(cfg, pool)
	if err != nil {
		return err
	}

	server := app.DefaultApp()

	server.R.Use(cors.Handler(corsOptions(cfg.LoginConfig)))

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		auth.RegisterMetrics(reg)
		notification.RegisterMetrics(reg)
		server.R.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	router.SetupRoutes(server.R, router.Config{
		Prefixes:           router.DefaultPrefixes(),
		AuthHandle:         authapi.NewHandle(svc.auth),
		NotificationHandle: notificationapi.NewHandle(svc.notifications),
		Verifier:           svc.auth,
		AdminLookup:        svc.store.Repos().Profiles,
	})

	slog.Info("ClockIt API ready", "frontend_origin", cfg.LoginConfig.FrontendOrigin, "metrics", cfg.MetricsEnabled)
	server.Run()
	return nil
}

func corsOptions(cfg config.LoginConfig) cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}
