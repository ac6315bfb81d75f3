package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/clockit/clockit-idm/pkg/auth"
	"github.com/clockit/clockit-idm/pkg/config"
	"github.com/clockit/clockit-idm/pkg/mailer"
	"github.com/clockit/clockit-idm/pkg/notification"
	"github.com/clockit/clockit-idm/pkg/password"
	"github.com/clockit/clockit-idm/pkg/store"
	"github.com/clockit/clockit-idm/pkg/tokengenerator"
)

const (
	connectRetries = 5
	connectBackoff = 500 * time.Millisecond
)

func setupLogger() {
	opts := &slog.HandlerOptions{AddSource: true}
	var handler slog.Handler
	if config.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func loadConfig() (config.Config, error) {
	config.LoadEnvFile(envFile)
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openPool creates the pgx pool and waits for the database to answer.
func openPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	dbConfig := cfg.ToDbConfig()
	pool, err := dbutils.NewDbPool(ctx, dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		return nil, err
	}

	backoff := retry.WithMaxRetries(connectRetries, retry.NewExponential(connectBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			slog.Warn("Database not ready", "host", dbConfig.Host, "err", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	return pool, nil
}

func newMailer(cfg config.EmailConfig) (mailer.Mailer, error) {
	if cfg.Host == "" {
		slog.Warn("EMAIL_HOST not set, reset links will only be logged")
		return mailer.LogMailer{}, nil
	}
	return mailer.NewSMTPMailer(cfg.ToSMTPConfig())
}

type services struct {
	store         *store.PostgresStore
	auth          *auth.Service
	notifications *notification.Service
}

func newServices(cfg config.Config, pool *pgxpool.Pool) (*services, error) {
	st := store.NewPostgresStore(pool)
	repos := st.Repos()

	tokenTTL, err := cfg.JWTConfig.ParseTokenExpiry()
	if err != nil {
		return nil, fmt.Errorf("invalid token expiry: %w", err)
	}
	resetExpiry, err := cfg.LoginConfig.ParseResetTokenExpiry()
	if err != nil {
		return nil, fmt.Errorf("invalid reset token expiry: %w", err)
	}
	lockoutPolicy, err := cfg.LoginConfig.ToLockoutPolicy()
	if err != nil {
		return nil, err
	}
	m, err := newMailer(cfg.EmailConfig)
	if err != nil {
		return nil, fmt.Errorf("create mailer: %w", err)
	}

	notifications := notification.NewService(repos.Notifications, repos.Profiles)
	tokens := tokengenerator.NewJwtTokenGenerator(cfg.JWTConfig.Secret, cfg.JWTConfig.Issuer)

	authService := auth.NewService(st, tokens,
		auth.WithHasher(password.NewBcryptHasher(cfg.LoginConfig.BcryptCost)),
		auth.WithPolicyChecker(password.NewPolicyChecker(cfg.PasswordComplexityConfig.ToPasswordPolicy())),
		auth.WithLockoutPolicy(lockoutPolicy),
		auth.WithTokenTTL(tokenTTL),
		auth.WithResetExpiry(resetExpiry),
		auth.WithFrontendOrigin(cfg.LoginConfig.FrontendOrigin),
		auth.WithMailer(m),
		auth.WithNotifier(notifications),
	)

	return &services{
		store:         st,
		auth:          authService,
		notifications: notifications,
	}, nil
}
