// Package app assembles the service from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/law-manager/lawauth/internal/api"
	"github.com/law-manager/lawauth/internal/api/middleware"
	"github.com/law-manager/lawauth/internal/core/ports"
	"github.com/law-manager/lawauth/internal/core/service"
	"github.com/law-manager/lawauth/internal/identity"
	"github.com/law-manager/lawauth/internal/infrastructure/db/memory"
	mongostore "github.com/law-manager/lawauth/internal/infrastructure/db/mongo"
	"github.com/law-manager/lawauth/internal/infrastructure/db/postgres"
	redisstore "github.com/law-manager/lawauth/internal/infrastructure/db/redis"
	"github.com/law-manager/lawauth/internal/infrastructure/proxy"
	"github.com/law-manager/lawauth/internal/pkg/config"
)

// Options tune how the service is assembled.
type Options struct {
	// Migrate applies pending PostgreSQL migrations before serving.
	// MongoDB unique indexes are ensured on every start.
	Migrate bool
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// App is the assembled service.
type App struct {
	Echo *echo.Echo

	limiter *middleware.RateLimiter
	closers []func(context.Context) error
}

type stores struct {
	accounts  ports.AccountRepository
	sessions  ports.SessionRepository
	directory ports.UserDirectory
	checkers  []ports.HealthChecker
}

// New connects to every configured backend and builds the router. On error
// everything opened so far is closed.
func New(ctx context.Context, cfg *config.Config, opts Options, log zerolog.Logger) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	st, err := a.openStores(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	var (
		transport http.RoundTripper
		provider  http.Handler
	)
	if cfg.Auth.ProviderMode == "embedded" {
		p, err := identity.New(identity.Config{
			BasePath:          cfg.Auth.BasePath,
			Secret:            cfg.Auth.SigningSecret(),
			SessionTTL:        cfg.Auth.SessionTTL,
			CookiePrefix:      cfg.Auth.CookiePrefix,
			SecureCookies:     !cfg.IsDevelopment() && cfg.Env != "test",
			AutoSignIn:        cfg.Auth.AutoSignIn,
			MinPasswordLength: cfg.Auth.MinPasswordLength,
			MaxPasswordLength: cfg.Auth.MaxPasswordLength,
		}, st.accounts, st.sessions, st.directory, log)
		if err != nil {
			return nil, err
		}
		provider = p
		transport = proxy.Embedded(p)
	}

	px, err := proxy.New(proxy.Config{
		BaseURL:  cfg.Auth.BaseURL,
		BasePath: cfg.Auth.BasePath,
		Timeout:  cfg.Auth.ProviderTimeout,
	}, transport)
	if err != nil {
		return nil, err
	}

	strategy, err := service.ParseLoginStrategy(cfg.Auth.LoginStrategy)
	if err != nil {
		return nil, err
	}
	bridge := service.NewBridgeService(px, st.directory, strategy, log.With().Str("component", "bridge").Logger())

	a.limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
		PerMinute: cfg.RateLimit.PerMinute,
		Burst:     cfg.RateLimit.Burst,
	}, log)

	a.Echo = api.NewRouter(api.RouterConfig{
		Bridge:           bridge,
		Provider:         provider,
		ProviderBasePath: cfg.Auth.BasePath,
		CORSOrigins:      cfg.CORSOrigins,
		Checkers:         st.checkers,
		RateLimiter:      a.limiter,
		Registerer:       opts.Registerer,
		Log:              log,
	})

	log.Info().
		Str("store", cfg.StoreDriver).
		Str("directory", cfg.DirectoryDriver).
		Str("provider", cfg.Auth.ProviderMode).
		Str("login_strategy", string(strategy)).
		Msg("service assembled")
	return a, nil
}

func (a *App) openStores(ctx context.Context, cfg *config.Config, opts Options) (*stores, error) {
	st := &stores{}

	if cfg.UsesMongo() {
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		st.checkers = append(st.checkers, mongostore.NewChecker(client))

		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return nil, err
		}
		if cfg.StoreDriver == "mongo" {
			st.accounts = mongostore.NewAccountRepository(db)
		}
		if cfg.DirectoryDriver == "mongo" {
			st.directory = mongostore.NewDirectoryRepository(db)
		}
	}

	switch cfg.StoreDriver {
	case "memory":
		st.accounts = memory.NewAccountRepository()
		st.sessions = memory.NewSessionRepository()
	case "mongo":
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		st.checkers = append(st.checkers, redisstore.NewChecker(rdb))
		st.sessions = redisstore.NewSessionStore(rdb)
	}

	switch cfg.DirectoryDriver {
	case "memory":
		st.directory = memory.NewDirectory()
	case "postgres":
		if opts.Migrate {
			if err := postgres.RunMigrations(cfg.Postgres.URL); err != nil {
				return nil, err
			}
		}
		db, err := postgres.Open(cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })
		st.checkers = append(st.checkers, postgres.NewChecker(db))
		st.directory = postgres.NewDirectoryRepository(db)
	}

	if st.accounts == nil || st.sessions == nil || st.directory == nil {
		return nil, fmt.Errorf("unsupported store combination %q/%q", cfg.StoreDriver, cfg.DirectoryDriver)
	}
	return st, nil
}

// Close stops background work and releases every backend connection.
func (a *App) Close(ctx context.Context) error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
