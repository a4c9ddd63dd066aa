package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/insurance-admin/api"
	"github.com/warp/insurance-admin/config"
	"github.com/warp/insurance-admin/generic/store"
	"github.com/warp/insurance-admin/insurance"
	"github.com/warp/insurance-admin/logging"
	"github.com/warp/insurance-admin/store/sqlite"
)

// serveFlags maps flag names to config keys.
var serveFlags = map[string]string{
	"addr":         "server.addr",
	"store":        "store.driver",
	"db":           "store.path",
	"log-level":    "log.level",
	"dev":          "log.development",
	"enable-reset": "features.enable_reset",
}

func serveCmd(configFile *string) *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			for name, key := range serveFlags {
				if f := cmd.Flags().Lookup(name); f != nil {
					if err := v.BindPFlag(key, f); err != nil {
						return err
					}
				}
			}
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	d := config.Defaults()
	cmd.Flags().String("addr", d.Server.Addr, "HTTP listen address")
	cmd.Flags().String("store", d.Store.Driver, "record store: memory or sqlite")
	cmd.Flags().String("db", d.Store.Path, "SQLite database path (store=sqlite)")
	cmd.Flags().String("log-level", d.Log.Level, "log level: debug, info, warn, error")
	cmd.Flags().Bool("dev", d.Log.Development, "human-readable development logging")
	cmd.Flags().Bool("enable-reset", d.Features.EnableReset, "mount POST /api/reset")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := openStores(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer backend.close()

	handler := api.NewHandler(backend.stores,
		api.WithLogger(logger),
		api.WithListCacheMaxAge(cfg.API.ListCacheMaxAge),
		api.WithHealthCheck(backend.ping),
	)
	router := api.NewRouter(handler, api.RouterOptions{
		Logger:         logger,
		Metrics:        api.NewMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableReset:    cfg.Features.EnableReset,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("reset_enabled", cfg.Features.EnableReset),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// =============================================================================
// STORE WIRING
// =============================================================================

type backend struct {
	stores api.Stores
	ping   func(context.Context) error
	close  func() error
}

func openStores(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return openSQLite(ctx, cfg.Path, logger)
	default:
		seed := insurance.NewSeed()
		return &backend{
			stores: api.Stores{
				Policies:  store.NewMemory(seed.Policies),
				Claims:    store.NewMemory(seed.Claims),
				Customers: store.NewMemory(seed.Customers),
				Payments:  store.NewMemory(seed.Payments),
			},
			close: func() error { return nil },
		}, nil
	}
}

func openSQLite(ctx context.Context, path string, logger *zap.Logger) (*backend, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	seed := insurance.NewSeed()
	policies := sqlite.NewStore[insurance.Policy](db, "policies")
	claims := sqlite.NewStore[insurance.Claim](db, "claims")
	customers := sqlite.NewStore[insurance.Customer](db, "customers")
	payments := sqlite.NewStore[insurance.Payment](db, "payments")

	steps := []struct {
		name string
		seed func() error
		n    func() (int, error)
	}{
		{"policies", func() error { return policies.Reset(ctx, seed.Policies) }, func() (int, error) { return policies.Count(ctx) }},
		{"claims", func() error { return claims.Reset(ctx, seed.Claims) }, func() (int, error) { return claims.Count(ctx) }},
		{"customers", func() error { return customers.Reset(ctx, seed.Customers) }, func() (int, error) { return customers.Count(ctx) }},
		{"payments", func() error { return payments.Reset(ctx, seed.Payments) }, func() (int, error) { return payments.Count(ctx) }},
	}
	for _, s := range steps {
		n, err := s.n()
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to count %s: %w", s.name, err)
		}
		if n > 0 {
			continue
		}
		if err := s.seed(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed %s: %w", s.name, err)
		}
		logger.Info("seeded empty store", zap.String("resource", s.name))
	}

	return &backend{
		stores: api.Stores{
			Policies:  policies,
			Claims:    claims,
			Customers: customers,
			Payments:  payments,
		},
		ping:  db.Ping,
		close: db.Close,
	}, nil
}

