package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/platewise/menupress/internal/server"
	"github.com/platewise/menupress/pkg/cache"
)

// serveCommand creates the serve command for the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
		noCache   bool
		scope     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

The server exposes the pipeline over HTTP: POST /v1/layout for geometry,
POST /v1/render/{format} for artifacts, POST /v1/check for template
compatibility, and catalog endpoints for presets, templates and palettes.

Caching defaults to the local file cache. Point --redis or --mongo at a
shared backend for multi-instance deployments; --scope isolates tenants
sharing one backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI, scope, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for shared caching (e.g. localhost:6379)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for shared caching (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&scope, "scope", "", "cache key prefix for tenant isolation")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI, scope string, noCache bool) error {
	backend, err := c.serverCache(ctx, redisAddr, mongoURI, noCache)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if scope != "" {
		keyer = cache.NewScopedKeyer(nil, scope+":")
	}

	tuning, err := c.loadTuning()
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Cache:  backend,
		Keyer:  keyer,
		Logger: c.Logger,
		Tuning: tuning,
	})
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// serverCache picks the cache backend from flags: a shared backend when
// configured, the local file cache otherwise.
func (c *CLI) serverCache(ctx context.Context, redisAddr, mongoURI string, noCache bool) (cache.Cache, error) {
	switch {
	case noCache:
		return cache.NewNullCache(), nil
	case redisAddr != "":
		backend, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return backend, nil
	case mongoURI != "":
		backend, err := cache.NewMongoCache(ctx, cache.MongoConfig{URI: mongoURI})
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		return backend, nil
	default:
		return newCache(false)
	}
}
