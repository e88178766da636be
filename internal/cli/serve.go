package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgrid/internal/api"
	"github.com/matzehuels/flowgrid/pkg/cache"
	"github.com/matzehuels/flowgrid/pkg/pipeline"
)

// serveCommand creates the serve command for running the layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

Endpoints:
  POST /v1/layout  compute a layout for posted frame and elements
  GET  /healthz    liveness check

With --redis, probe results are cached in Redis instead of on disk,
letting multiple instances share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for shared probe caching (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable probe caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	cch, err := c.newServeCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(cch, nil, logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(runner, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServeCache picks the cache backend for the server: Redis when
// requested, the local file cache otherwise.
func (c *CLI) newServeCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		return rc, nil
	}
	return newCache(false)
}
