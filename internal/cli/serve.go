package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stageside/bracketeer/internal/server"
	"github.com/stageside/bracketeer/pkg/cache"
	"github.com/stageside/bracketeer/pkg/config"
	"github.com/stageside/bracketeer/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The serve command exposes the bracket pipeline over HTTP:

  POST /api/v1/layout    compute a layout and render artifacts
  POST /api/v1/validate  validate match records
  GET  /healthz          liveness check

Configuration is read from ~/.bracketeer/config.toml (or --config).
The cache section selects the artifact cache backend: Redis when
redis_addr is set, otherwise a local file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.bracketeer/config.toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe loads the config, builds the runner, and serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, configPath, addr string, noCache bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	byteCache, err := c.serverCache(ctx, cfg, noCache)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(byteCache, nil, c.Logger)
	defer runner.Close()

	srv := server.New(cfg, runner, c.Logger)
	return srv.Run(ctx)
}

// serverCache builds the byte cache from the config: Redis when
// configured, a local file cache otherwise.
func (c *CLI) serverCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	if cfg.Cache.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", cfg.Cache.RedisAddr)
		return rc, nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}
