package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vardhan31/Exam-Seating-Plan/pkg/api"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/cache"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/config"
	"github.com/vardhan31/Exam-Seating-Plan/pkg/errors"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		backend  string
		redisURL string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes seat allocation over HTTP.

  GET  /healthz      liveness check
  POST /v1/seating   seat one room and return the report

Each request runs on its own session; queues are not shared between requests.`,
		Example: `  seatplan serve --addr :8080
  seatplan serve --cache redis --redis-url redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if !config.ValidBackends[backend] {
				return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend: %q (must be one of: file, redis, none)", backend)
			}

			keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:")
			runner, err := c.newRunner(ctx, cacheOptions{Backend: backend, RedisURL: redisURL}, keyer)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := api.NewServer(runner, api.WithLogger(logger))
			if err := srv.Start(ctx, addr); err != nil {
				return err
			}

			printSuccess("Serving seating API")
			printKeyValue("Address", srv.Addr())
			printKeyValue("Cache", backend)

			<-ctx.Done()
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&backend, "cache", "file", "cache backend: file, redis or none")
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for --cache redis")
	return cmd
}
