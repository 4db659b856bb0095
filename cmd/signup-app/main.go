// Signup application
//
// Serves the signup page exercised by the browser end-to-end suite in e2e/.
// Run it on the port the suite targets by default, then point the suite at it:
//
//	go run ./cmd/signup-app --addr :3000
//	E2E_BASE_URL=http://localhost:3000/ go test -tags=e2e ./e2e/...
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/thesyncim/signup/cmd/signup-app/server"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := server.DefaultConfig()
	cfg.Addr = ":3000"

	var (
		logLevel        string
		shutdownTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:          "signup-app",
		Short:        "Serve the signup page used by the browser end-to-end suite",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			logger.SetLevel(lvl)
			cfg.Logger = logger

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, shutdownTimeout)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flags.StringVar(&cfg.StarWarsURL, "starwars-url", cfg.StarWarsURL, "endpoint fetched by the Star Wars panel")
	flags.DurationVar(&cfg.CookieTTL, "cookie-ttl", cfg.CookieTTL, "lifetime of the firstName cookie")
	flags.StringSliceVar(&cfg.AllowedOrigins, "cors-origin", nil, "origin allowed to call /api (repeatable)")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.DurationVar(&shutdownTimeout, "shutdown-timeout", 5*time.Second, "graceful shutdown timeout")

	return cmd
}

// run serves until ctx is cancelled, then shuts the server down.
func run(ctx context.Context, cfg server.Config, shutdownTimeout time.Duration) error {
	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if _, err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	cfg.Logger.Info("signup app stopped")
	return nil
}
