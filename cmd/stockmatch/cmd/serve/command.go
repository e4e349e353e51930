// Package serve provides the command that runs the HTTP API server.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stockmatch/stockmatch/internal/appcontext"
	"github.com/stockmatch/stockmatch/internal/cmd/emoji"
	"github.com/stockmatch/stockmatch/internal/server"
	"github.com/stockmatch/stockmatch/pkg/errors"
)

// shutdownTimeout bounds connection draining after a shutdown signal.
const shutdownTimeout = 30 * time.Second

// NewCommand creates the serve command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "management",
		Short:   "Start the REST API server",
		Long: `Start the REST API server for reconciliation, orders and inventory.

Features:
  - Production and POS inventory endpoints with an in-memory cache
  - Reconciliation, xlsx export and restock orders
  - POS CSV upload
  - WebSocket (/api/updates/ws) and SSE (/api/updates/stream) updates
  - Optional background refresh of production inventory
  - CORS, request IDs, request logging and panic recovery
  - Graceful shutdown with connection draining

Flags override the server section of the config file and the HTTP_*
environment variables.`,
		Example: `  stockmatch serve
  stockmatch serve --port 3000 --auto-refresh
  stockmatch serve --cors-origins "https://dashboard.example.com"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, app)
		},
	}

	defaults := server.DefaultConfig()
	cmd.Flags().IntP("port", "p", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated, default any)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "Inventory cache TTL")
	cmd.Flags().Bool("auto-refresh", false, "Rescan production inventory in the background")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	return cmd
}

// runServer starts the API server and blocks until the command context is
// cancelled.
func runServer(cmd *cobra.Command, app appcontext.Interface) error {
	cfg := parseConfig(cmd, app.ServerConfig())
	logger := app.Logger()

	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.NewValidationError("port", cfg.Port, "port out of range")
	}

	sm, err := app.Stockmatch()
	if err != nil {
		return fmt.Errorf("creating stockmatch: %w", err)
	}

	autoRefresh := app.AutoRefresh()
	if cmd.Flags().Changed("auto-refresh") {
		autoRefresh = mustGetBool(cmd, "auto-refresh")
	}

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("prefix", cfg.PathPrefix).
		Strs("cors_origins", cfg.CORSOrigins).
		Dur("cache_ttl", cfg.CacheTTL).
		Bool("auto_refresh", autoRefresh).
		Msg("Starting API server")

	srv := server.New(sm, cfg, logger)
	srv.Start()

	if autoRefresh {
		if err := sm.AutoRefreshOn(); err != nil {
			return err
		}
		defer func() { _ = sm.AutoRefreshOff() }()
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	return startWithGracefulShutdown(cmd.Context(), cmd.OutOrStdout(), srv.HTTPServer(addr), srv, logger)
}

// parseConfig applies the flags the user set on top of base.
func parseConfig(cmd *cobra.Command, base server.Config) server.Config {
	cfg := base
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = mustGetInt(cmd, "port")
	}
	if flags.Changed("host") {
		cfg.Host = mustGetString(cmd, "host")
	}
	if flags.Changed("prefix") {
		cfg.PathPrefix = mustGetString(cmd, "prefix")
	}
	if flags.Changed("cors-origins") {
		cfg.CORSOrigins = mustGetStringSlice(cmd, "cors-origins")
	}
	if flags.Changed("cache-ttl") {
		cfg.CacheTTL = mustGetDuration(cmd, "cache-ttl")
	}
	if flags.Changed("read-timeout") {
		cfg.ReadTimeout = mustGetDuration(cmd, "read-timeout")
	}
	if flags.Changed("write-timeout") {
		cfg.WriteTimeout = mustGetDuration(cmd, "write-timeout")
	}
	if flags.Changed("idle-timeout") {
		cfg.IdleTimeout = mustGetDuration(cmd, "idle-timeout")
	}
	return cfg
}

// startWithGracefulShutdown serves until ctx is cancelled, then drains
// connections and stops the background services.
func startWithGracefulShutdown(ctx context.Context, out io.Writer, httpServer *http.Server, srv *server.Server, logger *zerolog.Logger) error {
	listener, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info().
		Str("addr", listener.Addr().String()).
		Str("service", "API").
		Msg("HTTP server listening")
	_, _ = fmt.Fprintf(out, "%s API server listening on %s\n", emoji.Server, listener.Addr())
	_, _ = fmt.Fprintln(out, "   Press Ctrl+C to stop")

	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received via context")
		_, _ = fmt.Fprintf(out, "\n%s Shutting down API server...\n", emoji.Stop)

		// The parent context is already cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}

		logger.Info().Msg("Server stopped gracefully")
		_, _ = fmt.Fprintf(out, "%s API server stopped gracefully\n", emoji.Success)
		return nil
	}
}

// mustGetInt retrieves an integer flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}

func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: failed to get flag %q: %v", name, err))
	}
	return val
}
