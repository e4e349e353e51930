// Package server provides the HTTP API for stockmatch.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/stockmatch/stockmatch"
	"github.com/stockmatch/stockmatch/internal/server/cache"
	"github.com/stockmatch/stockmatch/internal/server/events"
	"github.com/stockmatch/stockmatch/pkg/logging"
	"github.com/stockmatch/stockmatch/pkg/sheets"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	sm        stockmatch.Stockmatch
	cache     *cache.Cache
	broker    *events.Broker
	upgrader  websocket.Upgrader
	logger    *zerolog.Logger
	config    Config
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	startTime time.Time
}

// New creates a server for sm and connects its hooks to the event broker.
func New(sm stockmatch.Stockmatch, cfg Config, logger *zerolog.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	defaults := DefaultConfig()
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = defaults.PathPrefix
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		sm:     sm,
		cache:  cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		broker: events.NewBroker(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(cfg.CORSOrigins),
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		startTime: time.Now(),
	}
	s.connectHooks()
	return s
}

// connectHooks publishes facade activity to the broker and keeps the
// production cache current after every scan.
func (s *Server) connectHooks() {
	s.sm.OnProductionRefreshed(func(report *sheets.Report) {
		s.cache.SetProduction(report)
		s.broker.Publish(events.InventoryRefreshed, map[string]any{
			"tabs":     report.InventoryTabs(),
			"products": len(report.Products),
			"errors":   len(report.Errors),
		})
	})

	s.sm.OnReconciled(func(rec *stockmatch.Reconciliation) {
		s.broker.Publish(events.ReconciliationCompleted, rec.Summary)
	})

	s.logger.Debug().Msg("stockmatch hooks connected to event broker")
}

// Start runs the event broker in the background.
func (s *Server) Start() {
	go func() {
		defer close(s.done)
		s.broker.Run(s.ctx)
	}()
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer returns an http.Server for the configured address.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown stops background services, waiting until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down server background services")
	s.cancel()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("background services shutdown timed out")
		return ctx.Err()
	}
}

// Cache returns the server's cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// checkOrigin allows WebSocket upgrades from the configured origins, or
// from anywhere when none are configured.
func checkOrigin(origins []string) func(*http.Request) bool {
	if len(origins) == 0 {
		return func(*http.Request) bool { return true }
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed["*"] || allowed[origin]
	}
}
