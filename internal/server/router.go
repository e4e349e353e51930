package server

import (
	"net/http"

	"github.com/stockmatch/stockmatch/internal/server/handlers"
	"github.com/stockmatch/stockmatch/internal/server/middleware"
	"github.com/stockmatch/stockmatch/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(
		s.sm,
		s.cache,
		s.broker,
		s.upgrader,
		s.logger,
		handlers.Limits{
			MaxRequestBytes: s.config.MaxRequestBytes,
			MaxUploadBytes:  s.config.MaxUploadBytes,
		},
	)

	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/health", method(http.MethodGet, h.HandleHealth))
	mux.HandleFunc(prefix+"/health", method(http.MethodGet, h.HandleHealth))

	mux.HandleFunc(prefix+"/inventory", method(http.MethodGet, h.HandleInventory))
	mux.HandleFunc(prefix+"/pos-inventory", method(http.MethodGet, h.HandlePOSInventory))

	mux.HandleFunc(prefix+"/reconcile", method(http.MethodPost, h.HandleReconcile))
	mux.HandleFunc(prefix+"/reconcile/export", method(http.MethodPost, h.HandleExport))
	mux.HandleFunc(prefix+"/upload-csv", method(http.MethodPost, h.HandleUploadCSV))
	mux.HandleFunc(prefix+"/orders", method(http.MethodPost, h.HandleOrders))

	mux.HandleFunc(prefix+"/updates/ws", method(http.MethodGet, h.HandleWebSocket))
	mux.HandleFunc(prefix+"/updates/stream", method(http.MethodGet, h.HandleSSE))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "No route for "+r.URL.Path)
	})
}

// method rejects requests with any other HTTP method.
func method(m string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != m {
			w.Header().Set("Allow", m)
			response.MethodNotAllowed(w, r.Method)
			return
		}
		next(w, r)
	}
}

// applyMiddleware wraps handler with the middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cors := middleware.DefaultCORSConfig()
	if len(s.config.CORSOrigins) > 0 {
		cors.AllowedOrigins = s.config.CORSOrigins
		cors.AllowAll = false
	}

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logger(s.logger),
		middleware.CORS(cors),
	)(handler)
}
