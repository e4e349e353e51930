package handlers

import (
	"net/http"
	"time"

	"github.com/stockmatch/stockmatch/internal/server/response"
)

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":      "healthy",
		"service":     "stockmatch-api",
		"timestamp":   h.now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.startTime).Round(time.Second).String(),
		"cache_items": h.cache.ItemCount(),
		"subscribers": h.broker.SubscriberCount(),
	})
}
