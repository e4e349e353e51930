package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stockmatch/stockmatch/internal/server/events"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	clientBuffer   = 64
)

func connectedEvent(transport string) events.Event {
	return events.Event{
		Type:      events.ClientConnected,
		Timestamp: time.Now().UTC(),
		Data: map[string]any{
			"transport": transport,
			"message":   "Connected to stockmatch updates",
		},
	}
}

// HandleWebSocket handles GET /api/updates/ws.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log(r).Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := events.NewClient(clientBuffer)
	_ = client.Send(connectedEvent("websocket"))
	h.broker.Subscribe(client)

	go h.writePump(conn, client)
	go h.readPump(conn, client)
}

// readPump discards client messages and unsubscribes on disconnect.
func (h *Handlers) readPump(conn *websocket.Conn, client *events.Client) {
	defer func() {
		h.broker.Unsubscribe(client)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn().Err(err).Msg("WebSocket read error")
			}
			return
		}
	}
}

func (h *Handlers) writePump(conn *websocket.Conn, client *events.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case event, ok := <-client.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HandleSSE handles GET /api/updates/stream.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := events.NewClient(clientBuffer)
	h.broker.Subscribe(client)
	defer h.broker.Unsubscribe(client)

	w.WriteHeader(http.StatusOK)
	if err := h.writeSSE(w, rc, connectedEvent("sse")); err != nil {
		h.log(r).Error().Err(err).Msg("streaming not supported")
		return
	}

	for {
		select {
		case event, ok := <-client.Events():
			if !ok {
				return
			}
			if err := h.writeSSE(w, rc, event); err != nil {
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

func (h *Handlers) writeSSE(w http.ResponseWriter, rc *http.ResponseController, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal SSE event")
		return nil
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data); err != nil {
		return err
	}
	return rc.Flush()
}
