// Package events fans reconciliation activity out to live API clients.
//
// The facade's hooks publish into a Broker; WebSocket and SSE connections
// each register a Client and receive every event published after they
// connect.
package events

import "time"

// EventType names an event.
type EventType string

// Event types.
const (
	// Facade events.
	InventoryRefreshed      EventType = "inventory.refreshed"
	ReconciliationCompleted EventType = "reconciliation.completed"
	OrderGenerated          EventType = "order.generated"

	// Transport events.
	ClientConnected EventType = "client.connected"
)

// Event is one published occurrence.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
