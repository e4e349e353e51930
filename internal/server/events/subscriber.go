package events

import (
	"errors"
	"sync"
)

// ErrClientFull is returned when a client's buffer has no room.
var ErrClientFull = errors.New("events: client buffer full")

// ErrClientClosed is returned by Send after Close.
var ErrClientClosed = errors.New("events: client closed")

// Subscriber consumes events. Send must not block.
type Subscriber interface {
	Send(Event) error
	Close() error
}

// Client is a buffered Subscriber read by one connection.
type Client struct {
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

var _ Subscriber = (*Client)(nil)

// NewClient creates a client holding up to buffer undelivered events.
func NewClient(buffer int) *Client {
	if buffer < 1 {
		buffer = 1
	}
	return &Client{ch: make(chan Event, buffer)}
}

// Events is closed when the client is closed.
func (c *Client) Events() <-chan Event {
	return c.ch
}

// Send queues e, dropping it when the buffer is full.
func (c *Client) Send(e Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.ch <- e:
		return nil
	default:
		return ErrClientFull
	}
}

// Close is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.ch)
	}
	return nil
}
