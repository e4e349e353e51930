package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmatch/stockmatch/pkg/logging"
)

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e, ok := <-c.Events():
		require.True(t, ok, "client closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBrokerFanOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := NewBroker(logging.NewNopLogger())
	go b.Run(ctx)

	c1, c2 := NewClient(4), NewClient(4)
	b.Subscribe(c1)
	b.Subscribe(c2)
	assert.Equal(t, 2, b.SubscriberCount())

	b.Publish(ReconciliationCompleted, map[string]int{"auto_matched": 3})

	for _, c := range []*Client{c1, c2} {
		e := receive(t, c)
		assert.Equal(t, ReconciliationCompleted, e.Type)
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestBrokerUnsubscribeClosesClient(t *testing.T) {
	b := NewBroker(logging.NewNopLogger())
	c := NewClient(1)
	b.Subscribe(c)
	b.Unsubscribe(c)

	assert.Zero(t, b.SubscriberCount())
	_, ok := <-c.Events()
	assert.False(t, ok)
	assert.ErrorIs(t, c.Send(Event{}), ErrClientClosed)

	b.Unsubscribe(c)
}

func TestBrokerShutdownClosesSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := NewBroker(logging.NewNopLogger())
	c := NewClient(1)
	b.Subscribe(c)

	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	_, ok := <-c.Events()
	assert.False(t, ok)
	assert.Zero(t, b.SubscriberCount())
}

func TestClientFull(t *testing.T) {
	c := NewClient(1)
	require.NoError(t, c.Send(Event{Type: InventoryRefreshed}))
	assert.ErrorIs(t, c.Send(Event{Type: InventoryRefreshed}), ErrClientFull)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}
