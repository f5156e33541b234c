package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newRunningHub() *Hub {
	h := NewHub(nil, nopLogger{})
	go h.Run()
	return h
}

func newTestClient(h *Hub, buffer int) *Client {
	return &Client{Hub: h, Id: uuid.New(), Send: make(chan []byte, buffer)}
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.ClientCount() == n },
		time.Second, 5*time.Millisecond)
}

func TestHubBroadcastDelivers(t *testing.T) {
	h := newRunningHub()
	client := newTestClient(h, 4)
	h.register <- client
	waitForClients(t, h, 1)

	h.Broadcast(ProgressEvent{Type: "indexing_done", DocumentId: "d1", Chunks: 3})

	select {
	case raw := <-client.Send:
		var envelope struct {
			Type string        `json:"type"`
			Data ProgressEvent `json:"data"`
		}
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Equal(t, "indexing_progress", envelope.Type)
		assert.Equal(t, "indexing_done", envelope.Data.Type)
		assert.Equal(t, 3, envelope.Data.Chunks)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHubDropsSlowConsumer(t *testing.T) {
	h := newRunningHub()

	fast := newTestClient(h, 4)
	slow := newTestClient(h, 0) // nobody drains this channel
	h.register <- fast
	h.register <- slow
	waitForClients(t, h, 2)

	// The slow client must be dropped without disturbing the fast one or
	// the hub goroutine.
	h.Broadcast(ProgressEvent{Type: "indexing_done"})
	waitForClients(t, h, 1)

	// The dropped channel is closed exactly once.
	_, open := <-slow.Send
	assert.False(t, open)

	// The hub is still alive and delivering.
	h.Broadcast(ProgressEvent{Type: "indexing_done"})
	delivered := 0
	timeout := time.After(time.Second)
	for delivered < 2 {
		select {
		case <-fast.Send:
			delivered++
		case <-timeout:
			t.Fatalf("fast client got %d of 2 events", delivered)
		}
	}
}

func TestHubUnregisterAfterDropIsNoop(t *testing.T) {
	h := newRunningHub()

	slow := newTestClient(h, 0)
	h.register <- slow
	waitForClients(t, h, 1)

	h.Broadcast(ProgressEvent{Type: "indexing_done"})
	waitForClients(t, h, 0)

	// readPump queues an unregister when the connection dies; after the
	// broadcast already dropped the client this must not close again.
	h.unregister <- slow

	h.Broadcast(ProgressEvent{Type: "indexing_done"})
	assert.Equal(t, 0, h.ClientCount())
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	h := newRunningHub()

	client := newTestClient(h, 1)
	h.register <- client
	waitForClients(t, h, 1)

	h.unregister <- client
	h.unregister <- client
	waitForClients(t, h, 0)

	_, open := <-client.Send
	assert.False(t, open)
}
