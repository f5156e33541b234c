package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"ragchat-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ProgressEvent is the payload pushed to subscribers while background
// indexing runs.
type ProgressEvent struct {
	Type       string `json:"type"`
	DocumentId string `json:"document_id,omitempty"`
	Chunks     int    `json:"chunks,omitempty"`
	Error      string `json:"error,omitempty"`
}

type Hub struct {
	// Registered clients map, keyed per connection (one browser tab = one id)
	clients map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Outbound events. Run is the sole reader, and the sole closer of any
	// client Send channel; that invariant is what makes close safe.
	broadcast chan []byte

	// Lock for safe map access from outside the Run goroutine
	mu sync.RWMutex

	// Redis connection for cross-instance fanout, nil in single-node setups
	rdb *redis.Client

	// Identifies this instance so relayed events are not delivered twice.
	instanceId string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		clients:    make(map[uuid.UUID]*Client),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Id] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.Id})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.Id]; ok {
				delete(h.clients, client.Id)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": client.Id})
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.Send <- data:
				default:
					// Slow consumer, drop the connection rather than block
					// the hub. Removing it here keeps this branch the only
					// place a registered client's channel is closed.
					close(client.Send)
					delete(h.clients, id)
					h.logger.Warn("Hub", "Dropped slow client", map[string]interface{}{"client_id": id})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes a progress event to every connected client, then relays it
// over Redis so sibling instances can do the same for theirs.
func (h *Hub) Broadcast(event ProgressEvent) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "indexing_progress",
		"data": event,
	})

	h.broadcast <- data

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"origin":  h.instanceId,
			"message": json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), "cluster_events", payload)
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			Origin  string          `json:"origin"`
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Bad cluster event payload", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.instanceId {
			continue
		}
		// Local delivery only; relayed events are never re-published.
		h.broadcast <- payload.Message
	}
}
