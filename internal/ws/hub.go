package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/samphillips38/bloom-web-sub001/internal/metrics"
)

// Message is a sync notification pushed to open tabs of a browser
// session, e.g. after a stats refresh or a subscription change.
type Message struct {
	Type  string         `json:"type"`
	Extra map[string]any `json:"extra,omitempty"`
}

const (
	TypeStatsUpdated        = "stats_updated"
	TypeSubscriptionUpdated = "subscription_updated"
)

// Hub maintains the set of active WebSocket clients, grouped by local
// session id so one browser's refresh never pings another user's tabs.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewHub creates a new Hub. m may be nil.
func NewHub(logger *slog.Logger, m *metrics.Metrics) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
		metrics: m,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.WSClients.Inc()
	}
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		if h.metrics != nil {
			h.metrics.WSClients.Dec()
		}
	}
	h.mu.Unlock()
}

// BroadcastSession sends a message to every tab of one browser session.
func (h *Hub) BroadcastSession(sessionID int64, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if c.sessionID != sessionID {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client buffer full — drop message to avoid blocking
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
