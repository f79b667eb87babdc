package events

import (
	"encoding/json"
	"sync"

	"github.com/hopeIsCo0l/AnuTest/pkg/models"

	"go.uber.org/zap"
)

const EventStateChanged = "state_changed"

// Event is one Server-Sent Event frame.
type Event struct {
	EventType string
	Data      string
}

type Client struct {
	ID     string
	Actor  string
	Events chan Event
}

type StateChanged struct {
	Operation      string   `json:"operation"`
	TransactionIDs []string `json:"transaction_ids"`
}

// Hub fans committed state changes out to connected clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		log:     log,
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.log.Debug("SSE client registered", zap.String("client_id", client.ID), zap.Int("total", len(h.clients)))
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		h.log.Debug("SSE client unregistered", zap.String("client_id", clientID), zap.Int("total", len(h.clients)))
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast never blocks; clients with a full buffer miss the event.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- event:
		default:
			h.log.Warn("SSE client buffer full, skipping event", zap.String("client_id", client.ID))
		}
	}
}

// OnCommit has the shape of repository.CommitHook.
func (h *Hub) OnCommit(operation string, appended []models.Transaction) {
	ids := make([]string, 0, len(appended))
	for _, entry := range appended {
		ids = append(ids, entry.ID)
	}
	data, err := json.Marshal(StateChanged{Operation: operation, TransactionIDs: ids})
	if err != nil {
		h.log.Error("Unable to encode state change", zap.Error(err))
		return
	}
	h.Broadcast(Event{EventType: EventStateChanged, Data: string(data)})
}
