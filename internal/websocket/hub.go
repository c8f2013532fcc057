package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Entities carried in Message.Entity.
const (
	EntityStore   = "store"
	EntityItem    = "shopping_item"
	EntityHistory = "purchase_history"
)

// Message is a change notification pushed to the clients of one family.
type Message struct {
	Type   string         `json:"type"`
	Entity string         `json:"entity"`
	Action string         `json:"action"`
	ID     int64          `json:"id,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

// NewMessage creates a Message with the Type field derived from entity and action.
func NewMessage(entity, action string, id int64, extra map[string]any) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		ID:     id,
		Extra:  extra,
	}
}

// Hub tracks connected clients grouped by family code.
type Hub struct {
	mu       sync.RWMutex
	families map[string]map[*Client]struct{}
	logger   *slog.Logger

	// OnCountChange, if set, is called with the total client count after
	// every register and unregister.
	OnCountChange func(n int)
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		families: make(map[string]map[*Client]struct{}),
		logger:   logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	set, ok := h.families[c.family]
	if !ok {
		set = make(map[*Client]struct{})
		h.families[c.family] = set
	}
	set[c] = struct{}{}
	n := h.countLocked()
	h.mu.Unlock()

	h.notify(n)
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	set := h.families[c.family]
	if _, ok := set[c]; ok {
		delete(set, c)
		close(c.send)
		if len(set) == 0 {
			delete(h.families, c.family)
		}
	}
	n := h.countLocked()
	h.mu.Unlock()

	h.notify(n)
}

// Broadcast sends msg to every client of the given family. Clients with a
// full buffer miss the message rather than block the sender.
func (h *Hub) Broadcast(family string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.families[family] {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("client buffer full, dropping message", "family_code", family, "type", msg.Type)
		}
	}
}

// ClientCount returns the number of connected clients across all families.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.countLocked()
}

// FamilyCount returns the number of connected clients for one family.
func (h *Hub) FamilyCount(family string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.families[family])
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.families {
		n += len(set)
	}
	return n
}

func (h *Hub) notify(n int) {
	if h.OnCountChange != nil {
		h.OnCountChange(n)
	}
}
