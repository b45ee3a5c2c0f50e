package sse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/RelicWatch_Go/internal/domain"
)

// Event is one message on an overlay stream. Reward events carry the
// snapshot and its best priced slot; the connected event carries the
// client's id and filters.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp int64                  `json:"timestamp"`
	Snapshot  *domain.RewardSnapshot `json:"snapshot,omitempty"`
	Best      *domain.PricedItem     `json:"best,omitempty"`
	ClientID  string                 `json:"client_id,omitempty"`
	Filters   []string               `json:"filters,omitempty"`
}

// RewardEvent wraps a snapshot in the event type matching its finality
func RewardEvent(snap domain.RewardSnapshot) Event {
	eventType := EventTypeSnapshot
	if snap.Final {
		eventType = EventTypeFinal
	}
	ts := snap.CapturedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: ts.Unix(),
		Snapshot:  &snap,
		Best:      snap.Best(),
	}
}

// Client is one overlay subscription
type Client struct {
	ID     string
	events chan Event
	filter map[string]bool // nil means every event type
}

// Events is closed when the client unsubscribes or the hub closes
func (c *Client) Events() <-chan Event { return c.events }

func (c *Client) wants(eventType string) bool {
	return c.filter == nil || c.filter[eventType]
}

// Hub fans reward snapshots out to overlay clients. It remembers the most
// recent reward event so an overlay that connects mid-session starts from
// the current screen instead of a blank one.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	latest  *Event
	closed  bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// Subscribe registers a client interested in eventTypes (all types when
// empty). The latest reward event, if any and wanted, is queued first.
func (h *Hub) Subscribe(eventTypes []string) *Client {
	client := &Client{
		ID:     uuid.New().String(),
		events: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		client.filter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.filter[t] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(client.events)
		return client
	}
	if h.latest != nil && client.wants(h.latest.Type) {
		client.events <- *h.latest
	}
	h.clients[client.ID] = client
	return client
}

// Unsubscribe removes the client and closes its channel
func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(client.events)
	}
}

// Publish sends the snapshot to every interested client. A client whose
// buffer is full misses the event.
func (h *Hub) Publish(snap domain.RewardSnapshot) {
	event := RewardEvent(snap)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest = &event
	for _, client := range h.clients {
		if !client.wants(event.Type) {
			continue
		}
		select {
		case client.events <- event:
		default:
			slog.Warn(LogMsgEventDropped,
				"client_id", client.ID,
				"type", event.Type,
				"session_id", snap.SessionID)
		}
	}
}

// Close closes every client channel; later subscriptions are closed at once
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, client := range h.clients {
		close(client.events)
		delete(h.clients, id)
	}
}

// Latest returns the most recently published reward event
func (h *Hub) Latest() (Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return Event{}, false
	}
	return *h.latest, true
}

// ClientCount returns the number of subscribed clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// WriteSSE encodes the event as one server-sent-events frame
func (e Event) WriteSSE(buf *bytes.Buffer) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodeEvent, err)
	}
	fmt.Fprintf(buf, "id: %s\nevent: %s\ndata: %s\n\n", e.ID, e.Type, data)
	return nil
}
