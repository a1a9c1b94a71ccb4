// Package sse implements Server-Sent Events for pushing cart, comparison,
// and catalog change notifications to connected clients.
package sse

import (
	"time"

	"github.com/shopsavvy/catalog-server/internal/domain"
)

// EventType represents the type of SSE event.
type EventType string

const (
	// EventCartUpdated is sent after any mutation of a session's cart.
	EventCartUpdated EventType = "cart.updated"
	// EventCompareUpdated is sent after any mutation of a session's
	// comparison set.
	EventCompareUpdated EventType = "compare.updated"
	// EventCatalogChanged signals that the catalog file changed on disk.
	// The running catalog is not reloaded; clients may want to prompt for
	// a refresh once the server restarts.
	EventCatalogChanged EventType = "catalog.changed"
	// EventHeartbeat is a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// SessionID scopes delivery: when set, only the owning session's
	// clients receive the event. Empty means broadcast to all.
	SessionID string `json:"-"`
}

// CartEventData is the payload for cart.updated events.
type CartEventData struct {
	Lines         []domain.CartLine `json:"lines"`
	TotalQuantity int               `json:"total_quantity"`
}

// CompareEventData is the payload for compare.updated events.
type CompareEventData struct {
	ProductIDs []string `json:"product_ids"`
}

// CatalogChangedEventData is the payload for catalog.changed events.
type CatalogChangedEventData struct {
	Path      string    `json:"path"`
	ChangedAt time.Time `json:"changed_at"`
}

// HeartbeatEventData is the payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewCartUpdatedEvent creates a cart.updated event for one session.
func NewCartUpdatedEvent(sessionID string, lines []domain.CartLine) Event {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return Event{
		Type:      EventCartUpdated,
		SessionID: sessionID,
		Data:      CartEventData{Lines: lines, TotalQuantity: total},
		Timestamp: time.Now(),
	}
}

// NewCompareUpdatedEvent creates a compare.updated event for one session.
func NewCompareUpdatedEvent(sessionID string, productIDs []string) Event {
	return Event{
		Type:      EventCompareUpdated,
		SessionID: sessionID,
		Data:      CompareEventData{ProductIDs: productIDs},
		Timestamp: time.Now(),
	}
}

// NewCatalogChangedEvent creates a catalog.changed broadcast event.
func NewCatalogChangedEvent(path string) Event {
	now := time.Now()
	return Event{
		Type:      EventCatalogChanged,
		Data:      CatalogChangedEventData{Path: path, ChangedAt: now},
		Timestamp: now,
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Data:      HeartbeatEventData{ServerTime: now},
		Timestamp: now,
	}
}
