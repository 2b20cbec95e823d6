// Package realtime provides a lightweight in-process publish/subscribe hub
// used to fan out search events to multiple listeners (e.g. WebSocket
// sessions on the firehose endpoint).
//
// Delivery is best effort: slow listeners drop events rather than
// backpressuring resolution. There is no persistence or replay; the stream
// is ephemeral.
package realtime

import (
	"sync"
	"time"
)

// SearchEvent describes one completed search resolution.
type SearchEvent struct {
	RequestID string    `json:"request_id"`
	Query     string    `json:"query"`
	Page      int       `json:"page"`
	Source    string    `json:"source"`
	Count     int       `json:"count"`
	At        time.Time `json:"at"`
}

// Hub is an in-memory fan-out dispatcher. Each registered listener receives
// events via its own buffered channel; when a listener's buffer is full an
// event is dropped for that listener only. Safe for concurrent use.
type Hub struct {
	mu        sync.RWMutex
	listeners map[uint64]chan SearchEvent
	nextID    uint64
	bufSize   int
}

// NewHub constructs a hub with the given per-listener buffer size.
// Non-positive sizes default to 32.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 32
	}
	return &Hub{
		listeners: make(map[uint64]chan SearchEvent),
		bufSize:   bufSize,
	}
}

// Register adds a listener and returns its id and receive channel. Callers
// must Unregister(id) to release resources.
func (h *Hub) Register() (uint64, <-chan SearchEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	ch := make(chan SearchEvent, h.bufSize)
	h.listeners[id] = ch
	return id, ch
}

// Unregister removes the listener with the given id and closes its channel.
// Unknown ids are ignored.
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.listeners[id]; ok {
		delete(h.listeners, id)
		close(ch)
	}
}

// Broadcast delivers event to all registered listeners, best effort.
func (h *Hub) Broadcast(event SearchEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.listeners {
		select {
		case ch <- event:
		default:
			// Drop for slow listener.
		}
	}
}

// Size returns the current number of active listeners.
func (h *Hub) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
