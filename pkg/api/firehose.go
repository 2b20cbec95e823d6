package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/d1ks/d1ks/pkg/realtime"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is CORS-open; the firehose stream follows suit.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsInitMessage struct {
	Type      string `json:"type"`
	Listeners int    `json:"listeners"`
}

type wsSearchMessage struct {
	Type  string               `json:"type"`
	Event realtime.SearchEvent `json:"event"`
}

// HandleFirehoseWS upgrades the connection and streams search events as
// they happen. The first frame is an init message; each subsequent frame
// carries one event. Slow consumers miss events rather than slowing
// resolution down.
func (s *Server) HandleFirehoseWS(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		s.writeError(w, http.StatusServiceUnavailable, "Firehose unavailable", "No event hub is configured")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		s.logger.Debugf("websocket upgrade failed: %v", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	id, events := s.hub.Register()
	defer s.hub.Unregister(id)

	init := wsInitMessage{Type: "init", Listeners: s.hub.Size()}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(init); err != nil {
		s.logger.Debugf("writing firehose init: %v", err)
		return
	}

	// Reader goroutine: we never expect client frames, but reading is how
	// close and ping/pong control frames get processed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(wsSearchMessage{Type: "search", Event: event}); err != nil {
				s.logger.Debugf("writing firehose event: %v", err)
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
