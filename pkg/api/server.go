// Package api implements the HTTP surface: search resolution, suggestions,
// the keyed provider proxy, full-text index passthrough, client state
// (history, settings, theme) and the firehose WebSocket stream.
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/d1ks/d1ks/pkg/log"
	"github.com/d1ks/d1ks/pkg/provider"
	"github.com/d1ks/d1ks/pkg/realtime"
	"github.com/d1ks/d1ks/pkg/resolver"
	"github.com/d1ks/d1ks/pkg/store"
)

type Server struct {
	mu      sync.RWMutex
	session *resolver.Session
	serper  *provider.Serper
	meili   *provider.Meili
	hub     *realtime.Hub
	store   *store.Store
	logger  *log.Logger
}

// NewServer wires the handlers to their collaborators. store may be nil,
// in which case theme reads return the default and theme writes fail with
// a service error.
func NewServer(session *resolver.Session, serper *provider.Serper, meili *provider.Meili, hub *realtime.Hub, st *store.Store) *Server {
	return &Server{
		session: session,
		serper:  serper,
		meili:   meili,
		hub:     hub,
		store:   st,
		logger:  log.ForService("api"),
	}
}

// Reconfigure swaps the upstream clients and the resolver's remote
// provider after a configuration reload. In-flight requests keep the
// clients they started with.
func (s *Server) Reconfigure(serper *provider.Serper, meili *provider.Meili, remote provider.Provider) {
	s.mu.Lock()
	s.serper = serper
	s.meili = meili
	s.mu.Unlock()
	s.session.SetProvider(remote)
}

func (s *Server) serperClient() *provider.Serper {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.serper
}

func (s *Server) meiliClient() *provider.Meili {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meili
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
