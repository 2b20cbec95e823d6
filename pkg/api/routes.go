package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// API routes with method-specific routing
	mux.HandleFunc("GET /api/health", s.HandleHealth)
	mux.HandleFunc("GET /api/search", s.HandleSearch)
	mux.HandleFunc("GET /api/suggest", s.HandleSuggest)
	mux.HandleFunc("POST /api/search/proxy", s.HandleSearchProxy)
	mux.HandleFunc("POST /api/index/add", s.HandleIndexAdd)
	mux.HandleFunc("POST /api/search/meili", s.HandleMeiliSearch)
	mux.HandleFunc("GET /api/history", s.HandleHistory)
	mux.HandleFunc("DELETE /api/history", s.HandleClearHistory)
	mux.HandleFunc("GET /api/settings", s.HandleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.HandleUpdateSettings)
	mux.HandleFunc("GET /api/theme", s.HandleGetTheme)
	mux.HandleFunc("PUT /api/theme", s.HandleSetTheme)
	mux.HandleFunc("GET /api/firehose/ws", s.HandleFirehoseWS)
}
