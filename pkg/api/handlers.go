package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/d1ks/d1ks/pkg/corpus"
	"github.com/d1ks/d1ks/pkg/paginate"
	"github.com/d1ks/d1ks/pkg/provider"
	"github.com/d1ks/d1ks/pkg/resolver"
	"github.com/d1ks/d1ks/pkg/store"
	"github.com/d1ks/d1ks/pkg/suggest"
	"github.com/d1ks/d1ks/pkg/version"
)

const maxPageSize = 100

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}

// HandleSearch resolves a query and returns one page of results with the
// navigation window. Provider failures degrade to the local corpus and are
// reflected in the source field, never in the status code.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query", "Query parameter 'q' is required")
		return
	}

	page := parseIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := parseIntParam(r, "limit", s.session.Settings().ResultsPerPage)
	if limit < 1 {
		limit = s.session.Settings().ResultsPerPage
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	result, err := s.session.Resolve(r.Context(), query, page)
	if err != nil {
		if errors.Is(err, resolver.ErrEmptyQuery) {
			s.writeError(w, http.StatusBadRequest, "Missing query", "Query parameter 'q' is required")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}

	paged := paginate.Paginate(result.Documents, page, limit)

	response := SearchResponse{
		Query:      result.Query,
		Page:       page,
		Limit:      limit,
		TotalPages: paged.TotalPages,
		Results:    paged.Items,
		Count:      len(paged.Items),
		Source:     string(result.Source),
		RequestID:  result.RequestID,
		Nav:        paginate.Window(page, paged.TotalPages),
	}

	s.writeJSON(w, http.StatusOK, response)
}

// HandleSuggest returns typed suggestions for the partial query in 'q'.
// An empty parameter yields recent searches, matching input-focus behavior.
func (s *Server) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	titles := corpus.Titles(s.session.Corpus(), len(s.session.Corpus()))
	suggestions := suggest.Suggest(query, s.session.History(), titles)
	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}

	response := SuggestResponse{
		Query:       query,
		Suggestions: suggestions,
		Count:       len(suggestions),
	}

	s.writeJSON(w, http.StatusOK, response)
}

type proxyRequest struct {
	Query string `json:"q"`
}

// HandleSearchProxy forwards a query to the keyed search provider and
// relays the raw upstream response. The API key never leaves the server.
func (s *Server) HandleSearchProxy(w http.ResponseWriter, r *http.Request) {
	var req proxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query", "Request body must include a 'q' field")
		return
	}

	client := s.serperClient()
	raw, err := client.Raw(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, provider.ErrNotConfigured) {
			s.writeError(w, http.StatusInternalServerError, "Server API key not configured", "Set the provider API key in the configuration or environment")
			return
		}
		s.logger.Errorf("proxying search: %v", err)
		s.writeError(w, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}

	s.writeRaw(w, raw)
}

type indexAddRequest struct {
	Documents []map[string]any `json:"documents"`
}

// HandleIndexAdd submits documents to the full-text index.
func (s *Server) HandleIndexAdd(w http.ResponseWriter, r *http.Request) {
	var req indexAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Documents) == 0 {
		s.writeError(w, http.StatusBadRequest, "Missing documents", "Request body must include a non-empty 'documents' array")
		return
	}

	client := s.meiliClient()
	raw, err := client.AddDocuments(r.Context(), req.Documents)
	if err != nil {
		if errors.Is(err, provider.ErrNotConfigured) {
			s.writeError(w, http.StatusInternalServerError, "Server API key not configured", "Set the index service API key in the configuration or environment")
			return
		}
		s.logger.Errorf("adding index documents: %v", err)
		s.writeError(w, http.StatusInternalServerError, "Indexing failed", err.Error())
		return
	}

	s.writeRaw(w, raw)
}

type meiliSearchRequest struct {
	Query  string `json:"q"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// HandleMeiliSearch queries the full-text index and relays its response.
func (s *Server) HandleMeiliSearch(w http.ResponseWriter, r *http.Request) {
	var req meiliSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		s.writeError(w, http.StatusBadRequest, "Missing query", "Request body must include a 'q' field")
		return
	}
	if req.Limit <= 0 {
		req.Limit = s.session.Settings().ResultsPerPage
	}
	if req.Limit > maxPageSize {
		req.Limit = maxPageSize
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	client := s.meiliClient()
	raw, err := client.Search(r.Context(), req.Query, req.Limit, req.Offset)
	if err != nil {
		if errors.Is(err, provider.ErrNotConfigured) {
			s.writeError(w, http.StatusInternalServerError, "Server API key not configured", "Set the index service API key in the configuration or environment")
			return
		}
		s.logger.Errorf("querying index: %v", err)
		s.writeError(w, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}

	s.writeRaw(w, raw)
}

func (s *Server) HandleHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.session.History()

	response := HistoryResponse{
		History: entries,
		Count:   len(entries),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.session.ClearHistory(); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to clear history", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, StatusResponse{Status: "cleared"})
}

func (s *Server) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Settings())
}

func (s *Server) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings store.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid settings", err.Error())
		return
	}

	if err := s.session.UpdateSettings(settings); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to save settings", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, s.session.Settings())
}

func (s *Server) HandleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme := store.ThemeLight
	if s.store != nil {
		var err error
		theme, err = s.store.Theme()
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, "Failed to read theme", err.Error())
			return
		}
	}

	s.writeJSON(w, http.StatusOK, ThemeResponse{Theme: theme})
}

func (s *Server) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid theme", err.Error())
		return
	}
	if req.Theme != store.ThemeDark && req.Theme != store.ThemeLight {
		s.writeError(w, http.StatusBadRequest, "Invalid theme", "Theme must be 'dark' or 'light'")
		return
	}
	if s.store == nil {
		s.writeError(w, http.StatusInternalServerError, "State store unavailable", "No state database is configured")
		return
	}

	if err := s.store.SetTheme(req.Theme); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to save theme", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ThemeResponse{Theme: req.Theme})
}

// writeRaw relays an upstream JSON body unchanged.
func (s *Server) writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		s.logger.Errorf("writing upstream response: %v", err)
	}
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
