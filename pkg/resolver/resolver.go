// Package resolver orchestrates search resolution: result cache lookup,
// remote provider fetch, and the local corpus fallback. Resolution never
// surfaces a provider failure to the caller; it always yields a (possibly
// empty) document list.
//
// A Session is the explicit context object holding the cache, history,
// settings and working set for one user session. It is safe for concurrent
// use: an internal mutex serializes access to the cache and history, and a
// per-request generation counter keeps stale in-flight responses from
// overwriting newer results.
package resolver

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/d1ks/d1ks/pkg/cache"
	"github.com/d1ks/d1ks/pkg/corpus"
	"github.com/d1ks/d1ks/pkg/history"
	"github.com/d1ks/d1ks/pkg/log"
	"github.com/d1ks/d1ks/pkg/provider"
	"github.com/d1ks/d1ks/pkg/realtime"
	"github.com/d1ks/d1ks/pkg/store"
)

// ErrEmptyQuery is returned for empty or whitespace-only queries. Callers
// surface it to the user directly; resolution is never attempted.
var ErrEmptyQuery = errors.New("missing query")

// Source identifies where a result set came from.
type Source string

const (
	// SourceCache marks results served from the result cache.
	SourceCache Source = "cache"
	// SourceRemote marks results fetched from a remote provider.
	SourceRemote Source = "remote"
	// SourceLocal marks results filtered from the fallback corpus.
	SourceLocal Source = "local"
)

// Result is one resolved result set.
type Result struct {
	Query      string
	Page       int
	Documents  []corpus.Document
	Source     Source
	RequestID  string
	Generation uint64
}

// Options configures a Session. Zero-value fields get defaults: the demo
// corpus, a 50-entry cache, an empty history, default settings and a 10s
// remote timeout. Provider, Store and Hub may be nil.
type Options struct {
	Provider      provider.Provider
	Corpus        []corpus.Document
	Cache         *cache.Cache
	History       *history.History
	Settings      store.Settings
	Store         *store.Store
	Hub           *realtime.Hub
	RemoteTimeout time.Duration
}

// Session owns the per-session search state.
type Session struct {
	mu       sync.Mutex
	provider provider.Provider
	corpus   []corpus.Document
	cache    *cache.Cache
	history  *history.History
	settings store.Settings
	st       *store.Store
	hub      *realtime.Hub
	timeout  time.Duration
	logger   *log.Logger

	generation uint64
	lastGen    uint64
	last       *Result
}

// NewSession creates a session from opts, filling defaults for missing
// pieces.
func NewSession(opts Options) *Session {
	docs := opts.Corpus
	if docs == nil {
		docs = corpus.Default()
	}
	c := opts.Cache
	if c == nil {
		c = cache.New(0)
	}
	h := opts.History
	if h == nil {
		h = history.New()
	}
	settings := opts.Settings
	if settings == (store.Settings{}) {
		settings = store.DefaultSettings()
	}
	timeout := opts.RemoteTimeout
	if timeout <= 0 {
		timeout = provider.DefaultTimeoutSecs * time.Second
	}

	return &Session{
		provider: opts.Provider,
		corpus:   docs,
		cache:    c,
		history:  h,
		settings: settings,
		st:       opts.Store,
		hub:      opts.Hub,
		timeout:  timeout,
		logger:   log.ForService("resolver"),
	}
}

// Resolve obtains documents for query at page. The cache is consulted
// first; on a miss the remote provider is attempted and any failure or
// empty result degrades silently to local corpus filtering. The result is
// cached under the page-qualified key before returning. Successful
// resolution appends the query to the search history (subject to the
// saveHistory setting) and publishes a firehose event.
func (s *Session) Resolve(ctx context.Context, query string, page int) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	key := cache.Key(query, page)
	entry, hit := s.cache.Get(key)
	s.mu.Unlock()

	result := &Result{
		Query:      query,
		Page:       page,
		RequestID:  uuid.New().String(),
		Generation: gen,
	}

	if hit {
		result.Documents = entry.Documents
		result.Source = SourceCache
	} else {
		docs, source := s.fetch(ctx, query)
		result.Documents = docs
		result.Source = source

		s.mu.Lock()
		s.cache.Put(key, cache.Entry{Query: query, Documents: docs})
		s.mu.Unlock()
	}

	if result.Documents == nil {
		result.Documents = []corpus.Document{}
	}

	s.recordHistory(query)
	s.commit(result)

	if s.hub != nil {
		s.hub.Broadcast(realtime.SearchEvent{
			RequestID: result.RequestID,
			Query:     result.Query,
			Page:      result.Page,
			Source:    string(result.Source),
			Count:     len(result.Documents),
			At:        time.Now().UTC(),
		})
	}

	s.logger.Debugf("resolved %q page %d: %d documents from %s", query, page, len(result.Documents), result.Source)
	return result, nil
}

// fetch attempts the remote provider and falls back to local filtering on
// any failure or an empty remote result list.
func (s *Session) fetch(ctx context.Context, query string) ([]corpus.Document, Source) {
	if p := s.remote(); p != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		docs, err := p.Search(fetchCtx, query)
		cancel()
		if err != nil {
			s.logger.Warnf("remote search failed, falling back to local corpus: %v", err)
		} else if len(docs) > 0 {
			return docs, SourceRemote
		}
	}
	return corpus.Filter(s.corpus, query), SourceLocal
}

// commit updates the last-results working set unless a newer generation has
// already been committed (a stale in-flight response loses).
func (s *Session) commit(result *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result.Generation < s.lastGen {
		s.logger.Debugf("dropping stale result for %q (generation %d < %d)", result.Query, result.Generation, s.lastGen)
		return
	}
	s.lastGen = result.Generation
	s.last = result
}

func (s *Session) recordHistory(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settings.SaveHistory {
		return
	}
	if !s.history.Add(query) {
		return
	}
	s.persistHistoryLocked()
}

func (s *Session) persistHistoryLocked() {
	if s.st == nil {
		return
	}
	if err := s.st.SaveHistory(s.history.Entries()); err != nil {
		s.logger.Warnf("persisting search history: %v", err)
	}
}

// Last returns the most recently committed result, or nil before the first
// resolution.
func (s *Session) Last() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// History returns the session's search history, newest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

// ClearHistory removes all history entries and their persisted copy.
func (s *Session) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
	if s.st == nil {
		return nil
	}
	return s.st.SaveHistory(nil)
}

// Settings returns the current settings.
func (s *Session) Settings() store.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the settings and persists them. Disabling history
// saving clears the existing history, matching the settings dialog's
// behavior.
func (s *Session) UpdateSettings(settings store.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if settings.ResultsPerPage <= 0 {
		settings.ResultsPerPage = store.DefaultSettings().ResultsPerPage
	}
	clearHistory := s.settings.SaveHistory && !settings.SaveHistory
	s.settings = settings

	if clearHistory {
		s.history.Clear()
		s.persistHistoryLocked()
	}
	if s.st == nil {
		return nil
	}
	return s.st.SaveSettings(settings)
}

// SetProvider swaps the remote provider, e.g. after a configuration reload.
func (s *Session) SetProvider(p provider.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = p
}

func (s *Session) remote() provider.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider
}

// Corpus returns the session's fallback corpus.
func (s *Session) Corpus() []corpus.Document {
	return s.corpus
}

