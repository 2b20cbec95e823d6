// Package provider contains the remote search integrations: a keyless
// DuckDuckGo instant-answer client the resolver can call directly, plus the
// Serper and Meilisearch clients backing the server-mediated endpoints.
package provider

import (
	"context"
	"errors"

	"github.com/d1ks/d1ks/pkg/corpus"
)

// ErrNotConfigured is returned by clients that require a server-side key
// when none is configured. Handlers surface it as a configuration error;
// it never feeds the silent fallback path.
var ErrNotConfigured = errors.New("api key not configured")

// DefaultTimeoutSecs bounds every remote provider call. Expiry is treated
// as a fetch failure feeding the local fallback.
const DefaultTimeoutSecs = 10

// Provider performs a remote search and maps the response to documents.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]corpus.Document, error)
}

// Registry stores named providers.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds or replaces a provider by name.
func (r *Registry) Register(p Provider) {
	if r == nil || p == nil {
		return
	}
	if r.providers == nil {
		r.providers = make(map[string]Provider)
	}
	r.providers[p.Name()] = p
}

// Get returns a provider by name, or nil.
func (r *Registry) Get(name string) Provider {
	if r == nil {
		return nil
	}
	return r.providers[name]
}

// Names returns registered provider names.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.providers))
	for name := range r.providers {
		out = append(out, name)
	}
	return out
}
