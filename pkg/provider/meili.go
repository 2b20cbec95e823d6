package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	meiliDefaultHost  = "http://localhost:7700"
	meiliDefaultIndex = "pages"
)

// MeiliConfig configures the full-text index client.
type MeiliConfig struct {
	Host   string
	APIKey string
	Index  string
}

// Meili is a client for a self-hosted Meilisearch index. Both indexing and
// querying require the server-side access key; its absence is a
// configuration error, never a silent fallback.
type Meili struct {
	http   *resty.Client
	host   string
	apiKey string
	index  string
}

// NewMeili creates the client with defaults for missing host/index values.
func NewMeili(cfg MeiliConfig) *Meili {
	host := strings.TrimRight(cfg.Host, "/")
	if host == "" {
		host = meiliDefaultHost
	}
	index := cfg.Index
	if index == "" {
		index = meiliDefaultIndex
	}
	client := resty.New().
		SetHeader("User-Agent", "d1ks/1.0").
		SetTimeout(DefaultTimeoutSecs * time.Second)
	return &Meili{
		http:   client,
		host:   host,
		apiKey: cfg.APIKey,
		index:  index,
	}
}

// Configured reports whether the access key is present.
func (c *Meili) Configured() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// AddDocuments submits documents to the index and returns the index
// service's raw JSON response (a task acknowledgement).
func (c *Meili) AddDocuments(ctx context.Context, docs []map[string]any) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/indexes/%s/documents", c.host, c.index)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Meili-API-Key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(docs).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("indexing documents: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("index service status %d: %s", resp.StatusCode(), resp.String())
	}
	return json.RawMessage(resp.Body()), nil
}

// Search queries the index and returns the raw JSON response. limit and
// offset follow the index service's pagination semantics.
func (c *Meili) Search(ctx context.Context, query string, limit, offset int) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/indexes/%s/search", c.host, c.index)
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Meili-API-Key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"q": query, "limit": limit, "offset": offset}).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("querying index service: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("index service status %d: %s", resp.StatusCode(), resp.String())
	}
	return json.RawMessage(resp.Body()), nil
}
