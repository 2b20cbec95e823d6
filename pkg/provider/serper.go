package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/d1ks/d1ks/pkg/corpus"
)

// ProviderSerper is the registry name of the keyed search provider.
const ProviderSerper = "serper"

const serperDefaultEndpoint = "https://google.serper.dev/search"

// SerperConfig configures the keyed search client.
type SerperConfig struct {
	APIKey   string
	Endpoint string
}

// Serper is a client for a commercial search API. The API key is attached
// server-side; browsers never see it.
type Serper struct {
	http     *resty.Client
	apiKey   string
	endpoint string
}

// NewSerper creates the client. A missing key is allowed at construction
// time; calls return ErrNotConfigured until one is set.
func NewSerper(cfg SerperConfig) *Serper {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = serperDefaultEndpoint
	}
	client := resty.New().
		SetHeader("User-Agent", "d1ks/1.0").
		SetTimeout(DefaultTimeoutSecs * time.Second)
	return &Serper{
		http:     client,
		apiKey:   cfg.APIKey,
		endpoint: endpoint,
	}
}

// Name implements Provider.
func (c *Serper) Name() string {
	return ProviderSerper
}

// Configured reports whether an API key is present.
func (c *Serper) Configured() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// Raw forwards query upstream and returns the provider's raw JSON body.
// This is what the proxy endpoint hands back to the browser.
func (c *Serper) Raw(ctx context.Context, query string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{"q": query}).
		Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("querying search provider: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search provider status %d: %s", resp.StatusCode(), resp.String())
	}
	return json.RawMessage(resp.Body()), nil
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search implements Provider by mapping the provider's organic results to
// documents.
func (c *Serper) Search(ctx context.Context, query string) ([]corpus.Document, error) {
	raw, err := c.Raw(ctx, query)
	if err != nil {
		return nil, err
	}

	var payload serperResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parsing search provider response: %w", err)
	}

	docs := make([]corpus.Document, 0, len(payload.Organic))
	for _, entry := range payload.Organic {
		docs = append(docs, corpus.Document{
			Title:       strings.TrimSpace(entry.Title),
			URL:         entry.Link,
			Description: strings.TrimSpace(entry.Snippet),
		})
	}
	return docs, nil
}

var _ Provider = (*Serper)(nil)
