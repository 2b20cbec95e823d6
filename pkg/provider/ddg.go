package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/d1ks/d1ks/pkg/corpus"
)

// ProviderDuckDuckGo is the registry name of the instant-answer provider.
const ProviderDuckDuckGo = "duckduckgo"

const ddgDefaultBaseURL = "https://api.duckduckgo.com/"

// maxDDGResults caps the documents extracted from one instant-answer
// response.
const maxDDGResults = 100

// DDG queries the DuckDuckGo instant-answer API. No API key is required.
type DDG struct {
	baseURL string
	client  *http.Client
}

// NewDDG creates the instant-answer provider. baseURL overrides the public
// endpoint; pass "" for the default.
func NewDDG(baseURL string) *DDG {
	if baseURL == "" {
		baseURL = ddgDefaultBaseURL
	}
	return &DDG{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultTimeoutSecs * time.Second},
	}
}

// Name implements Provider.
func (p *DDG) Name() string {
	return ProviderDuckDuckGo
}

type ddgTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	Heading       string     `json:"Heading"`
	AbstractText  string     `json:"AbstractText"`
	AbstractURL   string     `json:"AbstractURL"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

// Search implements Provider. The abstract, when present, becomes the first
// document; related topics (including nested sub-topics) with both a URL and
// text become documents with an empty description. The list is capped at 100
// entries.
func (p *DDG) Search(ctx context.Context, query string) ([]corpus.Document, error) {
	endpoint := fmt.Sprintf("%s?q=%s&format=json&no_redirect=1&no_html=1&skip_disambig=1",
		p.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building instant-answer request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("instant-answer request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("instant-answer status %d: %s", resp.StatusCode, string(body))
	}

	var payload ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing instant-answer response: %w", err)
	}

	return p.documents(query, payload), nil
}

func (p *DDG) documents(query string, payload ddgResponse) []corpus.Document {
	docs := make([]corpus.Document, 0)

	if payload.AbstractURL != "" || payload.AbstractText != "" {
		title := payload.Heading
		if title == "" {
			title = query
		}
		abstractURL := payload.AbstractURL
		if abstractURL == "" {
			abstractURL = "#"
		}
		docs = append(docs, corpus.Document{
			Title:       title,
			URL:         abstractURL,
			Description: payload.AbstractText,
		})
	}

	for _, topic := range flattenTopics(payload.RelatedTopics) {
		if topic.FirstURL == "" || topic.Text == "" {
			continue
		}
		docs = append(docs, corpus.Document{Title: topic.Text, URL: topic.FirstURL})
		if len(docs) >= maxDDGResults {
			break
		}
	}

	if len(docs) > maxDDGResults {
		docs = docs[:maxDDGResults]
	}
	return docs
}

// flattenTopics expands topic groups: a topic carrying nested Topics is a
// category container and contributes its children instead of itself.
func flattenTopics(topics []ddgTopic) []ddgTopic {
	var out []ddgTopic
	for _, topic := range topics {
		if len(topic.Topics) > 0 {
			out = append(out, flattenTopics(topic.Topics)...)
			continue
		}
		out = append(out, topic)
	}
	return out
}

// compile-time interface check
var _ Provider = (*DDG)(nil)
