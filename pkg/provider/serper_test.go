package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSerperRequiresKey(t *testing.T) {
	c := NewSerper(SerperConfig{})
	if c.Configured() {
		t.Error("client without key should not report configured")
	}
	if _, err := c.Raw(context.Background(), "golang"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
	if _, err := c.Search(context.Background(), "golang"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestSerperRawForwardsKeyAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("X-API-KEY"); got != "secret" {
			t.Errorf("X-API-KEY = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"organic": [{"title": "Go", "link": "https://go.dev", "snippet": "The Go language"}]}`)
	}))
	defer srv.Close()

	c := NewSerper(SerperConfig{APIKey: "secret", Endpoint: srv.URL})
	raw, err := c.Raw(context.Background(), "golang")
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if len(raw) == 0 {
		t.Error("expected raw upstream body")
	}

	docs, err := c.Search(context.Background(), "golang")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(docs) != 1 || docs[0].Title != "Go" || docs[0].URL != "https://go.dev" {
		t.Errorf("docs = %+v", docs)
	}
}

func TestSerperUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"quota"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewSerper(SerperConfig{APIKey: "secret", Endpoint: srv.URL})
	if _, err := c.Raw(context.Background(), "golang"); err == nil {
		t.Error("expected error for upstream failure")
	}
}

func TestMeiliRequiresKey(t *testing.T) {
	c := NewMeili(MeiliConfig{})
	if _, err := c.Search(context.Background(), "golang", 10, 0); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("search err = %v, want ErrNotConfigured", err)
	}
	if _, err := c.AddDocuments(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("add err = %v, want ErrNotConfigured", err)
	}
}

func TestMeiliEndpointsAndHeaders(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		if got := r.Header.Get("X-Meili-API-Key"); got != "master" {
			t.Errorf("X-Meili-API-Key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"hits": []}`)
	}))
	defer srv.Close()

	c := NewMeili(MeiliConfig{Host: srv.URL, APIKey: "master"})

	if _, err := c.AddDocuments(context.Background(), []map[string]any{{"title": "t"}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := c.Search(context.Background(), "golang", 10, 0); err != nil {
		t.Fatalf("search: %v", err)
	}

	want := []string{"/indexes/pages/documents", "/indexes/pages/search"}
	if len(gotPaths) != 2 || gotPaths[0] != want[0] || gotPaths[1] != want[1] {
		t.Errorf("paths = %v, want %v", gotPaths, want)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(NewDDG(""))

	if got := r.Get(ProviderDuckDuckGo); got == nil {
		t.Error("registered provider not found")
	}
	if got := r.Get("missing"); got != nil {
		t.Error("unknown provider should be nil")
	}
	if names := r.Names(); len(names) != 1 || names[0] != ProviderDuckDuckGo {
		t.Errorf("names = %v", names)
	}
}
