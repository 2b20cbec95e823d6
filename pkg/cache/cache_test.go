package cache

import (
	"fmt"
	"testing"

	"github.com/d1ks/d1ks/pkg/corpus"
)

func TestKey(t *testing.T) {
	tests := []struct {
		query string
		page  int
		want  string
	}{
		{"react", 1, "react_1"},
		{"golang http server", 3, "golang http server_3"},
		{"", 1, "_1"},
	}

	for _, tt := range tests {
		if got := Key(tt.query, tt.page); got != tt.want {
			t.Errorf("Key(%q, %d) = %q, want %q", tt.query, tt.page, got, tt.want)
		}
	}
}

func TestGetPut(t *testing.T) {
	c := New(50)

	entry := Entry{Query: "react", Documents: []corpus.Document{{Title: "React"}}}
	c.Put(Key("react", 1), entry)

	got, ok := c.Get("react_1")
	if !ok {
		t.Fatal("expected cache hit for react_1")
	}
	if got.Query != "react" || len(got.Documents) != 1 {
		t.Errorf("unexpected entry: %+v", got)
	}

	if _, ok := c.Get("react_2"); ok {
		t.Error("unexpected hit for a key that was never stored")
	}
}

func TestFIFOEviction(t *testing.T) {
	c := New(50)

	c.Put(Key("react", 1), Entry{Query: "react"})
	for i := 0; i < 50; i++ {
		c.Put(Key(fmt.Sprintf("query-%d", i), 1), Entry{Query: fmt.Sprintf("query-%d", i)})
	}

	if c.Len() != 50 {
		t.Errorf("cache size = %d, want 50", c.Len())
	}
	if _, ok := c.Get("react_1"); ok {
		t.Error("react_1 should have been evicted as the earliest-inserted entry")
	}
	// The second-inserted entry survives: only one eviction happened.
	if _, ok := c.Get("query-0_1"); !ok {
		t.Error("query-0_1 should still be cached")
	}
	if _, ok := c.Get("query-49_1"); !ok {
		t.Error("most recent entry should be cached")
	}
}

func TestEvictionIgnoresReads(t *testing.T) {
	c := New(2)
	c.Put("a_1", Entry{Query: "a"})
	c.Put("b_1", Entry{Query: "b"})

	// Touch the oldest entry; FIFO must ignore recency of access.
	if _, ok := c.Get("a_1"); !ok {
		t.Fatal("expected hit for a_1")
	}

	c.Put("c_1", Entry{Query: "c"})
	if _, ok := c.Get("a_1"); ok {
		t.Error("a_1 should be evicted first despite the recent read")
	}
	if _, ok := c.Get("b_1"); !ok {
		t.Error("b_1 should survive")
	}
}

func TestPutExistingKeyKeepsPosition(t *testing.T) {
	c := New(2)
	c.Put("a_1", Entry{Query: "a"})
	c.Put("b_1", Entry{Query: "b"})

	// Overwrite does not refresh a's queue position.
	c.Put("a_1", Entry{Query: "a", Documents: []corpus.Document{{Title: "fresh"}}})
	if c.Len() != 2 {
		t.Fatalf("overwrite changed cache size: %d", c.Len())
	}
	got, _ := c.Get("a_1")
	if len(got.Documents) != 1 {
		t.Error("overwrite did not replace the value")
	}

	c.Put("c_1", Entry{Query: "c"})
	if _, ok := c.Get("a_1"); ok {
		t.Error("a_1 kept its original insertion position and should be evicted")
	}
}

func TestNewDefaultsCapacity(t *testing.T) {
	c := New(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		c.Put(Key(fmt.Sprintf("q%d", i), 1), Entry{})
	}
	if c.Len() != DefaultCapacity {
		t.Errorf("cache size = %d, want %d", c.Len(), DefaultCapacity)
	}
}

func TestKeysInsertionOrder(t *testing.T) {
	c := New(3)
	c.Put("a_1", Entry{})
	c.Put("b_1", Entry{})
	c.Put("c_1", Entry{})
	c.Put("d_1", Entry{}) // evicts a_1

	keys := c.Keys()
	want := []string{"b_1", "c_1", "d_1"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
