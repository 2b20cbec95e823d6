// Package cache implements the bounded result cache keyed by query and page.
//
// Eviction is strict FIFO by insertion order: when the cache is full, the
// earliest-inserted entry is evicted regardless of how recently it was read.
// The order is tracked with an explicit key queue paired with a lookup table
// rather than relying on any container's iteration-order guarantee.
//
// The cache has no TTL; entries live until capacity pressure evicts them.
// It is not safe for concurrent use: the resolver session owns it and
// serializes access.
package cache

import (
	"strconv"

	"github.com/d1ks/d1ks/pkg/corpus"
)

// DefaultCapacity is the entry limit used when New is given a non-positive
// capacity.
const DefaultCapacity = 50

// Entry is a cached result set for a single (query, page) key.
type Entry struct {
	Query     string
	Documents []corpus.Document
}

// Cache is a bounded FIFO key/value store of search result entries.
type Cache struct {
	capacity int
	order    []string
	entries  map[string]Entry
}

// New creates a cache bounded at capacity entries. Non-positive capacities
// fall back to DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]Entry, capacity),
	}
}

// Key builds the composite cache key for a query and page number. The caller
// pre-trims the query; the page is appended with a fixed separator.
func Key(query string, page int) string {
	return query + "_" + strconv.Itoa(page)
}

// Get returns the entry stored under key, if any. Reads do not affect
// eviction order.
func (c *Cache) Get(key string) (Entry, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

// Put stores entry under key. Re-putting an existing key replaces its value
// without changing its position in the eviction queue. Inserting a new key
// into a full cache evicts the earliest-inserted entry first.
func (c *Cache) Put(key string, entry Entry) {
	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.order = append(c.order, key)
	c.entries[key] = entry
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Keys returns the cached keys in insertion order (oldest first).
func (c *Cache) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}
