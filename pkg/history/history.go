// Package history keeps the user's recent search queries: most-recent-first,
// deduplicated, capped at MaxEntries.
package history

import "strings"

// MaxEntries is the retention cap. Older entries fall off the end.
const MaxEntries = 20

// History is an ordered list of past queries, newest first. The zero value
// is not usable; call New.
type History struct {
	entries []string
	limit   int
}

// New returns an empty history capped at MaxEntries.
func New() *History {
	return &History{limit: MaxEntries}
}

// Load returns a history pre-populated with entries (newest first). Entries
// beyond the cap are dropped.
func Load(entries []string) *History {
	h := New()
	if len(entries) > h.limit {
		entries = entries[:h.limit]
	}
	h.entries = append(h.entries, entries...)
	return h
}

// Add records query at the front. Re-adding an existing query moves it to
// the front without duplication. Blank queries are ignored. Reports whether
// the history changed.
func (h *History) Add(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}
	if len(h.entries) > 0 && h.entries[0] == query {
		return false
	}

	kept := make([]string, 0, len(h.entries)+1)
	kept = append(kept, query)
	for _, entry := range h.entries {
		if entry != query {
			kept = append(kept, entry)
		}
	}
	if len(kept) > h.limit {
		kept = kept[:h.limit]
	}
	h.entries = kept
	return true
}

// Recent returns up to n entries, newest first.
func (h *History) Recent(n int) []string {
	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]string, n)
	copy(out, h.entries[:n])
	return out
}

// Entries returns a copy of all entries, newest first.
func (h *History) Entries() []string {
	return h.Recent(len(h.entries))
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = nil
}
