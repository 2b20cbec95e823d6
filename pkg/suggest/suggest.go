// Package suggest produces the ranked, capped suggestion lists shown as the
// user types, plus the keyboard selection state machine for the rendered
// list.
//
// Candidates come from two sources with a fixed precedence: recent search
// history first, then local corpus titles. The result is capped at
// MaxSuggestions and preserves candidate order.
package suggest

import "strings"

// Category labels the origin of a suggestion.
type Category string

const (
	// CategoryRecent marks suggestions sourced from search history.
	CategoryRecent Category = "Recent"
	// CategorySuggestion marks suggestions sourced from corpus titles.
	CategorySuggestion Category = "Suggestion"
)

const (
	// MinQueryLen is the minimum partial-query length before suggestions
	// are produced; shorter non-empty input suppresses the list.
	MinQueryLen = 2
	// MaxSuggestions caps the returned list.
	MaxSuggestions = 8
	// Candidate budgets per source.
	historyCandidates = 5
	corpusCandidates  = 10
)

// Suggestion is a single candidate query string with its source category.
type Suggestion struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// Recent returns up to 5 history entries as Recent suggestions, used when
// the input is focused but empty.
func Recent(history []string) []Suggestion {
	n := historyCandidates
	if n > len(history) {
		n = len(history)
	}
	out := make([]Suggestion, 0, n)
	for _, entry := range history[:n] {
		out = append(out, Suggestion{Text: entry, Category: CategoryRecent})
	}
	return out
}

// Suggest returns suggestions for partial. An empty (focused) input yields
// recent history; input shorter than MinQueryLen yields nothing; otherwise
// the candidate set (5 history entries then 10 corpus titles) is filtered by
// case-insensitive containment and capped at MaxSuggestions, history entries
// first.
func Suggest(partial string, history []string, titles []string) []Suggestion {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return Recent(history)
	}
	if len(partial) < MinQueryLen {
		return nil
	}

	candidates := Recent(history)
	n := corpusCandidates
	if n > len(titles) {
		n = len(titles)
	}
	for _, title := range titles[:n] {
		candidates = append(candidates, Suggestion{Text: title, Category: CategorySuggestion})
	}

	needle := strings.ToLower(partial)
	out := make([]Suggestion, 0, MaxSuggestions)
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate.Text), needle) {
			out = append(out, candidate)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out
}

// Selection is the pure index-selection state machine for keyboard
// navigation over a rendered suggestion list. Index -1 means no selection.
type Selection struct {
	index int
	size  int
}

// NewSelection returns a selection over a list of size entries, starting
// with nothing selected.
func NewSelection(size int) Selection {
	if size < 0 {
		size = 0
	}
	return Selection{index: -1, size: size}
}

// Index returns the current selection index, or -1 when nothing is selected.
func (s Selection) Index() int {
	return s.index
}

// Down moves the selection one entry down, clamping at the last entry.
func (s Selection) Down() Selection {
	if s.size == 0 {
		return s
	}
	if s.index < s.size-1 {
		s.index++
	}
	return s
}

// Up moves the selection one entry up, clamping at -1 (no selection).
func (s Selection) Up() Selection {
	if s.index > -1 {
		s.index--
	}
	return s
}

// Commit returns the selected suggestion text when a selection is active.
// With no selection it reports false and the caller submits the typed query
// instead.
func (s Selection) Commit(items []Suggestion) (string, bool) {
	if s.index < 0 || s.index >= len(items) {
		return "", false
	}
	return items[s.index].Text, true
}
