// Package paginate slices result sets into pages and computes the
// page-number window shown by navigation controls.
package paginate

import "github.com/d1ks/d1ks/pkg/corpus"

// MaxVisiblePages is the page-number button budget for navigation controls.
const MaxVisiblePages = 5

// Page is one slice of a result set.
type Page struct {
	Items      []corpus.Document
	TotalPages int
}

// Nav describes the navigation controls for the current page: the visible
// page-number window plus the prev/next button state.
type Nav struct {
	Pages   []int `json:"pages"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
}

// TotalPages returns ceil(count/pageSize), or 0 for an empty set or a
// non-positive page size.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate returns the documents for page (1-based) at pageSize per page.
// Callers clamp page to [1, TotalPages] first; out-of-range pages yield an
// empty item list rather than an error.
func Paginate(docs []corpus.Document, page, pageSize int) Page {
	total := TotalPages(len(docs), pageSize)
	result := Page{Items: []corpus.Document{}, TotalPages: total}
	if total == 0 || page < 1 || page > total {
		return result
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(docs) {
		end = len(docs)
	}
	result.Items = docs[start:end]
	return result
}

// Window computes the navigation state for current of total pages: at most
// MaxVisiblePages page numbers centered on current when possible, clamped to
// [1, total] at the boundaries. Prev is disabled on the first page, next on
// the last.
func Window(current, total int) Nav {
	nav := Nav{Pages: []int{}}
	if total <= 0 {
		return nav
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := current - MaxVisiblePages/2
	if start < 1 {
		start = 1
	}
	end := start + MaxVisiblePages - 1
	if end > total {
		end = total
	}
	if end-start < MaxVisiblePages-1 {
		start = end - MaxVisiblePages + 1
		if start < 1 {
			start = 1
		}
	}

	for p := start; p <= end; p++ {
		nav.Pages = append(nav.Pages, p)
	}
	nav.HasPrev = current > 1
	nav.HasNext = current < total
	return nav
}
