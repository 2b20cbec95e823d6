package corpus

import "testing"

func TestFilterMatchesTitleAndDescription(t *testing.T) {
	docs := Default()

	results := Filter(docs, "javascript")
	if len(results) == 0 {
		t.Fatal("expected matches for 'javascript'")
	}

	// Both title matches must be present, in corpus order.
	var titles []string
	for _, doc := range results {
		titles = append(titles, doc.Title)
	}
	wantFirst := "Modern Web Development Best Practices" // description match
	if titles[0] != wantFirst {
		t.Errorf("first result = %q, want %q (corpus order)", titles[0], wantFirst)
	}
	if !containsString(titles, "JavaScript Animation Libraries") {
		t.Error("missing title match 'JavaScript Animation Libraries'")
	}
	if !containsString(titles, "TypeScript for JavaScript Developers") {
		t.Error("missing title match 'TypeScript for JavaScript Developers'")
	}
}

func TestFilterCaseInsensitive(t *testing.T) {
	docs := Default()
	lower := Filter(docs, "graphql")
	upper := Filter(docs, "GRAPHQL")
	if len(lower) == 0 || len(lower) != len(upper) {
		t.Errorf("case-insensitive filter mismatch: %d vs %d", len(lower), len(upper))
	}
}

func TestFilterNoMatches(t *testing.T) {
	results := Filter(Default(), "xyzzy-quux")
	if results == nil {
		t.Fatal("filter must return an empty slice, not nil")
	}
	if len(results) != 0 {
		t.Errorf("expected no matches, got %d", len(results))
	}
}

func TestFilterEmptyQuery(t *testing.T) {
	if got := Filter(Default(), "   "); len(got) != 0 {
		t.Errorf("blank query should match nothing, got %d results", len(got))
	}
}

func TestTitles(t *testing.T) {
	docs := Default()

	titles := Titles(docs, 10)
	if len(titles) != 10 {
		t.Fatalf("expected 10 titles, got %d", len(titles))
	}
	if titles[0] != docs[0].Title {
		t.Error("titles must preserve corpus order")
	}

	all := Titles(docs, 100)
	if len(all) != len(docs) {
		t.Errorf("n beyond corpus size should return all %d titles, got %d", len(docs), len(all))
	}
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
