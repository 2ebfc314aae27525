package articles

import "testing"

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{
		"":          SortByRelevance,
		"relevance": SortByRelevance,
		"DATE":      SortByDate,
		" title ":   SortByTitle,
		"readTime":  SortByReadTime,
		"popular":   SortByRelevance,
	}
	for input, want := range cases {
		if got := ParseSortKey(input); got != want {
			t.Fatalf("ParseSortKey(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseSortOrder(t *testing.T) {
	cases := map[string]SortOrder{
		"":     SortDesc,
		"desc": SortDesc,
		"ASC":  SortAsc,
		"up":   SortDesc,
	}
	for input, want := range cases {
		if got := ParseSortOrder(input); got != want {
			t.Fatalf("ParseSortOrder(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSearchOptionsNormalized(t *testing.T) {
	opts := SearchOptions{
		Query:     "  next.js ",
		Category:  " CSS ",
		SortBy:    "bogus",
		SortOrder: "",
	}.Normalized()

	if opts.Query != "next.js" || opts.Category != "CSS" {
		t.Fatalf("expected trimmed values, got %#v", opts)
	}
	if opts.SortBy != SortByRelevance || opts.SortOrder != SortDesc {
		t.Fatalf("expected default sort, got %s/%s", opts.SortBy, opts.SortOrder)
	}
}
