package articles

import "strings"

// Field defaults applied when front matter omits a value.
const (
	DefaultTitle    = "Untitled"
	DefaultAuthor   = "Anonymous"
	DefaultCategory = "General"
	DefaultReadTime = 5
)

// Article is a single published post as served to readers.
type Article struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	ReadTime int    `json:"readTime"`
	Category string `json:"category"`
}

// MatchField names an article field that can match a search query.
type MatchField string

const (
	MatchTitle    MatchField = "title"
	MatchExcerpt  MatchField = "excerpt"
	MatchContent  MatchField = "content"
	MatchAuthor   MatchField = "author"
	MatchCategory MatchField = "category"
)

// MatchFieldOrder is the fixed order in which matched fields are reported.
var MatchFieldOrder = []MatchField{
	MatchTitle,
	MatchExcerpt,
	MatchContent,
	MatchAuthor,
	MatchCategory,
}

// SearchResult wraps an article with the fields that matched the query and
// the relevance score used for ordering.
type SearchResult struct {
	*Article
	MatchedFields []MatchField `json:"matchedFields"`
	Score         int          `json:"score"`
}

// SortKey selects the ordering applied to search results.
type SortKey string

const (
	SortByRelevance SortKey = "relevance"
	SortByDate      SortKey = "date"
	SortByTitle     SortKey = "title"
	SortByReadTime  SortKey = "readTime"
)

// ParseSortKey maps user input onto a SortKey. Unknown values fall back to
// relevance.
func ParseSortKey(value string) SortKey {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "date":
		return SortByDate
	case "title":
		return SortByTitle
	case "readtime", "read_time":
		return SortByReadTime
	default:
		return SortByRelevance
	}
}

// SortOrder selects ascending or descending ordering.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// ParseSortOrder maps user input onto a SortOrder. Unknown values fall back to
// descending.
func ParseSortOrder(value string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "asc", "ascending":
		return SortAsc
	default:
		return SortDesc
	}
}

// SearchOptions captures the user supplied search parameters.
type SearchOptions struct {
	Query     string    `json:"query"`
	Category  string    `json:"category,omitempty"`
	Author    string    `json:"author,omitempty"`
	SortBy    SortKey   `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
}

// Normalized returns a copy with trimmed text and defaulted enums.
func (o SearchOptions) Normalized() SearchOptions {
	return SearchOptions{
		Query:     strings.TrimSpace(o.Query),
		Category:  strings.TrimSpace(o.Category),
		Author:    strings.TrimSpace(o.Author),
		SortBy:    ParseSortKey(string(o.SortBy)),
		SortOrder: ParseSortOrder(string(o.SortOrder)),
	}
}

// Clone returns a shallow copy of the article.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	cloned := *a
	return &cloned
}
