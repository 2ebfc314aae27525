package search

import (
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-blog/articles"
)

// Weights assigns a relevance score to each matched field.
type Weights struct {
	Title    int `json:"title" yaml:"title"`
	Excerpt  int `json:"excerpt" yaml:"excerpt"`
	Content  int `json:"content" yaml:"content"`
	Author   int `json:"author" yaml:"author"`
	Category int `json:"category" yaml:"category"`
}

// DefaultWeights ranks title matches above category, excerpt, author and
// content-only matches.
func DefaultWeights() Weights {
	return Weights{
		Title:    10,
		Excerpt:  4,
		Content:  1,
		Author:   3,
		Category: 6,
	}
}

func (w Weights) of(field articles.MatchField) int {
	switch field {
	case articles.MatchTitle:
		return w.Title
	case articles.MatchExcerpt:
		return w.Excerpt
	case articles.MatchContent:
		return w.Content
	case articles.MatchAuthor:
		return w.Author
	case articles.MatchCategory:
		return w.Category
	default:
		return 0
	}
}

// IsZero reports whether no weight is set.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the relevance weights. A zero value keeps the defaults.
func WithWeights(weights Weights) Option {
	return func(e *Engine) {
		if !weights.IsZero() {
			e.weights = weights
		}
	}
}

// Engine scores, filters and orders articles for a query. It is safe for
// concurrent use.
type Engine struct {
	weights Weights
	policy  *bluemonday.Policy
}

// NewEngine constructs an Engine with the default weights.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		weights: DefaultWeights(),
		policy:  bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

var defaultEngine = NewEngine()

// Search runs the default engine.
func Search(records []*articles.Article, opts articles.SearchOptions) []articles.SearchResult {
	return defaultEngine.Search(records, opts)
}

// Weights returns the weights used for relevance scoring.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Search returns the articles whose searchable text contains the query,
// restricted by the category and author filters and ordered per opts. A blank
// query yields an empty, non-nil result.
func (e *Engine) Search(records []*articles.Article, opts articles.SearchOptions) []articles.SearchResult {
	opts = opts.Normalized()
	results := []articles.SearchResult{}
	if opts.Query == "" {
		return results
	}

	query := strings.ToLower(opts.Query)
	for _, record := range records {
		if record == nil || !passesFilters(record, opts) {
			continue
		}

		fields := e.fields(record)
		if !strings.Contains(fields.searchable(), query) {
			continue
		}

		matched := fields.matches(query)
		results = append(results, articles.SearchResult{
			Article:       record,
			MatchedFields: matched,
			Score:         e.score(matched),
		})
	}

	sortResults(results, opts.SortBy, opts.SortOrder)
	return results
}

func (e *Engine) score(matched []articles.MatchField) int {
	total := 0
	for _, field := range matched {
		total += e.weights.of(field)
	}
	return total
}

func passesFilters(record *articles.Article, opts articles.SearchOptions) bool {
	if opts.Category != "" && !strings.EqualFold(record.Category, opts.Category) {
		return false
	}
	if opts.Author != "" && !strings.EqualFold(record.Author, opts.Author) {
		return false
	}
	return true
}

// Filter applies the category and author filters without a text query.
func Filter(records []*articles.Article, opts articles.SearchOptions) []*articles.Article {
	opts = opts.Normalized()
	out := make([]*articles.Article, 0, len(records))
	for _, record := range records {
		if record != nil && passesFilters(record, opts) {
			out = append(out, record)
		}
	}
	return out
}

func sortResults(results []articles.SearchResult, key articles.SortKey, order articles.SortOrder) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Article, results[j].Article

		var c int
		switch key {
		case articles.SortByDate:
			c = compareDates(a.Date, b.Date)
		case articles.SortByTitle:
			c = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case articles.SortByReadTime:
			c = compareInts(a.ReadTime, b.ReadTime)
		default:
			c = compareInts(results[i].Score, results[j].Score)
		}

		if order == articles.SortDesc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		if key == articles.SortByRelevance {
			return compareDates(a.Date, b.Date) > 0
		}
		return false
	})
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
