package search

import (
	"html"
	"strings"

	"github.com/goliatone/go-blog/articles"
)

// fieldText holds the lowercased searchable values of one article.
type fieldText struct {
	title    string
	excerpt  string
	content  string
	author   string
	category string
}

func (e *Engine) fields(record *articles.Article) fieldText {
	return fieldText{
		title:    strings.ToLower(record.Title),
		excerpt:  strings.ToLower(record.Excerpt),
		content:  strings.ToLower(e.StripTags(record.Content)),
		author:   strings.ToLower(record.Author),
		category: strings.ToLower(record.Category),
	}
}

// searchable joins the fields the same way for every record so a query may
// span field boundaries.
func (f fieldText) searchable() string {
	return strings.Join([]string{f.title, f.excerpt, f.content, f.author, f.category}, " ")
}

// matches reports the fields containing query in articles.MatchFieldOrder.
func (f fieldText) matches(query string) []articles.MatchField {
	matched := make([]articles.MatchField, 0, len(articles.MatchFieldOrder))
	for _, field := range articles.MatchFieldOrder {
		if strings.Contains(f.value(field), query) {
			matched = append(matched, field)
		}
	}
	return matched
}

func (f fieldText) value(field articles.MatchField) string {
	switch field {
	case articles.MatchTitle:
		return f.title
	case articles.MatchExcerpt:
		return f.excerpt
	case articles.MatchContent:
		return f.content
	case articles.MatchAuthor:
		return f.author
	case articles.MatchCategory:
		return f.category
	default:
		return ""
	}
}

// StripTags removes markup from rendered HTML and decodes entities, leaving
// only the visible text.
func (e *Engine) StripTags(markup string) string {
	if markup == "" {
		return ""
	}
	return html.UnescapeString(e.policy.Sanitize(markup))
}
