package markdown

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/spf13/cast"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and the Markdown body from source. Files
// without a front matter block return empty metadata and the whole source as
// body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the file path, slug, raw
// content and modification time. A malformed front matter block does not fail
// the build: the document keeps empty metadata, the full source as body and
// MetadataErr set. BodyHTML is left empty so callers render lazily.
func BuildDocument(path, slug string, source []byte, modified time.Time) *interfaces.Document {
	sum := sha256.Sum256(source)
	doc := &interfaces.Document{
		FilePath:     path,
		Slug:         slug,
		LastModified: modified,
		Checksum:     sum[:],
	}

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		doc.MetadataErr = err
		doc.FrontMatter = interfaces.FrontMatter{Raw: map[string]any{}}
		doc.Body = append([]byte(nil), source...)
		return doc
	}

	doc.FrontMatter = meta
	doc.Body = body
	return doc
}

type frontMatterEnvelope struct {
	Title    any            `yaml:"title" toml:"title" json:"title"`
	Date     any            `yaml:"date" toml:"date" json:"date"`
	Excerpt  any            `yaml:"excerpt" toml:"excerpt" json:"excerpt"`
	Author   any            `yaml:"author" toml:"author" json:"author"`
	ReadTime any            `yaml:"readTime" toml:"readTime" json:"readTime"`
	Category any            `yaml:"category" toml:"category" json:"category"`
	Custom   map[string]any `yaml:",inline" toml:"-" json:"-"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	raw := make(map[string]any, len(env.Custom)+6)
	for key, value := range env.Custom {
		raw[key] = value
	}

	fm := interfaces.FrontMatter{
		Title:    textValue(env.Title),
		Date:     dateValue(env.Date),
		Excerpt:  textValue(env.Excerpt),
		Author:   textValue(env.Author),
		ReadTime: intValue(env.ReadTime),
		Category: textValue(env.Category),
		Raw:      raw,
	}

	setRaw(raw, "title", env.Title)
	setRaw(raw, "date", env.Date)
	setRaw(raw, "excerpt", env.Excerpt)
	setRaw(raw, "author", env.Author)
	setRaw(raw, "readTime", env.ReadTime)
	setRaw(raw, "category", env.Category)

	return fm
}

func setRaw(raw map[string]any, key string, value any) {
	if value != nil {
		raw[key] = value
	}
}

func textValue(value any) string {
	if value == nil {
		return ""
	}
	text, err := cast.ToStringE(value)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// dateValue keeps date-only values as YYYY-MM-DD and renders timestamps as
// RFC3339 so string comparison orders them chronologically.
func dateValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return formatDate(v)
	case *time.Time:
		if v == nil {
			return ""
		}
		return formatDate(*v)
	default:
		return textValue(v)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}

func intValue(value any) int {
	if value == nil {
		return 0
	}
	if text, ok := value.(string); ok {
		text = strings.TrimSpace(text)
		// cast reads a leading zero as octal; "08" is eight minutes.
		if n, err := strconv.Atoi(text); err == nil {
			value = n
		} else {
			value = text
		}
	}
	n, err := cast.ToIntE(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
