package interfaces

import "time"

// MarkdownParser converts raw Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Names stay readable for config
// files and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// Document is a Markdown source file split into metadata and body.
type Document struct {
	FilePath     string
	Slug         string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum is the SHA-256 digest of the original file content.
	Checksum []byte
	// MetadataErr records a front matter parse failure. The document still
	// loads with empty metadata and the full source as body.
	MetadataErr error
}

// FrontMatter models the metadata block of an article. Values are normalised
// strings/ints; empty values mean the key was absent.
type FrontMatter struct {
	Title    string         `json:"title"`
	Date     string         `json:"date"`
	Excerpt  string         `json:"excerpt"`
	Author   string         `json:"author"`
	ReadTime int            `json:"readTime"`
	Category string         `json:"category"`
	Raw      map[string]any `json:"raw"`
}
