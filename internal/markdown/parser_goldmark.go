package markdown

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var knownExtensions = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

var defaultExtensions = []string{"gfm", "linkify", "tasklist"}

// GoldmarkParser renders article bodies with goldmark. Engines are built once
// per distinct option set and reused; goldmark engines are safe to share.
type GoldmarkParser struct {
	defaults  interfaces.ParseOptions
	sanitizer *bluemonday.Policy
	engines   sync.Map
}

// NewGoldmarkParser returns a parser using defaults for Parse. Raw HTML in the
// source passes through unless SafeMode or Sanitize is set.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{defaults: defaults, sanitizer: bluemonday.UGCPolicy()}
}

func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return p.ParseWithOptions(markdown, p.defaults)
}

func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	var out bytes.Buffer
	if err := p.engine(opts).Convert(markdown, &out); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	if opts.Sanitize {
		return p.sanitizer.SanitizeBytes(out.Bytes()), nil
	}
	return out.Bytes(), nil
}

func (p *GoldmarkParser) engine(opts interfaces.ParseOptions) goldmark.Markdown {
	names := extensionNames(opts.Extensions)
	key := fmt.Sprintf("%s|%t|%t", strings.Join(names, ","), opts.HardWraps, opts.SafeMode || opts.Sanitize)
	if cached, ok := p.engines.Load(key); ok {
		return cached.(goldmark.Markdown)
	}

	rendering := []renderer.Option{}
	if opts.HardWraps {
		rendering = append(rendering, html.WithHardWraps())
	}
	if !opts.SafeMode && !opts.Sanitize {
		rendering = append(rendering, html.WithUnsafe())
	}
	built := goldmark.New(
		goldmark.WithExtensions(extenders(names)...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendering...),
	)
	actual, _ := p.engines.LoadOrStore(key, built)
	return actual.(goldmark.Markdown)
}

// extensionNames lowercases, dedupes and drops unknown names. An empty list
// selects the default set.
func extensionNames(requested []string) []string {
	if len(requested) == 0 {
		return defaultExtensions
	}
	names := make([]string, 0, len(requested))
	for _, name := range requested {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := knownExtensions[name]; ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func extenders(names []string) []goldmark.Extender {
	out := make([]goldmark.Extender, 0, len(names))
	for _, name := range names {
		out = append(out, knownExtensions[name])
	}
	return out
}
