package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config controls how the Markdown service discovers and parses files.
type Config struct {
	BasePath string
	Pattern  string
	Parser   interfaces.ParseOptions
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for per-document warnings.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFilesystem overrides the filesystem rooted at BasePath.
func WithFilesystem(filesystem fs.FS) Option {
	return func(s *Service) {
		if filesystem != nil {
			s.loader = NewLoader(filesystem, LoaderConfig{Pattern: s.cfg.Pattern})
		}
	}
}

// Service loads Markdown documents from a flat content directory and renders
// their bodies to HTML.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
	logger interfaces.Logger
}

// NewService constructs a Markdown service. When parser is nil a Goldmark
// parser with the configured default options is created. The base directory is
// not required to exist yet.
func NewService(cfg Config, parser interfaces.MarkdownParser, opts ...Option) *Service {
	if strings.TrimSpace(cfg.BasePath) == "" {
		cfg.BasePath = "."
	}
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	svc := &Service{
		cfg:    cfg,
		parser: parser,
		loader: NewLoader(os.DirFS(cfg.BasePath), LoaderConfig{Pattern: cfg.Pattern}),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// BasePath returns the directory documents are read from.
func (s *Service) BasePath() string {
	return s.cfg.BasePath
}

// Matches reports whether name would be picked up by LoadDirectory.
func (s *Service) Matches(name string) bool {
	return s.loader.Matches(name)
}

// Load reads and renders a single document relative to the base path.
func (s *Service) Load(ctx context.Context, name string) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, name)
	if err != nil {
		return nil, err
	}
	s.inspect(result.Document)
	if err := s.renderDocument(ctx, result.Document); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads and renders every document within the base path. A
// missing directory surfaces as an error matching fs.ErrNotExist.
func (s *Service) LoadDirectory(ctx context.Context) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		s.inspect(result.Document)
		if err := s.renderDocument(ctx, result.Document); err != nil {
			return nil, err
		}
		docs = append(docs, result.Document)
	}
	return docs, nil
}

// Render parses Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's Markdown body into HTML.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	if err := s.renderDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc.BodyHTML, nil
}

func (s *Service) renderDocument(ctx context.Context, doc *interfaces.Document) error {
	if doc == nil {
		return nil
	}
	html, err := s.Render(ctx, doc.Body, interfaces.ParseOptions{})
	if err != nil {
		return fmt.Errorf("markdown render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return nil
}

func (s *Service) inspect(doc *interfaces.Document) {
	if doc == nil {
		return
	}
	logger := logging.WithArticle(s.logger, doc.FilePath, doc.Slug, "load")
	if doc.MetadataErr != nil {
		logger.Warn("markdown.frontmatter.invalid", "error", doc.MetadataErr)
	}
	if !slug.IsValid(doc.Slug) {
		logger.Warn("markdown.slug.noncanonical")
	}
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}
