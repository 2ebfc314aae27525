package articles

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	blogarticles "github.com/goliatone/go-blog/articles"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// FileSourceConfig toggles the soft-fail behaviours of FileSource.
type FileSourceConfig struct {
	// CreateIfMissing creates the content directory on first load.
	CreateIfMissing bool
	// SampleFallback serves SampleArticles when no article loads.
	SampleFallback bool
}

// Entry pairs a loaded article with the document it came from.
type Entry struct {
	Article  *Article
	Document *interfaces.Document
}

// FileSourceOption customises a FileSource.
type FileSourceOption func(*FileSource)

// WithFileSourceLogger sets the logger used by the file source.
func WithFileSourceLogger(logger interfaces.Logger) FileSourceOption {
	return func(s *FileSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNow overrides the clock used for missing dates.
func WithNow(now func() time.Time) FileSourceOption {
	return func(s *FileSource) {
		if now != nil {
			s.now = now
		}
	}
}

// FileSource reads articles from the markdown content directory on every call.
type FileSource struct {
	cfg      FileSourceConfig
	markdown *markdown.Service
	now      func() time.Time
	logger   interfaces.Logger
}

// NewFileSource builds a FileSource on top of the markdown service.
func NewFileSource(md *markdown.Service, cfg FileSourceConfig, opts ...FileSourceOption) *FileSource {
	src := &FileSource{
		cfg:      cfg,
		markdown: md,
		now:      time.Now,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(src)
		}
	}
	return src
}

// Dir returns the content directory.
func (s *FileSource) Dir() string {
	return s.markdown.BasePath()
}

// Load returns every article sorted by date descending, or the sample set when
// the directory yields nothing and the fallback is enabled.
func (s *FileSource) Load(ctx context.Context) ([]*Article, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 && s.cfg.SampleFallback {
		s.logger.Debug("articles.samples.served", "dir", s.Dir())
		return SampleArticles(), nil
	}

	out := make([]*Article, len(entries))
	for i, entry := range entries {
		out[i] = entry.Article
	}
	return out, nil
}

// Entries loads the articles together with their source documents, sorted by
// date descending. Ties keep directory order.
func (s *FileSource) Entries(ctx context.Context) ([]Entry, error) {
	dir := s.Dir()
	if s.cfg.CreateIfMissing {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("articles: create content dir %s: %w", dir, err)
		}
	}

	docs, err := s.markdown.LoadDirectory(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("articles.dir.missing", "dir", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("articles: load %s: %w", dir, err)
	}

	now := s.now().UTC()
	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, Entry{
			Article:  ArticleFromDocument(doc, now),
			Document: doc,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Article.Date > entries[j].Article.Date
	})
	return entries, nil
}

// ArticleFromDocument applies the field defaults to a rendered document. now
// stands in for a missing date.
func ArticleFromDocument(doc *interfaces.Document, now time.Time) *Article {
	if doc == nil {
		return nil
	}
	fm := doc.FrontMatter
	article := &Article{
		Slug:     doc.Slug,
		Title:    orDefault(fm.Title, blogarticles.DefaultTitle),
		Date:     orDefault(fm.Date, now.Format(time.RFC3339)),
		Excerpt:  fm.Excerpt,
		Content:  string(doc.BodyHTML),
		Author:   orDefault(fm.Author, blogarticles.DefaultAuthor),
		ReadTime: fm.ReadTime,
		Category: orDefault(fm.Category, blogarticles.DefaultCategory),
	}
	if article.ReadTime <= 0 {
		article.ReadTime = blogarticles.DefaultReadTime
	}
	return article
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
