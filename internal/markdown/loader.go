package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultPattern selects article files within the content directory.
const DefaultPattern = "*.md"

// LoaderConfig configures how Markdown files are discovered.
type LoaderConfig struct {
	// Pattern limits discovered files to those matching the supplied glob.
	Pattern string
}

// Loader turns files of a single flat directory into Markdown documents.
// Sub-directories are never traversed.
type Loader struct {
	fs      fs.FS
	pattern string
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = DefaultPattern
	}

	return &Loader{
		fs:      filesystem,
		pattern: pattern,
	}
}

// LoadFile reads and parses a single Markdown document. The slug is the file
// name without its extension.
func (l *Loader) LoadFile(ctx context.Context, name string) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = path.Clean(strings.TrimPrefix(name, "./"))

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}

	info, err := fs.Stat(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", name, err)
	}

	return &DocumentResult{
		Document: BuildDocument(name, SlugFromFilename(name), data, info.ModTime()),
		Source:   data,
	}, nil
}

// LoadDirectory parses every matching file at the root of the filesystem.
// Results follow directory listing order, which fs.ReadDir sorts by name.
func (l *Loader) LoadDirectory(ctx context.Context) ([]*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(l.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("markdown loader list: %w", err)
	}

	results := make([]*DocumentResult, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !l.Matches(entry.Name()) {
			continue
		}

		result, err := l.LoadFile(ctx, entry.Name())
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// Matches reports whether name is an article file for this loader. Names that
// leave an empty slug, such as ".md", never match.
func (l *Loader) Matches(name string) bool {
	if SlugFromFilename(name) == "" {
		return false
	}
	match, err := path.Match(l.pattern, path.Base(name))
	if err != nil {
		return false
	}
	return match
}

// SlugFromFilename strips directories and the extension from name.
func SlugFromFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}
