package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/articles"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/validation"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	errTitleRequired = errors.New("--title is required")
	errArticleExists = errors.New("article already exists")
)

// scaffoldFrontMatter keeps the key order of generated files stable.
type scaffoldFrontMatter struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Excerpt  string `yaml:"excerpt,omitempty"`
	Author   string `yaml:"author"`
	ReadTime int    `yaml:"readTime"`
	Category string `yaml:"category"`
}

var now = time.Now

func (app *cli) newCommand() *cobra.Command {
	var (
		meta  scaffoldFrontMatter
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold a new markdown article",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if strings.TrimSpace(meta.Title) == "" {
				return errTitleRequired
			}
			cfg, err := app.config()
			if err != nil {
				return err
			}

			fileSlug := strings.TrimSpace(name)
			if fileSlug == "" {
				fileSlug, err = slug.Normalize(meta.Title)
				if err != nil {
					return fmt.Errorf("derive slug from title: %w", err)
				}
			}
			if !slug.IsValid(fileSlug) {
				return fmt.Errorf("invalid slug %q", fileSlug)
			}

			if meta.Date == "" {
				meta.Date = now().Format(time.DateOnly)
			}
			path, err := writeScaffold(cfg.Content.Dir, fileSlug, meta, force)
			if err != nil {
				return err
			}
			fmt.Fprintln(app.stdout, path)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&meta.Title, "title", "", "article title")
	flags.StringVar(&meta.Category, "category", articles.DefaultCategory, "article category")
	flags.StringVar(&meta.Author, "author", articles.DefaultAuthor, "article author")
	flags.StringVar(&meta.Excerpt, "excerpt", "", "short summary")
	flags.IntVar(&meta.ReadTime, "read-time", articles.DefaultReadTime, "estimated minutes to read")
	flags.StringVar(&meta.Date, "date", "", "publication date (defaults to today)")
	flags.StringVar(&name, "slug", "", "file slug (defaults to the slugified title)")
	flags.BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func writeScaffold(dir, fileSlug string, meta scaffoldFrontMatter, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create content dir: %w", err)
	}
	path := filepath.Join(dir, fileSlug+".md")
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%w: %s", errArticleExists, path)
	}

	header, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	fmt.Fprintf(&buf, "# %s\n\nWrite your article here.\n", meta.Title)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (app *cli) previewCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Print the parsed front matter and rendered HTML of a markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return err
			}
			doc, err := loadPreview(cmd, cfg, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(app.stdout, "Path: %s\nSlug: %s\nChecksum: %s\n\n", doc.FilePath, doc.Slug, hex.EncodeToString(doc.Checksum))
			if doc.MetadataErr != nil {
				fmt.Fprintf(app.stdout, "Front matter error: %v\n\n", doc.MetadataErr)
			} else if doc.FrontMatter.Raw != nil {
				payload, err := json.MarshalIndent(normalisedFrontMatter(doc.FrontMatter.Raw), "", "  ")
				if err == nil {
					fmt.Fprintf(app.stdout, "Front matter:\n%s\n\n", payload)
				}
				for _, issue := range validation.Issues(validation.ValidateFrontMatter(doc.FrontMatter.Raw)) {
					fmt.Fprintf(app.stdout, "Issue: %s %s\n", issue.Location, issue.Message)
				}
			}

			if raw {
				fmt.Fprintf(app.stdout, "Markdown body:\n%s\n", doc.Body)
			} else {
				fmt.Fprintf(app.stdout, "Rendered HTML:\n%s\n", doc.BodyHTML)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown body instead of HTML")
	return cmd
}

func loadPreview(cmd *cobra.Command, cfg blog.Config, file string) (*interfaces.Document, error) {
	svc := markdown.NewService(markdown.Config{
		BasePath: filepath.Dir(file),
		Pattern:  "*",
		Parser: interfaces.ParseOptions{
			Extensions: cfg.Markdown.Extensions,
			Sanitize:   cfg.Markdown.Sanitize,
			HardWraps:  cfg.Markdown.HardWraps,
			SafeMode:   cfg.Markdown.SafeMode,
		},
	}, nil)
	doc, err := svc.Load(cmd.Context(), filepath.Base(file))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	return doc, nil
}

// normalisedFrontMatter renders time values as strings for JSON output.
func normalisedFrontMatter(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		if t, ok := value.(time.Time); ok {
			out[key] = t.Format(time.RFC3339)
			continue
		}
		out[key] = value
	}
	return out
}
