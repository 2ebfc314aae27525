package articles

import (
	"context"
	"errors"

	"github.com/goliatone/go-blog/internal/validation"
)

var ErrCheckSourceRequired = errors.New("articles check: entry source is required")

// FileReport lists the front matter problems found in one file.
type FileReport struct {
	Path   string                       `json:"path"`
	Slug   string                       `json:"slug"`
	Issues []validation.ValidationIssue `json:"issues"`
}

// CheckReport summarises a front matter check over the content directory.
type CheckReport struct {
	Checked int          `json:"checked"`
	Files   []FileReport `json:"files"`
}

// Valid reports whether no file had issues.
func (r *CheckReport) Valid() bool {
	return r == nil || len(r.Files) == 0
}

// IssueCount returns the total number of issues across files.
func (r *CheckReport) IssueCount() int {
	if r == nil {
		return 0
	}
	total := 0
	for _, file := range r.Files {
		total += len(file.Issues)
	}
	return total
}

// Check validates the raw front matter of every entry. Unparseable blocks are
// reported as a single issue at the document root.
func Check(ctx context.Context, source EntrySource) (*CheckReport, error) {
	if source == nil {
		return nil, ErrCheckSourceRequired
	}
	entries, err := source.Entries(ctx)
	if err != nil {
		return nil, err
	}

	report := &CheckReport{Files: []FileReport{}}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc := entry.Document
		if doc == nil {
			continue
		}
		report.Checked++

		var issues []validation.ValidationIssue
		if doc.MetadataErr != nil {
			issues = []validation.ValidationIssue{{Message: doc.MetadataErr.Error()}}
		} else if err := validation.ValidateFrontMatter(doc.FrontMatter.Raw); err != nil {
			issues = validation.Issues(err)
		}
		if len(issues) == 0 {
			continue
		}
		report.Files = append(report.Files, FileReport{
			Path:   doc.FilePath,
			Slug:   doc.Slug,
			Issues: issues,
		})
	}
	return report, nil
}
