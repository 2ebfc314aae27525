package articles

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

func TestCheckReportsInvalidFrontMatter(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteArticles(t, dir, map[string]string{
		"good.md":    "---\ntitle: Good\ndate: 2024-01-01\nauthor: Jane\nreadTime: 3\n---\nbody\n",
		"no-date.md": "---\ntitle: Missing date\n---\nbody\n",
		"broken.md":  "---\ntitle: [oops\n---\nbody\n",
	})
	source := NewFileSource(markdown.NewService(markdown.Config{BasePath: dir}, nil), FileSourceConfig{})

	report, err := Check(context.Background(), source)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.Checked != 3 {
		t.Fatalf("expected 3 checked files, got %d", report.Checked)
	}
	if report.Valid() || len(report.Files) != 2 {
		t.Fatalf("expected two files with issues, got %#v", report.Files)
	}
	slugs := map[string]bool{}
	for _, file := range report.Files {
		slugs[file.Slug] = true
		if len(file.Issues) == 0 {
			t.Fatalf("expected issues for %s", file.Path)
		}
	}
	if !slugs["no-date"] || !slugs["broken"] {
		t.Fatalf("unexpected files reported: %v", slugs)
	}
	if report.IssueCount() < 2 {
		t.Fatalf("expected at least two issues, got %d", report.IssueCount())
	}
}

func TestCheckRequiresSource(t *testing.T) {
	if _, err := Check(context.Background(), nil); !errors.Is(err, ErrCheckSourceRequired) {
		t.Fatalf("expected ErrCheckSourceRequired, got %v", err)
	}
}
