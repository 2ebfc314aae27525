package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	articlescmd "github.com/goliatone/go-blog/internal/commands/articles"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

const hooksPost = `---
title: React Hooks Explained
date: 2024-01-05
excerpt: State in function components.
author: Jane Smith
readTime: 7
category: React
---
Hooks let you use state.
`

const modulesPost = `---
title: Go Modules
date: 2024-02-01
author: John Doe
category: Go
---
Versioned dependencies for Go projects.
`

func contentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testsupport.WriteArticles(t, dir, map[string]string{
		"react-hooks.md": hooksPost,
		"go-modules.md":  modulesPost,
	})
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSearchCommand(t *testing.T) {
	dir := contentDir(t)

	out, _, err := run(t, "--content-dir", dir, "search", "hooks")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "react-hooks") || strings.Contains(out, "go-modules") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "title,content") {
		t.Fatalf("expected matched fields in output:\n%s", out)
	}
}

func TestSearchCommandFiltersAndJSON(t *testing.T) {
	dir := contentDir(t)

	out, _, err := run(t, "--content-dir", dir, "search", "o", "--category", "go", "--json")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, `"slug": "go-modules"`) || !strings.Contains(out, `"total": 1`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSearchCommandNoResults(t *testing.T) {
	out, _, err := run(t, "--content-dir", contentDir(t), "search", "kubernetes")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "no articles found") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestShowCommand(t *testing.T) {
	dir := contentDir(t)

	out, _, err := run(t, "--content-dir", dir, "show", "go-modules")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Go Modules") || !strings.Contains(out, "5 min read") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if _, _, err := run(t, "--content-dir", dir, "show", "missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestCategoriesAndAuthorsCommands(t *testing.T) {
	dir := contentDir(t)

	out, _, err := run(t, "--content-dir", dir, "categories")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if out != "Go\nReact\n" {
		t.Fatalf("unexpected categories %q", out)
	}

	out, _, err = run(t, "--content-dir", dir, "authors")
	if err != nil {
		t.Fatalf("authors: %v", err)
	}
	if out != "Jane Smith\nJohn Doe\n" {
		t.Fatalf("unexpected authors %q", out)
	}
}

func TestCheckCommandReportsIssues(t *testing.T) {
	dir := contentDir(t)
	testsupport.WriteArticles(t, dir, map[string]string{
		"broken.md": "---\ntitle: Broken\nreadTime: -3\n---\nbody\n",
	})

	out, _, err := run(t, "--content-dir", dir, "check")
	if !errors.Is(err, articlescmd.ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
	if !strings.Contains(out, "broken.md") || !strings.Contains(out, "checked 3 file(s)") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if _, _, err := run(t, "--content-dir", dir, "check", "--fail-on-issues=false"); err != nil {
		t.Fatalf("expected report-only check to pass, got %v", err)
	}
}

func TestSyncCommand(t *testing.T) {
	dir := contentDir(t)
	dsn := filepath.Join(t.TempDir(), "catalog.db")

	out, _, err := run(t, "--content-dir", dir, "sync", "--dsn", dsn, "--driver", "sqlite")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !strings.Contains(out, "created 2") {
		t.Fatalf("unexpected output:\n%s", out)
	}

	out, _, err = run(t, "--content-dir", dir, "sync", "--dsn", dsn)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if !strings.Contains(out, "skipped 2") {
		t.Fatalf("expected unchanged files to be skipped:\n%s", out)
	}
}

func TestNewCommandScaffoldsArticle(t *testing.T) {
	original := now
	now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	defer func() { now = original }()

	dir := filepath.Join(t.TempDir(), "posts")

	out, _, err := run(t, "--content-dir", dir, "new", "--title", "Hello World Again", "--category", "Notes")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	path := strings.TrimSpace(out)
	if filepath.Base(path) != "hello-world-again.md" {
		t.Fatalf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read scaffold: %v", err)
	}
	for _, fragment := range []string{"title: Hello World Again", "date: \"2024-05-01\"", "category: Notes", "readTime: 5"} {
		if !strings.Contains(string(data), fragment) {
			t.Fatalf("expected %q in scaffold:\n%s", fragment, data)
		}
	}

	if _, _, err := run(t, "--content-dir", dir, "new", "--title", "Hello World Again"); !errors.Is(err, errArticleExists) {
		t.Fatalf("expected errArticleExists, got %v", err)
	}

	out, _, err = run(t, "--content-dir", dir, "show", "hello-world-again")
	if err != nil {
		t.Fatalf("show scaffold: %v", err)
	}
	if !strings.Contains(out, "2024-05-01") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestNewCommandRequiresTitle(t *testing.T) {
	if _, _, err := run(t, "--content-dir", t.TempDir(), "new"); !errors.Is(err, errTitleRequired) {
		t.Fatalf("expected errTitleRequired, got %v", err)
	}
}

func TestPreviewCommand(t *testing.T) {
	dir := contentDir(t)

	out, _, err := run(t, "preview", filepath.Join(dir, "react-hooks.md"))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	for _, fragment := range []string{"Slug: react-hooks", `"title": "React Hooks Explained"`, "<p>Hooks let you use state.</p>"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	cfg := blog.DefaultConfig()
	cfg.Content.Dir = contentDir(t)
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.HTTP.ShutdownTimeout = time.Second
	cfg.Features.Logger = false

	module, err := moduleBuilder(cfg)
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	defer module.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, module, cfg) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestMCPCommandDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blog.yaml")
	if err := os.WriteFile(path, []byte("features:\n  mcp: false\n  logger: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := run(t, "--config", path, "--content-dir", dir, "mcp"); !errors.Is(err, errMCPDisabled) {
		t.Fatalf("expected errMCPDisabled, got %v", err)
	}
}

func TestDispatchSubscribesArticleHandlersPerRun(t *testing.T) {
	app := &cli{opts: bootstrap.Options{ContentDir: contentDir(t)}, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		msg := articlescmd.InvalidateCacheCommand{Scope: articlescmd.ScopeSource}
		if err := dispatch(ctx, app, &msg, nil); err != nil {
			t.Fatalf("dispatch %d: %v", i, err)
		}
	}

	bad := articlescmd.InvalidateCacheCommand{Scope: "everything"}
	if err := dispatch(ctx, app, &bad, nil); err == nil {
		t.Fatal("expected invalid scope to be rejected by the dispatched handler")
	}
}
