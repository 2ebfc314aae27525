package articlescmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-blog/internal/articles"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

func fileSources(dir string) articles.EntrySource {
	return articles.NewFileSource(markdown.NewService(markdown.Config{BasePath: dir}, nil), articles.FileSourceConfig{})
}

func writeContent(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testsupport.WriteArticles(t, dir, map[string]string{
		"first-post.md":  "---\ntitle: First\ndate: 2024-01-02\nauthor: Jane\n---\nHello\n",
		"second-post.md": "---\ntitle: Second\n---\nWorld\n",
	})
	return dir
}

func TestSyncArticlesCommandValidation(t *testing.T) {
	if err := (SyncArticlesCommand{Directory: "  "}).Validate(); err == nil {
		t.Fatal("expected blank directory to fail validation")
	}
	if err := (SyncArticlesCommand{Directory: "content"}).Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestInvalidateCacheCommandValidation(t *testing.T) {
	if err := (InvalidateCacheCommand{Scope: "everything"}).Validate(); err == nil {
		t.Fatal("expected unknown scope to fail validation")
	}
	for _, scope := range []string{"", ScopeAll, ScopeSource, ScopeCatalog} {
		if err := (InvalidateCacheCommand{Scope: scope}).Validate(); err != nil {
			t.Fatalf("scope %q: unexpected validation error: %v", scope, err)
		}
	}
}

func TestSyncArticlesHandlerWritesCatalog(t *testing.T) {
	dir := writeContent(t)
	repo := articles.NewMemoryRepository()

	var result *articles.SyncResult
	handler := NewSyncArticlesHandler(fileSources, repo, nil, func(r *articles.SyncResult) { result = r })

	if err := handler.Execute(context.Background(), SyncArticlesCommand{Directory: dir}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result == nil || result.Created != 2 {
		t.Fatalf("expected two created rows, got %#v", result)
	}

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestSyncArticlesHandlerRejectsInvalidMessage(t *testing.T) {
	handler := NewSyncArticlesHandler(fileSources, articles.NewMemoryRepository(), nil, nil)

	err := handler.Execute(context.Background(), SyncArticlesCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSyncArticlesHandlerRequiresCatalog(t *testing.T) {
	handler := NewSyncArticlesHandler(fileSources, nil, nil, nil)

	err := handler.Execute(context.Background(), SyncArticlesCommand{Directory: t.TempDir()})
	if !errors.Is(err, ErrCatalogRequired) {
		t.Fatalf("expected ErrCatalogRequired, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestCheckArticlesHandler(t *testing.T) {
	dir := writeContent(t)

	var report *articles.CheckReport
	handler := NewCheckArticlesHandler(fileSources, nil, func(r *articles.CheckReport) { report = r })

	if err := handler.Execute(context.Background(), CheckArticlesCommand{Directory: dir}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if report == nil || report.Checked != 2 || len(report.Files) != 1 || report.Files[0].Slug != "second-post" {
		t.Fatalf("unexpected report %#v", report)
	}

	err := handler.Execute(context.Background(), CheckArticlesCommand{Directory: dir, FailOnIssues: true})
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("expected ErrCheckFailed, got %v", err)
	}
}

func TestInvalidateCacheHandlerHonoursScope(t *testing.T) {
	var sourceCalls, catalogCalls int
	source := InvalidatorFunc(func(context.Context) error { sourceCalls++; return nil })
	catalog := InvalidatorFunc(func(context.Context) error { catalogCalls++; return nil })
	handler := NewInvalidateCacheHandler(source, catalog, nil)

	if err := handler.Execute(context.Background(), InvalidateCacheCommand{Scope: ScopeSource}); err != nil {
		t.Fatalf("Execute source: %v", err)
	}
	if err := handler.Execute(context.Background(), InvalidateCacheCommand{}); err != nil {
		t.Fatalf("Execute all: %v", err)
	}
	if sourceCalls != 2 || catalogCalls != 1 {
		t.Fatalf("unexpected calls: source=%d catalog=%d", sourceCalls, catalogCalls)
	}
}

func TestInvalidateCacheHandlerReportsFailures(t *testing.T) {
	failing := InvalidatorFunc(func(context.Context) error { return errors.New("cache offline") })
	handler := NewInvalidateCacheHandler(nil, failing, nil)

	if err := handler.Execute(context.Background(), InvalidateCacheCommand{Scope: ScopeCatalog}); err == nil {
		t.Fatal("expected invalidation error")
	}
}

func TestSourceInvalidatorDropsSnapshot(t *testing.T) {
	calls := 0
	cached := articles.NewCachedSource(sourceFunc(func(context.Context) ([]*articles.Article, error) {
		calls++
		return []*articles.Article{{Slug: "a"}}, nil
	}))
	ctx := context.Background()
	if _, err := cached.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := SourceInvalidator(cached).InvalidateCache(ctx); err != nil {
		t.Fatalf("InvalidateCache: %v", err)
	}
	if _, err := cached.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected reload after invalidation, got %d loads", calls)
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterArticleCommands(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterArticleCommands(reg, Dependencies{Sources: fileSources}, nil)
	if err != nil {
		t.Fatalf("RegisterArticleCommands: %v", err)
	}
	if set.Sync == nil || set.Check == nil || set.Invalidate == nil {
		t.Fatalf("expected all handlers, got %#v", set)
	}
	if len(reg.handlers) != 3 {
		t.Fatalf("expected 3 registrations, got %d", len(reg.handlers))
	}

	if _, err := RegisterArticleCommands(nil, Dependencies{}, nil); err == nil {
		t.Fatal("expected missing source factory to fail")
	}
}

func TestDispatcherRegistryRoutesMessages(t *testing.T) {
	calls := 0
	reg := &DispatcherRegistry{}
	t.Cleanup(reg.Close)

	_, err := RegisterArticleCommands(reg, Dependencies{
		Sources:     fileSources,
		SourceCache: InvalidatorFunc(func(context.Context) error { calls++; return nil }),
	}, nil)
	if err != nil {
		t.Fatalf("RegisterArticleCommands: %v", err)
	}

	if err := dispatcher.Dispatch(context.Background(), InvalidateCacheCommand{Scope: ScopeSource}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected dispatched invalidation, got %d calls", calls)
	}
	if err := reg.RegisterCommand("nope"); err == nil {
		t.Fatal("expected unsupported handler error")
	}
}

type sourceFunc func(context.Context) ([]*articles.Article, error)

func (fn sourceFunc) Load(ctx context.Context) ([]*articles.Article, error) { return fn(ctx) }
