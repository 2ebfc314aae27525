package articlescmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/articles"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	syncOperation       = "articles.sync"
	checkOperation      = "articles.check"
	invalidateOperation = "articles.invalidate_cache"
)

var (
	ErrCatalogRequired = errors.New("articles command: catalog repository is required")
	ErrCheckFailed     = errors.New("articles command: front matter check found issues")
)

var (
	_ command.Commander[SyncArticlesCommand]    = (*SyncArticlesHandler)(nil)
	_ command.Commander[CheckArticlesCommand]   = (*CheckArticlesHandler)(nil)
	_ command.Commander[InvalidateCacheCommand] = (*InvalidateCacheHandler)(nil)
)

// SourceFactory opens an entry source for a content directory.
type SourceFactory func(dir string) articles.EntrySource

// CacheInvalidator drops a cached layer of article data.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// InvalidatorFunc adapts a plain function to CacheInvalidator.
type InvalidatorFunc func(ctx context.Context) error

func (fn InvalidatorFunc) InvalidateCache(ctx context.Context) error { return fn(ctx) }

// SourceInvalidator adapts an articles.Invalidator such as CachedSource.
func SourceInvalidator(target articles.Invalidator) CacheInvalidator {
	return InvalidatorFunc(func(context.Context) error {
		target.Invalidate()
		return nil
	})
}

// SyncArticlesHandler runs catalog syncs through the shared command handler.
type SyncArticlesHandler struct {
	inner *commands.Handler[SyncArticlesCommand]
}

// NewSyncArticlesHandler binds the handler to a source factory and catalog.
// onResult, when set, receives every completed sync result.
func NewSyncArticlesHandler(sources SourceFactory, repo articles.ArticleRepository, logger interfaces.Logger, onResult func(*articles.SyncResult), opts ...commands.HandlerOption[SyncArticlesCommand]) *SyncArticlesHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SyncArticlesCommand) error {
		if repo == nil {
			return ErrCatalogRequired
		}
		syncer := articles.NewSyncer(articles.SyncerConfig{
			Source:     sources(msg.Directory),
			Repository: repo,
			Logger:     baseLogger,
		})
		result, err := syncer.Sync(ctx, articles.SyncOptions{
			DeleteOrphaned: msg.DeleteOrphaned,
			DryRun:         msg.DryRun,
		})
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count": result.Created,
				"updated_count": result.Updated,
				"skipped_count": result.Skipped,
				"deleted_count": result.Deleted,
				"error_count":   len(result.Errors),
				"dry_run":       result.DryRun,
			}).Info("articles.command.sync.completed")
			if onResult != nil {
				onResult(result)
			}
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[SyncArticlesCommand]{
		commands.WithLogger[SyncArticlesCommand](baseLogger),
		commands.WithOperation[SyncArticlesCommand](syncOperation),
		commands.WithMessageFields[SyncArticlesCommand](func(msg SyncArticlesCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry[SyncArticlesCommand](commands.DefaultTelemetry[SyncArticlesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncArticlesHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SyncArticlesCommand].
func (h *SyncArticlesHandler) Execute(ctx context.Context, msg SyncArticlesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CheckArticlesHandler validates front matter through the shared command handler.
type CheckArticlesHandler struct {
	inner *commands.Handler[CheckArticlesCommand]
}

// NewCheckArticlesHandler binds the handler to a source factory. onResult,
// when set, receives every report.
func NewCheckArticlesHandler(sources SourceFactory, logger interfaces.Logger, onResult func(*articles.CheckReport), opts ...commands.HandlerOption[CheckArticlesCommand]) *CheckArticlesHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CheckArticlesCommand) error {
		report, err := articles.Check(ctx, sources(msg.Directory))
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"checked_count": report.Checked,
			"file_count":    len(report.Files),
			"issue_count":   report.IssueCount(),
		}).Info("articles.command.check.completed")
		for _, file := range report.Files {
			baseLogger.Warn("articles.command.check.issues", "path", file.Path, "issues", len(file.Issues))
		}
		if onResult != nil {
			onResult(report)
		}
		if msg.FailOnIssues && !report.Valid() {
			return fmt.Errorf("%w: %d issue(s) in %d file(s)", ErrCheckFailed, report.IssueCount(), len(report.Files))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckArticlesCommand]{
		commands.WithLogger[CheckArticlesCommand](baseLogger),
		commands.WithOperation[CheckArticlesCommand](checkOperation),
		commands.WithMessageFields[CheckArticlesCommand](func(msg CheckArticlesCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckArticlesHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CheckArticlesCommand].
func (h *CheckArticlesHandler) Execute(ctx context.Context, msg CheckArticlesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// InvalidateCacheHandler drops cached article data.
type InvalidateCacheHandler struct {
	inner *commands.Handler[InvalidateCacheCommand]
}

// NewInvalidateCacheHandler binds the handler to the source cache and the
// catalog cache. Either may be nil.
func NewInvalidateCacheHandler(source, catalog CacheInvalidator, logger interfaces.Logger, opts ...commands.HandlerOption[InvalidateCacheCommand]) *InvalidateCacheHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg InvalidateCacheCommand) error {
		scope := msg.scope()
		var errs []error
		if source != nil && (scope == ScopeAll || scope == ScopeSource) {
			errs = append(errs, source.InvalidateCache(ctx))
		}
		if catalog != nil && (scope == ScopeAll || scope == ScopeCatalog) {
			errs = append(errs, catalog.InvalidateCache(ctx))
		}
		return errors.Join(errs...)
	}

	handlerOpts := []commands.HandlerOption[InvalidateCacheCommand]{
		commands.WithLogger[InvalidateCacheCommand](baseLogger),
		commands.WithOperation[InvalidateCacheCommand](invalidateOperation),
		commands.WithMessageFields[InvalidateCacheCommand](func(msg InvalidateCacheCommand) map[string]any {
			fields := map[string]any{"scope": msg.scope()}
			if msg.Reason != "" {
				fields["reason"] = msg.Reason
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InvalidateCacheHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[InvalidateCacheCommand].
func (h *InvalidateCacheHandler) Execute(ctx context.Context, msg InvalidateCacheCommand) error {
	return h.inner.Execute(ctx, msg)
}
