package articles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	ErrSyncSourceRequired     = errors.New("articles sync: entry source is required")
	ErrSyncRepositoryRequired = errors.New("articles sync: repository is required")
)

// EntrySource yields articles with their source documents.
type EntrySource interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// SyncOptions controls a catalog sync run.
type SyncOptions struct {
	// DeleteOrphaned removes rows whose markdown file no longer exists.
	DeleteOrphaned bool
	// DryRun reports the planned changes without writing.
	DryRun bool
}

// SyncResult summarises a sync run. In dry-run mode counts describe the
// changes that would have been applied.
type SyncResult struct {
	Created int
	Updated int
	Skipped int
	Deleted int
	DryRun  bool
	Errors  []error
}

// SyncerConfig captures the collaborators of a Syncer.
type SyncerConfig struct {
	Source     EntrySource
	Repository ArticleRepository
	Logger     interfaces.Logger
	Now        func() time.Time
}

// Syncer mirrors the markdown directory into the article catalog.
type Syncer struct {
	source EntrySource
	repo   ArticleRepository
	logger interfaces.Logger
	now    func() time.Time
}

// NewSyncer builds a Syncer from cfg.
func NewSyncer(cfg SyncerConfig) *Syncer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Syncer{
		source: cfg.Source,
		repo:   cfg.Repository,
		logger: logger,
		now:    now,
	}
}

// Sync creates rows for new files, updates rows whose source changed and
// optionally deletes orphaned rows. Per-article failures are collected; the
// first one is returned as the error.
func (s *Syncer) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	if s.source == nil {
		return nil, ErrSyncSourceRequired
	}
	if s.repo == nil {
		return nil, ErrSyncRepositoryRequired
	}

	entries, err := s.source.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("articles sync: load entries: %w", err)
	}

	result := &SyncResult{DryRun: opts.DryRun, Errors: []error{}}
	syncedAt := s.now().UTC()
	seen := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if entry.Article == nil || entry.Document == nil {
			continue
		}
		seen[entry.Article.Slug] = struct{}{}
		if err := s.apply(ctx, entry, syncedAt, opts, result); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	if opts.DeleteOrphaned {
		if err := s.deleteOrphaned(ctx, seen, opts, result); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}

	s.logger.Info("articles.sync.completed",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"deleted", result.Deleted,
		"dry_run", result.DryRun,
		"errors", len(result.Errors),
	)

	if len(result.Errors) > 0 {
		return result, result.Errors[0]
	}
	return result, nil
}

func (s *Syncer) apply(ctx context.Context, entry Entry, syncedAt time.Time, opts SyncOptions, result *SyncResult) error {
	doc := entry.Document
	record := RecordFromArticle(entry.Article, doc.FilePath, doc.Checksum, syncedAt)
	logger := logging.WithArticle(s.logger, doc.FilePath, record.Slug, "sync")

	existing, err := s.repo.GetBySlug(ctx, record.Slug)
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("articles sync: lookup %s: %w", record.Slug, err)
	}

	if existing == nil {
		result.Created++
		if opts.DryRun {
			return nil
		}
		if _, err := s.repo.Create(ctx, record); err != nil {
			result.Created--
			return fmt.Errorf("articles sync: create %s: %w", record.Slug, err)
		}
		logger.Debug("articles.sync.created")
		return nil
	}

	if !recordChanged(existing, record) {
		result.Skipped++
		return nil
	}

	result.Updated++
	if opts.DryRun {
		return nil
	}
	record.ID = existing.ID
	if _, err := s.repo.Update(ctx, record); err != nil {
		result.Updated--
		return fmt.Errorf("articles sync: update %s: %w", record.Slug, err)
	}
	logger.Debug("articles.sync.updated")
	return nil
}

func (s *Syncer) deleteOrphaned(ctx context.Context, seen map[string]struct{}, opts SyncOptions, result *SyncResult) error {
	existing, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("articles sync: list catalog: %w", err)
	}

	for _, record := range existing {
		if _, ok := seen[record.Slug]; ok {
			continue
		}
		if opts.DryRun {
			result.Deleted++
			continue
		}
		if err := s.repo.Delete(ctx, record); err != nil {
			return fmt.Errorf("articles sync: delete %s: %w", record.Slug, err)
		}
		logging.WithArticle(s.logger, record.SourcePath, record.Slug, "delete").Debug("articles.sync.deleted")
		result.Deleted++
	}
	return nil
}

// recordChanged compares the source checksum and the rendered body. Dates
// defaulted at load time are ignored so unchanged files stay untouched.
func recordChanged(existing, incoming *ArticleRecord) bool {
	if existing.Checksum != incoming.Checksum {
		return true
	}
	return existing.Content != incoming.Content
}
