package articles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

const articleNamespace = "article"

// BunArticleRepository implements ArticleRepository and Source over a SQL
// catalog, with optional caching.
type BunArticleRepository struct {
	repo         repository.Repository[*ArticleRecord]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunArticleRepository creates an article repository without caching.
func NewBunArticleRepository(db *bun.DB) *BunArticleRepository {
	return NewBunArticleRepositoryWithCache(db, nil, nil)
}

// NewBunArticleRepositoryWithCache creates an article repository with caching services.
func NewBunArticleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunArticleRepository {
	base := NewArticleRecordRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = articleNamespace + cache.KeySeparator
	}
	return &BunArticleRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

// EnsureSchema creates the catalog table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*ArticleRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("articles: create catalog table: %w", err)
	}
	return nil
}

func (r *BunArticleRepository) Create(ctx context.Context, record *ArticleRecord) (*ArticleRecord, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunArticleRepository) Update(ctx context.Context, record *ArticleRecord) (*ArticleRecord, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "article", record.Slug)
	}
	return updated, nil
}

func (r *BunArticleRepository) GetBySlug(ctx context.Context, slug string) (*ArticleRecord, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "article", slug)
	}
	return record, nil
}

func (r *BunArticleRepository) List(ctx context.Context) ([]*ArticleRecord, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortRecords(records)
	return records, nil
}

func (r *BunArticleRepository) Delete(ctx context.Context, record *ArticleRecord) error {
	if record == nil {
		return nil
	}
	if err := r.repo.Delete(ctx, record); err != nil {
		return mapRepositoryError(err, "article", record.Slug)
	}
	return nil
}

// Load returns catalog rows as articles, newest first.
func (r *BunArticleRepository) Load(ctx context.Context) ([]*Article, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("articles: load catalog: %w", err)
	}
	return recordsToArticles(records), nil
}

// InvalidateCache drops every cached catalog query.
func (r *BunArticleRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
