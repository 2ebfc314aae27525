package articles

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps catalog rows in memory. It doubles as a Source for
// tests and embedded use.
type MemoryRepository struct {
	mu     sync.RWMutex
	bySlug map[string]*ArticleRecord
}

// NewMemoryRepository constructs an empty memory-backed repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		bySlug: make(map[string]*ArticleRecord),
	}
}

// NewMemorySource seeds a repository with the supplied articles.
func NewMemorySource(articles ...*Article) *MemoryRepository {
	repo := NewMemoryRepository()
	for _, article := range articles {
		if article == nil {
			continue
		}
		record := RecordFromArticle(article, "", nil, time.Time{})
		repo.bySlug[record.Slug] = record
	}
	return repo
}

func (r *MemoryRepository) Create(_ context.Context, record *ArticleRecord) (*ArticleRecord, error) {
	if record == nil {
		return nil, nil
	}
	cloned := cloneRecord(record)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySlug[cloned.Slug] = cloned
	return cloneRecord(cloned), nil
}

func (r *MemoryRepository) Update(_ context.Context, record *ArticleRecord) (*ArticleRecord, error) {
	if record == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySlug[record.Slug]; !ok {
		return nil, &NotFoundError{Resource: "article", Key: record.Slug}
	}

	cloned := cloneRecord(record)
	r.bySlug[cloned.Slug] = cloned
	return cloneRecord(cloned), nil
}

func (r *MemoryRepository) GetBySlug(_ context.Context, slug string) (*ArticleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: slug}
	}
	return cloneRecord(record), nil
}

func (r *MemoryRepository) List(_ context.Context) ([]*ArticleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ArticleRecord, 0, len(r.bySlug))
	for _, record := range r.bySlug {
		out = append(out, cloneRecord(record))
	}
	sortRecords(out)
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, record *ArticleRecord) error {
	if record == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySlug[record.Slug]; !ok {
		return &NotFoundError{Resource: "article", Key: record.Slug}
	}
	delete(r.bySlug, record.Slug)
	return nil
}

// Load returns the stored rows as articles, newest first.
func (r *MemoryRepository) Load(ctx context.Context) ([]*Article, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return recordsToArticles(records), nil
}

// sortRecords orders rows by date descending with slug as a stable tie
// breaker, since neither maps nor SQL scans guarantee an order.
func sortRecords(records []*ArticleRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].Slug < records[j].Slug
	})
}

func recordsToArticles(records []*ArticleRecord) []*Article {
	out := make([]*Article, 0, len(records))
	for _, record := range records {
		if record != nil {
			out = append(out, record.Article())
		}
	}
	return out
}
