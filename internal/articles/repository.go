package articles

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewArticleRecordRepository creates a go-repository-bun repository for
// catalog rows, addressed by slug.
func NewArticleRecordRepository(db *bun.DB) repository.Repository[*ArticleRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ArticleRecord]{
		NewRecord:          func() *ArticleRecord { return &ArticleRecord{} },
		GetID:              func(record *ArticleRecord) uuid.UUID { return record.ID },
		SetID:              func(record *ArticleRecord, id uuid.UUID) { record.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(record *ArticleRecord) string { return record.Slug },
	})
}
