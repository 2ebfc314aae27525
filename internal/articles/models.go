package articles

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	blogarticles "github.com/goliatone/go-blog/articles"
	"github.com/goliatone/go-blog/internal/identity"
)

type (
	Article       = blogarticles.Article
	SearchOptions = blogarticles.SearchOptions
	SearchResult  = blogarticles.SearchResult
)

// ArticleRecord is the catalog row mirrored from a markdown file.
type ArticleRecord struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Slug       string    `bun:"slug,notnull,unique" json:"slug"`
	Title      string    `bun:"title,notnull" json:"title"`
	Date       string    `bun:"date,notnull" json:"date"`
	Excerpt    string    `bun:"excerpt" json:"excerpt"`
	Content    string    `bun:"content" json:"content"`
	Author     string    `bun:"author,notnull" json:"author"`
	ReadTime   int       `bun:"read_time,notnull" json:"read_time"`
	Category   string    `bun:"category,notnull" json:"category"`
	SourcePath string    `bun:"source_path" json:"source_path"`
	Checksum   string    `bun:"checksum" json:"checksum"`
	SyncedAt   time.Time `bun:"synced_at,nullzero,default:current_timestamp" json:"synced_at"`
}

// RecordFromArticle builds a catalog row for article. The ID is derived from
// the slug so repeated syncs address the same row.
func RecordFromArticle(article *Article, sourcePath string, checksum []byte, syncedAt time.Time) *ArticleRecord {
	if article == nil {
		return nil
	}
	return &ArticleRecord{
		ID:         identity.ArticleUUID(article.Slug),
		Slug:       article.Slug,
		Title:      article.Title,
		Date:       article.Date,
		Excerpt:    article.Excerpt,
		Content:    article.Content,
		Author:     article.Author,
		ReadTime:   article.ReadTime,
		Category:   article.Category,
		SourcePath: sourcePath,
		Checksum:   hex.EncodeToString(checksum),
		SyncedAt:   syncedAt,
	}
}

// Article converts the row back into the public article shape.
func (r *ArticleRecord) Article() *Article {
	if r == nil {
		return nil
	}
	return &Article{
		Slug:     r.Slug,
		Title:    r.Title,
		Date:     r.Date,
		Excerpt:  r.Excerpt,
		Content:  r.Content,
		Author:   r.Author,
		ReadTime: r.ReadTime,
		Category: r.Category,
	}
}

func cloneRecord(record *ArticleRecord) *ArticleRecord {
	if record == nil {
		return nil
	}
	cloned := *record
	return &cloned
}
