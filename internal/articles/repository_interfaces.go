package articles

import (
	"context"
	"errors"
	"fmt"
)

// ErrArticleNotFound matches every NotFoundError through errors.Is.
var ErrArticleNotFound = errors.New("article not found")

// Source produces the full article list. Implementations return a fresh slice
// on every call; the records themselves must be treated as read-only.
type Source interface {
	Load(ctx context.Context) ([]*Article, error)
}

// Invalidator is implemented by sources that hold a snapshot.
type Invalidator interface {
	Invalidate()
}

// ArticleRepository exposes persistence operations for catalog rows.
type ArticleRepository interface {
	Create(ctx context.Context, record *ArticleRecord) (*ArticleRecord, error)
	Update(ctx context.Context, record *ArticleRecord) (*ArticleRecord, error)
	GetBySlug(ctx context.Context, slug string) (*ArticleRecord, error)
	List(ctx context.Context) ([]*ArticleRecord, error)
	Delete(ctx context.Context, record *ArticleRecord) error
}

// NotFoundError is returned when an article resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Is lets callers branch on ErrArticleNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrArticleNotFound
}

// IsNotFound reports whether err signals a missing article.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrArticleNotFound)
}
