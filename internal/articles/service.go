package articles

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

var ErrSourceRequired = errors.New("articles: source is required")

// Service answers article queries on top of a Source.
type Service interface {
	List(ctx context.Context) ([]*Article, error)
	Get(ctx context.Context, slug string) (*Article, error)
	ListByCategory(ctx context.Context, category string) ([]*Article, error)
	Categories(ctx context.Context) ([]string, error)
	Authors(ctx context.Context) ([]string, error)
}

// ServiceOption configures the article service.
type ServiceOption func(*service)

// WithLogger sets the logger used by the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	source Source
	logger interfaces.Logger
}

// NewService wires a Service around source.
func NewService(source Source, opts ...ServiceOption) Service {
	svc := &service{
		source: source,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// List returns every article sorted by date descending.
func (s *service) List(ctx context.Context) ([]*Article, error) {
	if s.source == nil {
		return nil, ErrSourceRequired
	}
	records, err := s.source.Load(ctx)
	if err != nil {
		s.logger.Error("articles.list.failed", "error", err)
		return nil, err
	}
	return records, nil
}

// Get finds the article whose slug matches exactly.
func (s *service) Get(ctx context.Context, slug string) (*Article, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record != nil && record.Slug == slug {
			return record, nil
		}
	}
	return nil, &NotFoundError{Resource: "article", Key: slug}
}

// ListByCategory filters by case-insensitive category equality.
func (s *service) ListByCategory(ctx context.Context, category string) ([]*Article, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Article, 0, len(records))
	for _, record := range records {
		if record != nil && strings.EqualFold(record.Category, category) {
			out = append(out, record)
		}
	}
	return out, nil
}

// Categories returns the distinct category labels in ascending order.
func (s *service) Categories(ctx context.Context) ([]string, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(records, func(a *Article) string { return a.Category }), nil
}

// Authors returns the distinct author names in ascending order.
func (s *service) Authors(ctx context.Context) ([]string, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(records, func(a *Article) string { return a.Author }), nil
}

func distinct(records []*Article, field func(*Article) string) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		value := field(record)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
