package articles

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func scenarioArticles() []*Article {
	return []*Article{
		{
			Slug:     "getting-started-with-nextjs",
			Title:    "Getting Started with Next.js",
			Date:     "2024-01-15",
			Author:   "John Doe",
			ReadTime: 8,
			Category: "Next.js",
		},
		{
			Slug:     "tailwind-css-best-practices",
			Title:    "Tailwind CSS Best Practices",
			Date:     "2024-01-10",
			Author:   "Jane Smith",
			ReadTime: 6,
			Category: "CSS",
		},
	}
}

func TestServiceListSortedByDate(t *testing.T) {
	svc := NewService(NewMemorySource(scenarioArticles()...))

	records, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(records))
	}
	if records[0].Slug != "getting-started-with-nextjs" {
		t.Fatalf("expected newest first, got %s", records[0].Slug)
	}
}

func TestServiceGetMissingReturnsNotFound(t *testing.T) {
	svc := NewService(NewMemorySource(scenarioArticles()...))

	article, err := svc.Get(context.Background(), "does-not-exist")
	if article != nil {
		t.Fatalf("expected nil article, got %#v", article)
	}
	if !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.Key != "does-not-exist" {
		t.Fatalf("expected NotFoundError with key, got %#v", err)
	}
}

func TestServiceGetIsExactMatch(t *testing.T) {
	svc := NewService(NewMemorySource(scenarioArticles()...))

	if _, err := svc.Get(context.Background(), "Tailwind-CSS-Best-Practices"); !IsNotFound(err) {
		t.Fatalf("expected case-sensitive slug lookup, got %v", err)
	}
	article, err := svc.Get(context.Background(), "tailwind-css-best-practices")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if article.Category != "CSS" {
		t.Fatalf("unexpected article %#v", article)
	}
}

func TestServiceListByCategory(t *testing.T) {
	records := append(scenarioArticles(), &Article{
		Slug:     "modern-javascript-features",
		Title:    "Modern JavaScript",
		Date:     "2024-01-05",
		Author:   "Mike Johnson",
		Category: "JavaScript",
	})
	svc := NewService(NewMemorySource(records...))

	css, err := svc.ListByCategory(context.Background(), "css")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(css) != 1 || css[0].Slug != "tailwind-css-best-practices" {
		t.Fatalf("expected case-insensitive category match, got %#v", css)
	}

	java, err := svc.ListByCategory(context.Background(), "Java")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(java) != 0 {
		t.Fatalf("expected exact category match only, got %d", len(java))
	}
}

func TestServiceCategoriesAndAuthors(t *testing.T) {
	records := append(scenarioArticles(), &Article{
		Slug:     "more-css",
		Title:    "More CSS",
		Date:     "2024-01-01",
		Author:   "Jane Smith",
		Category: "CSS",
	})
	svc := NewService(NewMemorySource(records...))

	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if !reflect.DeepEqual(categories, []string{"CSS", "Next.js"}) {
		t.Fatalf("unexpected categories %v", categories)
	}

	authors, err := svc.Authors(context.Background())
	if err != nil {
		t.Fatalf("Authors: %v", err)
	}
	if !reflect.DeepEqual(authors, []string{"Jane Smith", "John Doe"}) {
		t.Fatalf("unexpected authors %v", authors)
	}
}

func TestServicePropagatesSourceErrors(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := NewService(sourceFunc(func(context.Context) ([]*Article, error) {
		return nil, boom
	}))

	if _, err := svc.Categories(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "x"); !errors.Is(err, boom) || IsNotFound(err) {
		t.Fatalf("expected source error rather than not found, got %v", err)
	}
}

func TestServiceRequiresSource(t *testing.T) {
	if _, err := NewService(nil).List(context.Background()); !errors.Is(err, ErrSourceRequired) {
		t.Fatalf("expected ErrSourceRequired, got %v", err)
	}
}

type sourceFunc func(context.Context) ([]*Article, error)

func (f sourceFunc) Load(ctx context.Context) ([]*Article, error) {
	return f(ctx)
}
