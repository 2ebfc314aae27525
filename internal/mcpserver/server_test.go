package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/goliatone/go-blog/internal/articles"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	source := articles.NewMemorySource(
		&articles.Article{
			Slug:     "getting-started-with-nextjs",
			Title:    "Getting Started with Next.js",
			Date:     "2024-01-15",
			Content:  "<p>Server rendering and routing.</p>",
			Author:   "John Doe",
			ReadTime: 8,
			Category: "Next.js",
		},
		&articles.Article{
			Slug:     "tailwind-css-best-practices",
			Title:    "Tailwind CSS Best Practices",
			Date:     "2024-01-10",
			Content:  "<p>Utility first CSS.</p>",
			Author:   "Jane Smith",
			ReadTime: 6,
			Category: "CSS",
		},
	)
	srv, err := NewServer(articles.NewService(source))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("expected content in result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestNewServerRequiresService(t *testing.T) {
	if _, err := NewServer(nil); !errors.Is(err, ErrServiceRequired) {
		t.Fatalf("expected ErrServiceRequired, got %v", err)
	}
}

func TestSearchArticlesTool(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleSearchArticles(context.Background(), mcp.CallToolRequest{}, SearchArticlesRequest{Query: "css"})
	if err != nil {
		t.Fatalf("handleSearchArticles: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var payload struct {
		Results []articles.SearchResult `json:"results"`
		Total   int                     `json:"total"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Total != 1 || payload.Results[0].Slug != "tailwind-css-best-practices" {
		t.Fatalf("unexpected results: %#v", payload)
	}
}

func TestSearchArticlesToolBlankQuery(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleSearchArticles(context.Background(), mcp.CallToolRequest{}, SearchArticlesRequest{Query: "   "})
	if err != nil {
		t.Fatalf("handleSearchArticles: %v", err)
	}
	text := resultText(t, result)
	if !strings.Contains(text, `"total": 0`) || !strings.Contains(text, `"results": []`) {
		t.Fatalf("expected empty result set, got %s", text)
	}
}

func TestGetArticleTool(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleGetArticle(context.Background(), mcp.CallToolRequest{}, GetArticleRequest{Slug: "getting-started-with-nextjs"})
	if err != nil {
		t.Fatalf("handleGetArticle: %v", err)
	}
	var article articles.Article
	if err := json.Unmarshal([]byte(resultText(t, result)), &article); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if article.Title != "Getting Started with Next.js" {
		t.Fatalf("unexpected article %#v", article)
	}

	missing, err := srv.handleGetArticle(context.Background(), mcp.CallToolRequest{}, GetArticleRequest{Slug: "nope"})
	if err != nil {
		t.Fatalf("handleGetArticle missing: %v", err)
	}
	if !missing.IsError || !strings.Contains(resultText(t, missing), "not found") {
		t.Fatalf("expected not found error result")
	}
}

func TestListArticlesTool(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleListArticles(context.Background(), mcp.CallToolRequest{}, ListArticlesRequest{Category: "css"})
	if err != nil {
		t.Fatalf("handleListArticles: %v", err)
	}
	var list []articles.Article
	if err := json.Unmarshal([]byte(resultText(t, result)), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Category != "CSS" {
		t.Fatalf("unexpected list %#v", list)
	}

	all, err := srv.handleListArticles(context.Background(), mcp.CallToolRequest{}, ListArticlesRequest{})
	if err != nil {
		t.Fatalf("handleListArticles all: %v", err)
	}
	if err := json.Unmarshal([]byte(resultText(t, all)), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 || list[0].Slug != "getting-started-with-nextjs" {
		t.Fatalf("expected newest first, got %#v", list)
	}
}

func TestListCategoriesAndAuthorsTools(t *testing.T) {
	srv := newTestServer(t)

	categories, err := srv.handleListCategories(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleListCategories: %v", err)
	}
	var values []string
	if err := json.Unmarshal([]byte(resultText(t, categories)), &values); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(values) != 2 || values[0] != "CSS" || values[1] != "Next.js" {
		t.Fatalf("unexpected categories %v", values)
	}

	authors, err := srv.handleListAuthors(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handleListAuthors: %v", err)
	}
	if err := json.Unmarshal([]byte(resultText(t, authors)), &values); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(values) != 2 || values[0] != "Jane Smith" {
		t.Fatalf("unexpected authors %v", values)
	}
}

func TestToolFailureIsReportedAsErrorResult(t *testing.T) {
	srv, err := NewServer(articles.NewService(failingSource{}))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	result, err := srv.handleListCategories(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("expected nil protocol error, got %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "disk offline") {
		t.Fatalf("expected error result, got %#v", result)
	}
}

type failingSource struct{}

func (failingSource) Load(context.Context) ([]*articles.Article, error) {
	return nil, errors.New("disk offline")
}
