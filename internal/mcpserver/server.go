// Package mcpserver exposes the article catalogue as Model Context Protocol
// tools served over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	blogarticles "github.com/goliatone/go-blog/articles"
	"github.com/goliatone/go-blog/internal/articles"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/search"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	ServerName    = "go-blog"
	ServerVersion = "v1.0.0"
)

var ErrServiceRequired = errors.New("mcp: article service is required")

// Server holds the MCP server and the collaborators its tools read from.
type Server struct {
	McpServer *server.MCPServer
	articles  articles.Service
	engine    *search.Engine
	logger    interfaces.Logger
}

// Option customises the server.
type Option func(*Server)

// WithSearchEngine overrides the default search engine.
func WithSearchEngine(engine *search.Engine) Option {
	return func(s *Server) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithLogger sets the logger used for tool failures.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type SearchArticlesRequest struct {
	Query     string `json:"query"`
	Category  string `json:"category"`
	Author    string `json:"author"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"`
}

type GetArticleRequest struct {
	Slug string `json:"slug"`
}

type ListArticlesRequest struct {
	Category string `json:"category"`
}

type searchResponse struct {
	Results []articles.SearchResult `json:"results"`
	Total   int                     `json:"total"`
}

// NewServer registers the article tools on a fresh MCP server.
func NewServer(service articles.Service, opts ...Option) (*Server, error) {
	if service == nil {
		return nil, ErrServiceRequired
	}

	s := &Server{
		articles: service,
		engine:   search.NewEngine(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.McpServer = server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(true))
	s.addTools()
	return s, nil
}

// ServeStdio blocks serving tools over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.McpServer)
}

func (s *Server) addTools() {
	searchTool := mcp.NewTool(
		"search_articles",
		mcp.WithDescription("Search published articles by keyword with optional category and author filters"),
		mcp.WithString("query", mcp.Description("Text to look for in title, excerpt, content, author and category"), mcp.Required()),
		mcp.WithString("category", mcp.Description("Exact category to filter by (case-insensitive)")),
		mcp.WithString("author", mcp.Description("Exact author to filter by (case-insensitive)")),
		mcp.WithString("sort_by", mcp.Description("relevance, date, title or readTime"), mcp.Enum("relevance", "date", "title", "readTime")),
		mcp.WithString("sort_order", mcp.Description("asc or desc"), mcp.Enum("asc", "desc")),
	)
	s.McpServer.AddTool(searchTool, mcp.NewTypedToolHandler(s.handleSearchArticles))

	getTool := mcp.NewTool(
		"get_article",
		mcp.WithDescription("Fetch a single article by slug"),
		mcp.WithString("slug", mcp.Description("Article slug (file name without .md)"), mcp.Required()),
	)
	s.McpServer.AddTool(getTool, mcp.NewTypedToolHandler(s.handleGetArticle))

	listTool := mcp.NewTool(
		"list_articles",
		mcp.WithDescription("List articles newest first, optionally restricted to a category"),
		mcp.WithString("category", mcp.Description("Category to filter by (case-insensitive)")),
	)
	s.McpServer.AddTool(listTool, mcp.NewTypedToolHandler(s.handleListArticles))

	s.McpServer.AddTool(
		mcp.NewTool("list_categories", mcp.WithDescription("List the distinct article categories")),
		s.handleListCategories,
	)
	s.McpServer.AddTool(
		mcp.NewTool("list_authors", mcp.WithDescription("List the distinct article authors")),
		s.handleListAuthors,
	)
}

func (s *Server) handleSearchArticles(ctx context.Context, _ mcp.CallToolRequest, params SearchArticlesRequest) (*mcp.CallToolResult, error) {
	opts := articles.SearchOptions{
		Query:     params.Query,
		Category:  params.Category,
		Author:    params.Author,
		SortBy:    blogarticles.SortKey(params.SortBy),
		SortOrder: blogarticles.SortOrder(params.SortOrder),
	}.Normalized()
	if opts.Query == "" {
		return jsonResult(searchResponse{Results: []articles.SearchResult{}})
	}

	records, err := s.articles.List(ctx)
	if err != nil {
		return s.failure("search_articles", "Error searching articles", err), nil
	}
	results := s.engine.Search(records, opts)
	return jsonResult(searchResponse{Results: results, Total: len(results)})
}

func (s *Server) handleGetArticle(ctx context.Context, _ mcp.CallToolRequest, params GetArticleRequest) (*mcp.CallToolResult, error) {
	article, err := s.articles.Get(ctx, params.Slug)
	if err != nil {
		if articles.IsNotFound(err) {
			return errorResult(fmt.Sprintf("Article not found: %s", params.Slug)), nil
		}
		return s.failure("get_article", "Error reading article", err), nil
	}
	return jsonResult(article)
}

func (s *Server) handleListArticles(ctx context.Context, _ mcp.CallToolRequest, params ListArticlesRequest) (*mcp.CallToolResult, error) {
	var (
		records []*articles.Article
		err     error
	)
	if params.Category != "" {
		records, err = s.articles.ListByCategory(ctx, params.Category)
	} else {
		records, err = s.articles.List(ctx)
	}
	if err != nil {
		return s.failure("list_articles", "Error listing articles", err), nil
	}
	if records == nil {
		records = []*articles.Article{}
	}
	return jsonResult(records)
}

func (s *Server) handleListCategories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := s.articles.Categories(ctx)
	if err != nil {
		return s.failure("list_categories", "Error listing categories", err), nil
	}
	return jsonResult(categories)
}

func (s *Server) handleListAuthors(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	authors, err := s.articles.Authors(ctx)
	if err != nil {
		return s.failure("list_authors", "Error listing authors", err), nil
	}
	return jsonResult(authors)
}

func (s *Server) failure(tool, message string, err error) *mcp.CallToolResult {
	s.logger.Error("mcp.tool.failed", "tool", tool, "error", err)
	return errorResult(fmt.Sprintf("%s: %v", message, err))
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcp: encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(data)),
		},
	}, nil
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
	}
}
