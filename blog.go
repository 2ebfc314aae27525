package blog

import (
	"context"
	"net/http"

	"github.com/goliatone/go-blog/articles"
	internalarticles "github.com/goliatone/go-blog/internal/articles"
	articlescmd "github.com/goliatone/go-blog/internal/commands/articles"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/mcpserver"
	"github.com/goliatone/go-blog/internal/search"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// ArticleService exports the article service contract for consumers of the blog package.
type ArticleService = internalarticles.Service

// MarkdownService exports the markdown loader and renderer.
type MarkdownService = markdown.Service

// SearchEngine exports the search engine.
type SearchEngine = search.Engine

// MCPServer exports the MCP tool server.
type MCPServer = mcpserver.Server

// ArticleCommands exports the article command handlers.
type ArticleCommands = articlescmd.HandlerSet

// Module represents the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a blog module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Articles returns the configured article service.
func (m *Module) Articles() ArticleService {
	return m.container.ArticleService()
}

// Search returns the configured search engine.
func (m *Module) Search() *SearchEngine {
	return m.container.SearchEngine()
}

// Query loads every article and runs opts through the search engine.
func (m *Module) Query(ctx context.Context, opts articles.SearchOptions) ([]articles.SearchResult, error) {
	records, err := m.container.ArticleService().List(ctx)
	if err != nil {
		return nil, err
	}
	return m.container.SearchEngine().Search(records, opts), nil
}

// Commands returns the article command handlers.
func (m *Module) Commands() *ArticleCommands {
	return m.container.Commands()
}

// HTTPHandler returns the JSON API handler.
func (m *Module) HTTPHandler() http.Handler {
	return m.container.HTTPHandler()
}

// MCP builds the MCP tool server.
func (m *Module) MCP() (*MCPServer, error) {
	return m.container.MCPServer()
}

// Markdown returns the markdown service.
func (m *Module) Markdown() *MarkdownService {
	return m.container.MarkdownService()
}

// Logger returns a module-scoped logger.
func (m *Module) Logger(module string) interfaces.Logger {
	return m.container.Logger(module)
}

// Close releases the content watcher and any database the module opened.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
