package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-blog/internal/articles"
	articlescmd "github.com/goliatone/go-blog/internal/commands/articles"
	bloghttp "github.com/goliatone/go-blog/internal/http"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/mcpserver"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/internal/search"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/pkg/storage"
)

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	markdownSvc  *markdown.Service
	fileSource   *articles.FileSource
	catalog      *articles.BunArticleRepository
	cachedSource *articles.CachedSource
	source       articles.Source

	articleSvc articles.Service
	engine     *search.Engine

	commandRegistry articlescmd.CommandRegistry
	commands        *articlescmd.HandlerSet
	onSyncResult    func(*articles.SyncResult)
	onCheckResult   func(*articles.CheckReport)
	now             func() time.Time
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB supplies an open catalog database. The container does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache used by the catalog.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithSource replaces the article source selected by the storage config.
func WithSource(source articles.Source) Option {
	return func(c *Container) {
		c.source = source
	}
}

// WithArticleService overrides the default article service binding.
func WithArticleService(svc articles.Service) Option {
	return func(c *Container) {
		c.articleSvc = svc
	}
}

// WithCommandRegistry registers the article command handlers with reg.
func WithCommandRegistry(reg articlescmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// WithSyncResultHandler receives every completed catalog sync.
func WithSyncResultHandler(fn func(*articles.SyncResult)) Option {
	return func(c *Container) {
		c.onSyncResult = fn
	}
}

// WithCheckResultHandler receives every front matter check report.
func WithCheckResultHandler(fn func(*articles.CheckReport)) Option {
	return func(c *Container) {
		c.onCheckResult = fn
	}
}

// WithClock overrides the clock used for missing article dates.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer validates cfg and wires the article runtime.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "blog")

	c.configureMarkdown()
	if err := c.configureCatalog(); err != nil {
		return nil, err
	}
	if err := c.configureSource(); err != nil {
		c.Close()
		return nil, err
	}

	if c.articleSvc == nil {
		c.articleSvc = articles.NewService(c.source, articles.WithLogger(logging.ArticlesLogger(c.loggerProvider)))
	}
	c.engine = search.NewEngine(search.WithWeights(search.Weights{
		Title:    cfg.Search.Weights.Title,
		Excerpt:  cfg.Search.Weights.Excerpt,
		Content:  cfg.Search.Weights.Content,
		Author:   cfg.Search.Weights.Author,
		Category: cfg.Search.Weights.Category,
	}))

	if err := c.configureCommands(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level, Focus: c.Config.Logging.Focus})
	}
	return nil
}

func (c *Container) configureMarkdown() {
	mdCfg := c.Config.Markdown
	c.markdownSvc = markdown.NewService(markdown.Config{
		BasePath: c.Config.Content.Dir,
		Pattern:  c.Config.Content.Pattern,
		Parser: interfaces.ParseOptions{
			Extensions: mdCfg.Extensions,
			Sanitize:   mdCfg.Sanitize,
			HardWraps:  mdCfg.HardWraps,
			SafeMode:   mdCfg.SafeMode,
		},
	}, nil, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))

	c.fileSource = articles.NewFileSource(c.markdownSvc, articles.FileSourceConfig{
		CreateIfMissing: c.Config.Content.CreateIfMissing,
		SampleFallback:  c.Config.Content.SampleFallback,
	},
		articles.WithFileSourceLogger(logging.ArticlesLogger(c.loggerProvider)),
		articles.WithNow(c.now),
	)
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}
	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			c.logger.Warn("di.cache.unavailable", "error", err)
		}
	}
	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

// configureCatalog opens the catalog database when the bun provider is
// selected or a database was supplied.
func (c *Container) configureCatalog() error {
	if c.bunDB == nil && strings.EqualFold(c.Config.Storage.Provider, runtimeconfig.StorageBun) {
		db, err := storage.Open(storage.Config{
			Driver: c.Config.Storage.Driver,
			DSN:    c.Config.Storage.DSN,
		})
		if err != nil {
			return fmt.Errorf("di: open catalog: %w", err)
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if c.bunDB == nil {
		return nil
	}

	if err := articles.EnsureSchema(context.Background(), c.bunDB); err != nil {
		c.Close()
		return err
	}
	c.configureCacheDefaults()
	c.catalog = articles.NewBunArticleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	return nil
}

func (c *Container) configureSource() error {
	if c.source == nil {
		if c.catalog != nil && strings.EqualFold(c.Config.Storage.Provider, runtimeconfig.StorageBun) {
			c.source = c.catalog
		} else {
			c.source = c.fileSource
		}
	}

	if !c.Config.Cache.Enabled {
		return nil
	}
	c.cachedSource = articles.NewCachedSource(c.source,
		articles.WithCacheTTL(c.Config.Cache.TTL),
		articles.WithCacheLogger(logging.ModuleLogger(c.loggerProvider, "blog.articles.cache")),
	)
	c.source = c.cachedSource

	if c.Config.Cache.Watch {
		if c.Config.Content.CreateIfMissing {
			if err := os.MkdirAll(c.markdownSvc.BasePath(), 0o755); err != nil {
				return fmt.Errorf("di: create content dir: %w", err)
			}
		}
		if err := c.cachedSource.Watch(c.markdownSvc.BasePath(), c.markdownSvc.Matches); err != nil {
			return fmt.Errorf("di: watch content dir: %w", err)
		}
	}
	return nil
}

func (c *Container) configureCommands() error {
	deps := articlescmd.Dependencies{
		Sources:       c.entrySourceFor,
		OnSyncResult:  c.afterSync,
		OnCheckResult: c.onCheckResult,
	}
	if c.catalog != nil {
		deps.Catalog = c.catalog
		deps.CatalogCache = c.catalog
	}
	if c.cachedSource != nil {
		deps.SourceCache = articlescmd.SourceInvalidator(c.cachedSource)
	}

	set, err := articlescmd.RegisterArticleCommands(c.commandRegistry, deps, c.loggerProvider)
	if err != nil {
		return err
	}
	c.commands = set
	return nil
}

// afterSync drops the catalog and source caches once a sync has written rows
// so the service serves the new catalog state.
func (c *Container) afterSync(result *articles.SyncResult) {
	if !result.DryRun && result.Created+result.Updated+result.Deleted > 0 {
		if c.catalog != nil {
			if err := c.catalog.InvalidateCache(context.Background()); err != nil {
				c.logger.Warn("di.catalog.invalidate_failed", "error", err)
			}
		}
		if c.cachedSource != nil {
			c.cachedSource.Invalidate()
		}
	}
	if c.onSyncResult != nil {
		c.onSyncResult(result)
	}
}

// entrySourceFor opens a file source on dir, reusing the configured one when
// dir is the content directory.
func (c *Container) entrySourceFor(dir string) articles.EntrySource {
	if strings.TrimSpace(dir) == "" || dir == c.markdownSvc.BasePath() {
		return c.fileSource
	}
	md := markdown.NewService(markdown.Config{
		BasePath: dir,
		Pattern:  c.Config.Content.Pattern,
		Parser: interfaces.ParseOptions{
			Extensions: c.Config.Markdown.Extensions,
			Sanitize:   c.Config.Markdown.Sanitize,
			HardWraps:  c.Config.Markdown.HardWraps,
			SafeMode:   c.Config.Markdown.SafeMode,
		},
	}, nil, markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)))
	return articles.NewFileSource(md, articles.FileSourceConfig{},
		articles.WithFileSourceLogger(logging.ArticlesLogger(c.loggerProvider)),
		articles.WithNow(c.now),
	)
}

// Close stops the content watcher and closes a database the container opened.
func (c *Container) Close() error {
	var errs []error
	if c.cachedSource != nil {
		errs = append(errs, c.cachedSource.Close())
	}
	if c.bunDB != nil && c.ownsDB {
		errs = append(errs, c.bunDB.Close())
		c.bunDB = nil
	}
	return errors.Join(errs...)
}

// LoggerProvider exposes the configured logger provider. It may be nil when
// the logger feature is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns a module-scoped logger.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// MarkdownService exposes the configured markdown service.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

// FileSource exposes the markdown-backed article source.
func (c *Container) FileSource() *articles.FileSource {
	return c.fileSource
}

// Catalog returns the catalog repository, or nil when no database is wired.
func (c *Container) Catalog() *articles.BunArticleRepository {
	return c.catalog
}

// DB returns the catalog database, or nil.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// Source returns the article source the service reads from.
func (c *Container) Source() articles.Source {
	return c.source
}

// ArticleService returns the configured article service.
func (c *Container) ArticleService() articles.Service {
	return c.articleSvc
}

// SearchEngine returns the configured search engine.
func (c *Container) SearchEngine() *search.Engine {
	return c.engine
}

// Commands returns the article command handlers.
func (c *Container) Commands() *articlescmd.HandlerSet {
	return c.commands
}

// HTTPHandler builds the JSON API handler.
func (c *Container) HTTPHandler() http.Handler {
	return bloghttp.NewAPI(
		bloghttp.WithBasePath(c.Config.HTTP.BasePath),
		bloghttp.WithArticleService(c.articleSvc),
		bloghttp.WithSearchEngine(c.engine),
		bloghttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	).Handler()
}

// MCPServer builds the MCP tool server.
func (c *Container) MCPServer() (*mcpserver.Server, error) {
	return mcpserver.NewServer(c.articleSvc,
		mcpserver.WithSearchEngine(c.engine),
		mcpserver.WithLogger(logging.MCPLogger(c.loggerProvider)),
	)
}
