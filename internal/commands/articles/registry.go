package articlescmd

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-blog/internal/articles"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Dependencies lists the collaborators the article handlers run against.
type Dependencies struct {
	Sources       SourceFactory
	Catalog       articles.ArticleRepository
	SourceCache   CacheInvalidator
	CatalogCache  CacheInvalidator
	OnSyncResult  func(*articles.SyncResult)
	OnCheckResult func(*articles.CheckReport)
}

// HandlerSet groups the handlers produced by RegisterArticleCommands.
type HandlerSet struct {
	Sync       *SyncArticlesHandler
	Check      *CheckArticlesHandler
	Invalidate *InvalidateCacheHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	syncHandlerOpts       []commands.HandlerOption[SyncArticlesCommand]
	checkHandlerOpts      []commands.HandlerOption[CheckArticlesCommand]
	invalidateHandlerOpts []commands.HandlerOption[InvalidateCacheCommand]
}

// WithSyncHandlerOptions forwards options to the SyncArticlesHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncArticlesCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// WithCheckHandlerOptions forwards options to the CheckArticlesHandler constructor.
func WithCheckHandlerOptions(opts ...commands.HandlerOption[CheckArticlesCommand]) Option {
	return func(cfg *options) {
		cfg.checkHandlerOpts = append(cfg.checkHandlerOpts, opts...)
	}
}

// WithInvalidateHandlerOptions forwards options to the InvalidateCacheHandler constructor.
func WithInvalidateHandlerOptions(opts ...commands.HandlerOption[InvalidateCacheCommand]) Option {
	return func(cfg *options) {
		cfg.invalidateHandlerOpts = append(cfg.invalidateHandlerOpts, opts...)
	}
}

// RegisterArticleCommands builds the article command handlers and registers
// them with reg when it is non-nil.
func RegisterArticleCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if deps.Sources == nil {
		return nil, errors.New("articles command registration: source factory is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "articles")

	set := &HandlerSet{
		Sync:       NewSyncArticlesHandler(deps.Sources, deps.Catalog, logger, deps.OnSyncResult, cfg.syncHandlerOpts...),
		Check:      NewCheckArticlesHandler(deps.Sources, logger, deps.OnCheckResult, cfg.checkHandlerOpts...),
		Invalidate: NewInvalidateCacheHandler(deps.SourceCache, deps.CatalogCache, logger, cfg.invalidateHandlerOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Sync, set.Check, set.Invalidate} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// DispatcherRegistry subscribes handlers on the go-command dispatcher so
// callers can dispatch messages without holding handler references.
type DispatcherRegistry struct {
	subscriptions []subscription
}

type subscription interface {
	Unsubscribe()
}

// RegisterCommand subscribes one of the article handlers.
func (r *DispatcherRegistry) RegisterCommand(handler any) error {
	switch h := handler.(type) {
	case *SyncArticlesHandler:
		r.subscriptions = append(r.subscriptions, dispatcher.SubscribeCommand[SyncArticlesCommand](h))
	case *CheckArticlesHandler:
		r.subscriptions = append(r.subscriptions, dispatcher.SubscribeCommand[CheckArticlesCommand](h))
	case *InvalidateCacheHandler:
		r.subscriptions = append(r.subscriptions, dispatcher.SubscribeCommand[InvalidateCacheCommand](h))
	default:
		return fmt.Errorf("articles command registration: unsupported handler %T", handler)
	}
	return nil
}

// Close removes every subscription made through the registry.
func (r *DispatcherRegistry) Close() {
	for _, sub := range r.subscriptions {
		sub.Unsubscribe()
	}
	r.subscriptions = nil
}
