package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-blog/internal/articles"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/search"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultBasePath is where the article API mounts unless overridden.
const DefaultBasePath = "/api"

// API serves the read-only article endpoints.
type API struct {
	basePath string
	articles articles.Service
	engine   *search.Engine
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: DefaultBasePath,
		engine:   search.NewEngine(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithArticleService wires the article service.
func WithArticleService(service articles.Service) Option {
	return func(api *API) {
		api.articles = service
	}
}

// WithSearchEngine wires the search engine.
func WithSearchEngine(engine *search.Engine) Option {
	return func(api *API) {
		if engine != nil {
			api.engine = engine
		}
	}
}

// WithLogger sets the logger used for request and failure logs.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Handler returns a chi router with the middleware stack and every route.
func (api *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(api.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	api.Register(r)
	return r
}

// Register mounts the article routes on r under the base path.
func (api *API) Register(r chi.Router) {
	r.Get(joinPath(api.basePath, "search"), api.handleSearch)
	r.Get(joinPath(api.basePath, "search/filters"), api.handleFilters)
	r.Get(joinPath(api.basePath, "categories"), api.handleCategories)
	r.Get(joinPath(api.basePath, "posts"), api.handlePostList)
	r.Get(joinPath(api.basePath, "posts/{slug}"), api.handlePostGet)
}

func (api *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ctx := logging.ContextWithFields(r.Context(), map[string]any{
			"request_id": middleware.GetReqID(r.Context()),
		})
		next.ServeHTTP(ww, r.WithContext(ctx))
		api.logger.WithContext(ctx).Debug("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
		)
	})
}
