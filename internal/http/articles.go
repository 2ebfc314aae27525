package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	blogarticles "github.com/goliatone/go-blog/articles"
)

var errServiceUnavailable = errors.New("article service not configured")

type searchResponse struct {
	Results   []blogarticles.SearchResult `json:"results"`
	Total     int                         `json:"total"`
	Query     string                      `json:"query,omitempty"`
	Category  string                      `json:"category,omitempty"`
	Author    string                      `json:"author,omitempty"`
	SortBy    blogarticles.SortKey        `json:"sortBy,omitempty"`
	SortOrder blogarticles.SortOrder      `json:"sortOrder,omitempty"`
}

type filtersResponse struct {
	Categories []string `json:"categories"`
	Authors    []string `json:"authors"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type postsResponse struct {
	Posts []*blogarticles.Article `json:"posts"`
	Total int                     `json:"total"`
}

func (api *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to perform search"

	rawQuery := r.URL.Query().Get("q")
	opts := blogarticles.SearchOptions{
		Query:     rawQuery,
		Category:  queryValue(r, "category"),
		Author:    queryValue(r, "author"),
		SortBy:    blogarticles.ParseSortKey(queryValue(r, "sortBy")),
		SortOrder: blogarticles.ParseSortOrder(queryValue(r, "sortOrder")),
	}.Normalized()

	if opts.Query == "" {
		writeJSON(w, http.StatusOK, searchResponse{Results: []blogarticles.SearchResult{}, Total: 0})
		return
	}
	if api.articles == nil {
		api.writeFailure(w, r, failure, errServiceUnavailable)
		return
	}

	records, err := api.articles.List(r.Context())
	if err != nil {
		api.writeFailure(w, r, failure, err)
		return
	}

	results := api.engine.Search(records, opts)
	writeJSON(w, http.StatusOK, searchResponse{
		Results:   results,
		Total:     len(results),
		Query:     rawQuery,
		Category:  opts.Category,
		Author:    opts.Author,
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
	})
}

func (api *API) handleFilters(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to fetch filter options"
	if api.articles == nil {
		api.writeFailure(w, r, failure, errServiceUnavailable)
		return
	}

	categories, err := api.articles.Categories(r.Context())
	if err != nil {
		api.writeFailure(w, r, failure, err)
		return
	}
	authors, err := api.articles.Authors(r.Context())
	if err != nil {
		api.writeFailure(w, r, failure, err)
		return
	}
	writeJSON(w, http.StatusOK, filtersResponse{Categories: categories, Authors: authors})
}

func (api *API) handleCategories(w http.ResponseWriter, r *http.Request) {
	const failure = "Internal server error"
	if api.articles == nil {
		api.writeFailure(w, r, failure, errServiceUnavailable)
		return
	}

	categories, err := api.articles.Categories(r.Context())
	if err != nil {
		api.writeFailure(w, r, failure, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
}

func (api *API) handlePostList(w http.ResponseWriter, r *http.Request) {
	const failure = "Internal server error"
	if api.articles == nil {
		api.writeFailure(w, r, failure, errServiceUnavailable)
		return
	}

	var (
		records []*blogarticles.Article
		err     error
	)
	if category := queryValue(r, "category"); category != "" {
		records, err = api.articles.ListByCategory(r.Context(), category)
	} else {
		records, err = api.articles.List(r.Context())
	}
	if err != nil {
		api.writeFailure(w, r, failure, err)
		return
	}
	if records == nil {
		records = []*blogarticles.Article{}
	}
	writeJSON(w, http.StatusOK, postsResponse{Posts: records, Total: len(records)})
}

func (api *API) handlePostGet(w http.ResponseWriter, r *http.Request) {
	const failure = "Internal server error"
	if api.articles == nil {
		api.writeFailure(w, r, failure, errServiceUnavailable)
		return
	}

	article, err := api.articles.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		api.writeFailure(w, r, failure, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}
