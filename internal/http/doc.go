// Package http exposes the article service and search engine as a read-only
// JSON API built on chi.
//
// Routes mount under the configured base path (default /api):
//   - GET /search?q&category&author&sortBy&sortOrder
//   - GET /search/filters
//   - GET /categories
//   - GET /posts?category
//   - GET /posts/{slug}
//
// Handler additionally serves GET /healthz. Host applications can mount the
// routes on their own chi router through Register.
package http
