package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/goliatone/go-blog/internal/articles"
)

type errorResponse struct {
	Error string `json:"error"`
}

// joinPath roots suffix under base, always yielding an absolute path.
func joinPath(base, suffix string) string {
	return path.Join("/", strings.TrimSpace(base), strings.TrimSpace(suffix))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeFailure answers 404 for a missing article and 500 with the fixed
// message otherwise. The underlying error is only logged.
func (api *API) writeFailure(w http.ResponseWriter, r *http.Request, message string, err error) {
	var missing *articles.NotFoundError
	if errors.As(err, &missing) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Post not found"})
		return
	}
	api.logger.WithContext(r.Context()).Error("http.request.failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: message})
}

func queryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
