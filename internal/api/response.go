package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteJSON marshals v as JSON and writes it to w with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// Page is the paginated list envelope. Total is the filtered row count, not
// the size of the underlying dataset, and Items is never null in the JSON
// output even when the page is empty.
type Page struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int   `json:"total"`
	Items    []any `json:"items"`
}

// NewPage builds a Page envelope from a slice, normalizing a nil slice to an
// empty one.
func NewPage[T any](page, pageSize, total int, items []T) Page {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return Page{Page: page, PageSize: pageSize, Total: total, Items: out}
}
