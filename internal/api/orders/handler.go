package orders

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/johnwards/olist-analytics/internal/api"
	"github.com/johnwards/olist-analytics/internal/extract"
)

// Pagination bounds for the orders listing.
const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// Handler handles order listing HTTP requests over the in-memory snapshot.
type Handler struct {
	snapshot *Snapshot
}

// Health handles GET /health. It answers ok even when the snapshot failed to
// load; data availability is reported per-request by List.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// List handles GET /orders.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	if !h.snapshot.Loaded() {
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError("Orders data not loaded", corrID))
		return
	}

	q := r.URL.Query()

	page, err := positiveInt(q.Get("page"), 1)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("page must be a positive integer", corrID))
		return
	}
	pageSize, err := positiveInt(q.Get("page_size"), defaultPageSize)
	if err != nil || pageSize > maxPageSize {
		api.WriteError(w, http.StatusBadRequest,
			api.NewValidationError(fmt.Sprintf("page_size must be between 1 and %d", maxPageSize), corrID))
		return
	}

	filter := Filter{
		CustomerID: q.Get("customer_id"),
		Status:     q.Get("order_status"),
	}
	if v := q.Get("date_from"); v != "" {
		t, err := extract.ParseTime(v)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest,
				api.NewValidationError("Invalid date_from format; use ISO YYYY-MM-DD", corrID))
			return
		}
		filter.From = &t
	}
	if v := q.Get("date_to"); v != "" {
		t, err := extract.ParseTime(v)
		if err != nil {
			api.WriteError(w, http.StatusBadRequest,
				api.NewValidationError("Invalid date_to format; use ISO YYYY-MM-DD", corrID))
			return
		}
		filter.To = &t
	}

	matched := h.snapshot.Select(filter)

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	api.WriteJSON(w, http.StatusOK, api.NewPage(page, pageSize, len(matched), matched[start:end]))
}

// positiveInt parses s as a strictly positive integer, returning fallback
// when s is empty.
func positiveInt(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid value %q", s)
	}
	return v, nil
}
