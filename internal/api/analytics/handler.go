// Package analytics serves the materialized-table read surface over the
// tables the pipeline loads: sales_summary and delivery_performance.
package analytics

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/johnwards/olist-analytics/internal/api"
	"github.com/johnwards/olist-analytics/internal/domain"
	"github.com/johnwards/olist-analytics/internal/store"
)

// Pagination bounds for the sales summary listing.
const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Handler handles analytics HTTP requests.
type Handler struct {
	store store.AnalyticsStore
}

// Probe handles GET /. It runs a trivial round-trip against the backing
// store and reports unavailable instead of propagating a raw fault.
func (h *Handler) Probe(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	if err := h.store.Ping(r.Context()); err != nil {
		api.WriteError(w, http.StatusServiceUnavailable,
			api.NewUnavailableError(fmt.Sprintf("Database connection failed: %v", err), corrID))
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SalesSummary handles GET /sales_summary: one page of customers sorted by
// total sales descending.
func (h *Handler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	q := r.URL.Query()

	page := 1
	if v := q.Get("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			api.WriteError(w, http.StatusBadRequest, api.NewValidationError("page must be a positive integer", corrID))
			return
		}
		page = parsed
	}
	pageSize := defaultPageSize
	if v := q.Get("page_size"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > maxPageSize {
			api.WriteError(w, http.StatusBadRequest,
				api.NewValidationError(fmt.Sprintf("page_size must be between 1 and %d", maxPageSize), corrID))
			return
		}
		pageSize = parsed
	}

	rows, err := h.store.SalesSummary(r.Context(), page, pageSize)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}
	if rows == nil {
		rows = []domain.SalesSummary{}
	}
	api.WriteJSON(w, http.StatusOK, rows)
}

// DeliveryPerformance handles GET /delivery_performance: every region's
// metrics, unordered.
func (h *Handler) DeliveryPerformance(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	rows, err := h.store.DeliveryPerformance(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}
	if rows == nil {
		rows = []domain.DeliveryPerformance{}
	}
	api.WriteJSON(w, http.StatusOK, rows)
}

// SalesSummaryByRegion handles GET /sales_summary/{region}. The region code
// is matched case-sensitively; a region with no rows is a 404, not an empty
// 200 and not a server error.
func (h *Handler) SalesSummaryByRegion(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())
	region := r.PathValue("region")

	rows, err := h.store.SalesSummaryByRegion(r.Context(), region)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
		return
	}
	if len(rows) == 0 {
		api.WriteError(w, http.StatusNotFound,
			api.NewNotFoundError(fmt.Sprintf("No data found for region: %s", region), corrID))
		return
	}
	api.WriteJSON(w, http.StatusOK, rows)
}
