package analytics

import (
	"net/http"

	"github.com/johnwards/olist-analytics/internal/store"
)

// RegisterRoutes adds the materialized-table read endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s store.AnalyticsStore) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /{$}", h.Probe)
	mux.HandleFunc("GET /sales_summary", h.SalesSummary)
	mux.HandleFunc("GET /sales_summary/{region}", h.SalesSummaryByRegion)
	mux.HandleFunc("GET /delivery_performance", h.DeliveryPerformance)
}
