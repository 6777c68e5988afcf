package domain

import "github.com/guregu/null"

// SalesSummary is one row of the sales_summary table: per-customer sales
// totals keyed by the stable customer_unique_id. CustomerID and Region carry
// the first-seen values for that unique customer.
type SalesSummary struct {
	CustomerUniqueID string      `json:"customer_unique_id"`
	CustomerID       string      `json:"customer_id"`
	Region           null.String `json:"region"`
	TotalOrders      int         `json:"total_orders"`
	TotalSales       float64     `json:"total_sales"`
	AvgOrderValue    float64     `json:"avg_order_value"`
	LastOrderDate    null.Time   `json:"last_order_date"`
}

// DeliveryPerformance is one row of the delivery_performance table: delivery
// metrics aggregated per region (customer state). AvgDeliveryDays is null for
// a region with no delivered orders; the percentage fields substitute 0 when
// their denominator is 0.
type DeliveryPerformance struct {
	Region          string     `json:"region"`
	TotalOrders     int        `json:"total_orders"`
	DeliveredCount  int        `json:"delivered_count"`
	PendingCount    int        `json:"pending_count"`
	AvgDeliveryDays null.Float `json:"avg_delivery_days"`
	TotalLate       int        `json:"total_late"`
	PercentLate     float64    `json:"percent_late"`
	PercentPending  float64    `json:"percent_pending"`
}
