// Package store provides read-side queries over the analytics tables the
// pipeline materializes. Queries are short-lived and per-request; nothing
// here mutates data.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/olist-analytics/internal/domain"
)

// AnalyticsStore defines the read interface served by the analytics API.
type AnalyticsStore interface {
	Ping(ctx context.Context) error
	SalesSummary(ctx context.Context, page, pageSize int) ([]domain.SalesSummary, error)
	SalesSummaryByRegion(ctx context.Context, region string) ([]domain.SalesSummary, error)
	DeliveryPerformance(ctx context.Context) ([]domain.DeliveryPerformance, error)
}

// SQLiteAnalyticsStore implements AnalyticsStore backed by SQLite.
type SQLiteAnalyticsStore struct {
	db *sql.DB
}

// New creates a SQLiteAnalyticsStore over db.
func New(db *sql.DB) *SQLiteAnalyticsStore {
	return &SQLiteAnalyticsStore{db: db}
}

// Ping executes a trivial round-trip against the database.
func (s *SQLiteAnalyticsStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// SalesSummary returns one page of sales_summary rows ordered by total sales
// descending. Pages are 1-indexed.
func (s *SQLiteAnalyticsStore) SalesSummary(ctx context.Context, page, pageSize int) ([]domain.SalesSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT customer_unique_id, customer_id, region, total_orders, total_sales, avg_order_value, last_order_date
		 FROM sales_summary
		 ORDER BY total_sales DESC
		 LIMIT ? OFFSET ?`,
		pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("query sales_summary: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanSalesSummaries(rows)
}

// SalesSummaryByRegion returns all sales_summary rows for one exact region
// code, ordered by total sales descending. The match is case-sensitive; the
// caller decides how to surface an empty result.
func (s *SQLiteAnalyticsStore) SalesSummaryByRegion(ctx context.Context, region string) ([]domain.SalesSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT customer_unique_id, customer_id, region, total_orders, total_sales, avg_order_value, last_order_date
		 FROM sales_summary
		 WHERE region = ?
		 ORDER BY total_sales DESC`,
		region,
	)
	if err != nil {
		return nil, fmt.Errorf("query sales_summary by region: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanSalesSummaries(rows)
}

// DeliveryPerformance returns all delivery_performance rows. No ordering is
// guaranteed.
func (s *SQLiteAnalyticsStore) DeliveryPerformance(ctx context.Context) ([]domain.DeliveryPerformance, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT region, total_orders, delivered_count, pending_count, avg_delivery_days, total_late, percent_late, percent_pending
		 FROM delivery_performance`,
	)
	if err != nil {
		return nil, fmt.Errorf("query delivery_performance: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.DeliveryPerformance
	for rows.Next() {
		var d domain.DeliveryPerformance
		if err := rows.Scan(
			&d.Region, &d.TotalOrders, &d.DeliveredCount, &d.PendingCount,
			&d.AvgDeliveryDays, &d.TotalLate, &d.PercentLate, &d.PercentPending,
		); err != nil {
			return nil, fmt.Errorf("scan delivery_performance: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanSalesSummaries(rows *sql.Rows) ([]domain.SalesSummary, error) {
	var out []domain.SalesSummary
	for rows.Next() {
		var s domain.SalesSummary
		if err := rows.Scan(
			&s.CustomerUniqueID, &s.CustomerID, &s.Region,
			&s.TotalOrders, &s.TotalSales, &s.AvgOrderValue, &s.LastOrderDate,
		); err != nil {
			return nil, fmt.Errorf("scan sales_summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
