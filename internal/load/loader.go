// Package load writes the derived tables to the analytics database. Each
// table is replaced wholesale inside its own transaction: dropped, recreated
// and filled with batched inserts. There is no transaction across tables, so
// a crash between writes can leave the three tables from different runs until
// the next successful run.
package load

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/johnwards/olist-analytics/internal/domain"
)

// Table names produced by the pipeline.
const (
	TableRawOrders           = "raw_orders"
	TableSalesSummary        = "sales_summary"
	TableDeliveryPerformance = "delivery_performance"
)

const defaultBatchSize = 500

// Loader replaces analytics tables in the backing store.
type Loader struct {
	db        *sql.DB
	batchSize int
}

// New creates a Loader writing through db with the default batch size.
func New(db *sql.DB) *Loader {
	return &Loader{db: db, batchSize: defaultBatchSize}
}

// ReplaceRawOrders rebuilds the raw_orders table from rows.
func (l *Loader) ReplaceRawOrders(ctx context.Context, rows []domain.RawOrder) error {
	schema := `CREATE TABLE raw_orders (
		order_id TEXT NOT NULL,
		customer_id TEXT,
		order_status TEXT,
		order_purchase_timestamp TIMESTAMP,
		order_approved_at TIMESTAMP,
		order_delivered_carrier_date TIMESTAMP,
		order_delivered_customer_date TIMESTAMP,
		order_estimated_delivery_date TIMESTAMP,
		customer_unique_id TEXT,
		customer_zip_code_prefix TEXT,
		customer_city TEXT,
		customer_state TEXT,
		order_item_id INTEGER,
		product_id TEXT,
		seller_id TEXT,
		shipping_limit_date TIMESTAMP,
		price REAL NOT NULL,
		freight_value REAL NOT NULL,
		payment_sequential INTEGER,
		payment_type TEXT,
		payment_installments INTEGER,
		payment_value REAL NOT NULL
	)`
	cols := []string{
		"order_id", "customer_id", "order_status",
		"order_purchase_timestamp", "order_approved_at",
		"order_delivered_carrier_date", "order_delivered_customer_date",
		"order_estimated_delivery_date",
		"customer_unique_id", "customer_zip_code_prefix", "customer_city", "customer_state",
		"order_item_id", "product_id", "seller_id", "shipping_limit_date",
		"price", "freight_value",
		"payment_sequential", "payment_type", "payment_installments", "payment_value",
	}
	return l.replace(ctx, TableRawOrders, schema, cols, len(rows), func(i int) []any {
		r := rows[i]
		return []any{
			r.OrderID, r.CustomerID, r.Status,
			r.PurchaseTimestamp, r.ApprovedAt,
			r.DeliveredCarrierDate, r.DeliveredCustomerDate,
			r.EstimatedDeliveryDate,
			r.CustomerUniqueID, r.CustomerZipCodePrefix, r.CustomerCity, r.CustomerState,
			r.OrderItemID, r.ProductID, r.SellerID, r.ShippingLimitDate,
			r.Price, r.FreightValue,
			r.PaymentSequential, r.PaymentType, r.PaymentInstallments, r.PaymentValue,
		}
	})
}

// ReplaceSalesSummary rebuilds the sales_summary table from rows.
func (l *Loader) ReplaceSalesSummary(ctx context.Context, rows []domain.SalesSummary) error {
	schema := `CREATE TABLE sales_summary (
		customer_unique_id TEXT NOT NULL,
		customer_id TEXT NOT NULL,
		region TEXT,
		total_orders INTEGER NOT NULL,
		total_sales REAL NOT NULL,
		avg_order_value REAL NOT NULL,
		last_order_date TIMESTAMP
	)`
	cols := []string{
		"customer_unique_id", "customer_id", "region",
		"total_orders", "total_sales", "avg_order_value", "last_order_date",
	}
	return l.replace(ctx, TableSalesSummary, schema, cols, len(rows), func(i int) []any {
		r := rows[i]
		return []any{
			r.CustomerUniqueID, r.CustomerID, r.Region,
			r.TotalOrders, r.TotalSales, r.AvgOrderValue, r.LastOrderDate,
		}
	})
}

// ReplaceDeliveryPerformance rebuilds the delivery_performance table from rows.
func (l *Loader) ReplaceDeliveryPerformance(ctx context.Context, rows []domain.DeliveryPerformance) error {
	schema := `CREATE TABLE delivery_performance (
		region TEXT NOT NULL,
		total_orders INTEGER NOT NULL,
		delivered_count INTEGER NOT NULL,
		pending_count INTEGER NOT NULL,
		avg_delivery_days REAL,
		total_late INTEGER NOT NULL,
		percent_late REAL NOT NULL,
		percent_pending REAL NOT NULL
	)`
	cols := []string{
		"region", "total_orders", "delivered_count", "pending_count",
		"avg_delivery_days", "total_late", "percent_late", "percent_pending",
	}
	return l.replace(ctx, TableDeliveryPerformance, schema, cols, len(rows), func(i int) []any {
		r := rows[i]
		return []any{
			r.Region, r.TotalOrders, r.DeliveredCount, r.PendingCount,
			r.AvgDeliveryDays, r.TotalLate, r.PercentLate, r.PercentPending,
		}
	})
}

// replace drops and recreates table, then inserts n rows in batches, all in
// one transaction. rowArgs returns the insert arguments for row i in column
// order.
func (l *Loader) replace(ctx context.Context, table, schema string, cols []string, n int, rowArgs func(i int) []any) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace %s: %w", table, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("drop %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	placeholder := "(" + strings.Repeat("?, ", len(cols)-1) + "?)"
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", table, strings.Join(cols, ", "))

	for start := 0; start < n; start += l.batchSize {
		end := min(start+l.batchSize, n)

		values := make([]string, 0, end-start)
		args := make([]any, 0, (end-start)*len(cols))
		for i := start; i < end; i++ {
			values = append(values, placeholder)
			args = append(args, rowArgs(i)...)
		}

		if _, err := tx.ExecContext(ctx, prefix+strings.Join(values, ", "), args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s: %w", table, err)
	}
	return nil
}
