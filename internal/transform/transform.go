// Package transform turns the four extracted Olist datasets into the three
// analytical tables: raw_orders, sales_summary and delivery_performance.
// All the pipeline's business rules live here; extraction and loading are
// plain I/O.
package transform

import (
	"github.com/johnwards/olist-analytics/internal/domain"
	"github.com/johnwards/olist-analytics/internal/extract"
)

// Outputs holds the three derived tables produced by one pipeline run.
type Outputs struct {
	RawOrders           []domain.RawOrder
	SalesSummary        []domain.SalesSummary
	DeliveryPerformance []domain.DeliveryPerformance
}

// Apply derives all three output tables from the extracted inputs. The
// aggregate tables are built from a one-row-per-order base with payments
// pre-summed per order, never from the row-exploded raw_orders table, so
// item/payment fan-out cannot inflate sales totals.
func Apply(in *extract.Inputs) *Outputs {
	return &Outputs{
		RawOrders:           RawOrders(in),
		SalesSummary:        SalesSummary(in),
		DeliveryPerformance: DeliveryPerformance(in),
	}
}

// orderRow is one order with its customer (nil on join miss) and the summed
// payment value across all of the order's payment entries.
type orderRow struct {
	order        domain.Order
	customer     *domain.Customer
	paymentTotal float64
}

// orderBase builds the one-row-per-order aggregation base: orders left-joined
// with customers and with per-order payment sums. Orders with no payment rows
// get a total of 0 rather than dropping out.
func orderBase(in *extract.Inputs) []orderRow {
	customers := customersByID(in.Customers)

	totals := make(map[string]float64, len(in.Orders))
	for _, p := range in.Payments {
		totals[p.OrderID] += p.Value
	}

	rows := make([]orderRow, 0, len(in.Orders))
	for _, o := range in.Orders {
		rows = append(rows, orderRow{
			order:        o,
			customer:     customers[o.CustomerID],
			paymentTotal: totals[o.OrderID],
		})
	}
	return rows
}

// customersByID indexes customers by customer_id, keeping the first row when
// the extract carries duplicates.
func customersByID(customers []domain.Customer) map[string]*domain.Customer {
	byID := make(map[string]*domain.Customer, len(customers))
	for i := range customers {
		c := &customers[i]
		if _, ok := byID[c.CustomerID]; !ok {
			byID[c.CustomerID] = c
		}
	}
	return byID
}
