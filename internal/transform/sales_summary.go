package transform

import (
	"sort"

	"github.com/guregu/null"

	"github.com/johnwards/olist-analytics/internal/domain"
	"github.com/johnwards/olist-analytics/internal/extract"
)

// SalesSummary aggregates the one-row-per-order base by customer_unique_id.
// Orders with no matching customer have no unique ID to group under and are
// excluded, matching null-key group-by semantics. Because the base carries
// payments pre-summed per order, total_sales counts each payment exactly once
// regardless of how many items the order has.
func SalesSummary(in *extract.Inputs) []domain.SalesSummary {
	base := orderBase(in)
	type group struct {
		summary  domain.SalesSummary
		orderIDs map[string]struct{}
	}

	groups := make(map[string]*group)
	for _, row := range base {
		if row.customer == nil {
			continue
		}
		uid := row.customer.CustomerUniqueID
		g := groups[uid]
		if g == nil {
			g = &group{
				summary: domain.SalesSummary{
					CustomerUniqueID: uid,
					CustomerID:       row.customer.CustomerID,
					Region:           null.StringFrom(row.customer.State),
				},
				orderIDs: make(map[string]struct{}),
			}
			groups[uid] = g
		}

		g.orderIDs[row.order.OrderID] = struct{}{}
		g.summary.TotalSales += row.paymentTotal
		if t := row.order.PurchaseTimestamp; t.Valid {
			if !g.summary.LastOrderDate.Valid || t.Time.After(g.summary.LastOrderDate.Time) {
				g.summary.LastOrderDate = t
			}
		}
	}

	uids := make([]string, 0, len(groups))
	for uid := range groups {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	out := make([]domain.SalesSummary, 0, len(groups))
	for _, uid := range uids {
		g := groups[uid]
		g.summary.TotalOrders = len(g.orderIDs)
		if g.summary.TotalOrders > 0 {
			g.summary.AvgOrderValue = g.summary.TotalSales / float64(g.summary.TotalOrders)
		}
		out = append(out, g.summary)
	}
	return out
}
