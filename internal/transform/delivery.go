package transform

import (
	"sort"
	"time"

	"github.com/guregu/null"

	"github.com/johnwards/olist-analytics/internal/domain"
	"github.com/johnwards/olist-analytics/internal/extract"
)

// DeliveryPerformance aggregates the one-row-per-order base by region
// (customer state). Orders with no matching customer have no region and are
// excluded. Every ratio substitutes 0 when its denominator is 0 so the output
// never carries NaN.
func DeliveryPerformance(in *extract.Inputs) []domain.DeliveryPerformance {
	base := orderBase(in)
	type group struct {
		perf      domain.DeliveryPerformance
		orderIDs  map[string]struct{}
		daysSum   int
		daysCount int
	}

	groups := make(map[string]*group)
	for _, row := range base {
		if row.customer == nil {
			continue
		}
		region := row.customer.State
		g := groups[region]
		if g == nil {
			g = &group{
				perf:     domain.DeliveryPerformance{Region: region},
				orderIDs: make(map[string]struct{}),
			}
			groups[region] = g
		}

		g.orderIDs[row.order.OrderID] = struct{}{}
		if row.order.DeliveredCustomerDate.Valid {
			g.perf.DeliveredCount++
		}
		if isLate(row.order) {
			g.perf.TotalLate++
		}
		if isPending(row.order) {
			g.perf.PendingCount++
		}
		if days, ok := deliveryDays(row.order); ok {
			g.daysSum += days
			g.daysCount++
		}
	}

	regions := make([]string, 0, len(groups))
	for region := range groups {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	out := make([]domain.DeliveryPerformance, 0, len(groups))
	for _, region := range regions {
		g := groups[region]
		g.perf.TotalOrders = len(g.orderIDs)
		if g.daysCount > 0 {
			g.perf.AvgDeliveryDays = null.FloatFrom(float64(g.daysSum) / float64(g.daysCount))
		}
		if g.perf.DeliveredCount > 0 {
			g.perf.PercentLate = float64(g.perf.TotalLate) / float64(g.perf.DeliveredCount) * 100
		}
		if g.perf.TotalOrders > 0 {
			g.perf.PercentPending = float64(g.perf.PendingCount) / float64(g.perf.TotalOrders) * 100
		}
		out = append(out, g.perf)
	}
	return out
}

// deliveryDays is the elapsed whole days between purchase and customer
// delivery. Undefined when either timestamp is null: a non-delivered order
// contributes no value to the average, not a zero.
func deliveryDays(o domain.Order) (int, bool) {
	if !o.DeliveredCustomerDate.Valid || !o.PurchaseTimestamp.Valid {
		return 0, false
	}
	return int(o.DeliveredCustomerDate.Time.Sub(o.PurchaseTimestamp.Time) / (24 * time.Hour)), true
}

// isLate reports whether the order was delivered after its estimated delivery
// date. A null delivery or estimate is never late.
func isLate(o domain.Order) bool {
	return o.DeliveredCustomerDate.Valid && o.EstimatedDeliveryDate.Valid &&
		o.DeliveredCustomerDate.Time.After(o.EstimatedDeliveryDate.Time)
}

// isPending reports whether the order is still awaiting delivery: not yet
// delivered and not in a terminal status. The terminal list is a closed
// policy set (delivered, canceled, unavailable); any other status on an
// undelivered order counts as pending.
func isPending(o domain.Order) bool {
	return !o.DeliveredCustomerDate.Valid && !o.IsTerminal()
}
