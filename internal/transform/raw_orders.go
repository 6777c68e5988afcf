package transform

import (
	"github.com/guregu/null"

	"github.com/johnwards/olist-analytics/internal/domain"
	"github.com/johnwards/olist-analytics/internal/extract"
)

// RawOrders builds the denormalized raw_orders table: orders left-joined with
// customers on customer_id, then with order items and payments on order_id.
// Every order survives the joins; missing-side fields become null. An order
// with several items and several payments yields their cross product, which
// keepFirst then collapses per composite key.
//
// Output order follows the input order of the orders extract, so repeated
// runs over the same inputs produce identical tables.
func RawOrders(in *extract.Inputs) []domain.RawOrder {
	customers := customersByID(in.Customers)

	itemsByOrder := make(map[string][]domain.OrderItem)
	for _, it := range in.Items {
		itemsByOrder[it.OrderID] = append(itemsByOrder[it.OrderID], it)
	}
	paymentsByOrder := make(map[string][]domain.Payment)
	for _, p := range in.Payments {
		paymentsByOrder[p.OrderID] = append(paymentsByOrder[p.OrderID], p)
	}

	seen := make(map[domain.RawOrderKey]struct{})
	var out []domain.RawOrder

	for _, o := range in.Orders {
		row := domain.RawOrder{
			OrderID:               o.OrderID,
			CustomerID:            o.CustomerID,
			Status:                o.Status,
			PurchaseTimestamp:     o.PurchaseTimestamp,
			ApprovedAt:            o.ApprovedAt,
			DeliveredCarrierDate:  o.DeliveredCarrierDate,
			DeliveredCustomerDate: o.DeliveredCustomerDate,
			EstimatedDeliveryDate: o.EstimatedDeliveryDate,
		}
		if c := customers[o.CustomerID]; c != nil {
			row.CustomerUniqueID = null.StringFrom(c.CustomerUniqueID)
			row.CustomerZipCodePrefix = null.StringFrom(c.ZipCodePrefix)
			row.CustomerCity = null.StringFrom(c.City)
			row.CustomerState = null.StringFrom(c.State)
		}

		// Left-join semantics: an order with no items (or no payments) still
		// produces rows, with the missing side null.
		items := itemsByOrder[o.OrderID]
		if len(items) == 0 {
			items = []domain.OrderItem{{}}
		}
		payments := paymentsByOrder[o.OrderID]
		if len(payments) == 0 {
			payments = []domain.Payment{{}}
		}

		for _, it := range items {
			r := row
			if it.OrderID != "" {
				r.OrderItemID = null.IntFrom(int64(it.OrderItemID))
				r.ProductID = null.StringFrom(it.ProductID)
				r.SellerID = null.StringFrom(it.SellerID)
				r.ShippingLimitDate = it.ShippingLimitDate
				r.Price = it.Price
				r.FreightValue = it.FreightValue
			}
			for _, p := range payments {
				rp := r
				if p.OrderID != "" {
					rp.PaymentSequential = null.IntFrom(int64(p.Sequential))
					rp.PaymentType = null.StringFrom(p.Type)
					rp.PaymentInstallments = null.IntFrom(int64(p.Installments))
					rp.PaymentValue = p.Value
				}
				if keepFirst(seen, rp.Key()) {
					out = append(out, rp)
				}
			}
		}
	}
	return out
}

// keepFirst is the raw_orders de-duplication policy: for each composite key
// (order_id, order_item_id, payment_sequential) only the first row produced
// by the join survives. The policy is deliberately lossy: an order whose
// join fan-out repeats a key keeps a single row for it. Downstream consumers
// depend on exactly this shape, so it must not be "fixed" into keeping all
// combinations.
func keepFirst(seen map[domain.RawOrderKey]struct{}, key domain.RawOrderKey) bool {
	if _, dup := seen[key]; dup {
		return false
	}
	seen[key] = struct{}{}
	return true
}
