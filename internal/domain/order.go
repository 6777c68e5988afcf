package domain

import "github.com/guregu/null"

// Order statuses that count as terminal: once an order carries one of these,
// no further delivery is expected.
const (
	StatusDelivered   = "delivered"
	StatusCanceled    = "canceled"
	StatusUnavailable = "unavailable"
)

// Order represents one purchase transaction from the orders extract. All date
// fields are nullable; values that fail to parse at the extraction boundary
// are stored as null, never rejected.
type Order struct {
	OrderID               string    `json:"order_id"`
	CustomerID            string    `json:"customer_id"`
	Status                string    `json:"order_status"`
	PurchaseTimestamp     null.Time `json:"order_purchase_timestamp"`
	ApprovedAt            null.Time `json:"order_approved_at"`
	DeliveredCarrierDate  null.Time `json:"order_delivered_carrier_date"`
	DeliveredCustomerDate null.Time `json:"order_delivered_customer_date"`
	EstimatedDeliveryDate null.Time `json:"order_estimated_delivery_date"`
}

// IsTerminal reports whether the order status is one of the terminal states.
// Any other status on an undelivered order classifies it as still pending.
func (o Order) IsTerminal() bool {
	switch o.Status {
	case StatusDelivered, StatusCanceled, StatusUnavailable:
		return true
	}
	return false
}
