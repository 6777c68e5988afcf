package domain

import "github.com/guregu/null"

// OrderItem represents one line item of an order. The composite key is
// (OrderID, OrderItemID). Price and FreightValue default to 0 when the source
// field is absent or unparseable.
type OrderItem struct {
	OrderID           string    `json:"order_id"`
	OrderItemID       int       `json:"order_item_id"`
	ProductID         string    `json:"product_id"`
	SellerID          string    `json:"seller_id"`
	ShippingLimitDate null.Time `json:"shipping_limit_date"`
	Price             float64   `json:"price"`
	FreightValue      float64   `json:"freight_value"`
}
