package domain

import "github.com/guregu/null"

// RawOrder is one row of the denormalized raw_orders table: an order joined
// with its customer, one line item and one payment entry. Left joins mean the
// customer, item and payment sides may all be absent; those fields are null
// rather than zero so a join miss stays distinguishable from real data. Money
// fields are the exception and default to 0.
type RawOrder struct {
	OrderID               string      `json:"order_id"`
	CustomerID            string      `json:"customer_id"`
	Status                string      `json:"order_status"`
	PurchaseTimestamp     null.Time   `json:"order_purchase_timestamp"`
	ApprovedAt            null.Time   `json:"order_approved_at"`
	DeliveredCarrierDate  null.Time   `json:"order_delivered_carrier_date"`
	DeliveredCustomerDate null.Time   `json:"order_delivered_customer_date"`
	EstimatedDeliveryDate null.Time   `json:"order_estimated_delivery_date"`
	CustomerUniqueID      null.String `json:"customer_unique_id"`
	CustomerZipCodePrefix null.String `json:"customer_zip_code_prefix"`
	CustomerCity          null.String `json:"customer_city"`
	CustomerState         null.String `json:"customer_state"`
	OrderItemID           null.Int    `json:"order_item_id"`
	ProductID             null.String `json:"product_id"`
	SellerID              null.String `json:"seller_id"`
	ShippingLimitDate     null.Time   `json:"shipping_limit_date"`
	Price                 float64     `json:"price"`
	FreightValue          float64     `json:"freight_value"`
	PaymentSequential     null.Int    `json:"payment_sequential"`
	PaymentType           null.String `json:"payment_type"`
	PaymentInstallments   null.Int    `json:"payment_installments"`
	PaymentValue          float64     `json:"payment_value"`
}

// RawOrderKey is the composite key raw_orders is de-duplicated on. Null item
// and payment IDs (join misses) are part of the key, so an order with neither
// items nor payments still keeps exactly one row.
type RawOrderKey struct {
	OrderID           string
	OrderItemID       null.Int
	PaymentSequential null.Int
}

// Key returns the row's composite de-duplication key.
func (r RawOrder) Key() RawOrderKey {
	return RawOrderKey{
		OrderID:           r.OrderID,
		OrderItemID:       r.OrderItemID,
		PaymentSequential: r.PaymentSequential,
	}
}
