package domain

// Payment represents one payment entry for an order. An order may have several
// entries (installments or mixed payment methods); the composite key is
// (OrderID, Sequential). Value defaults to 0 when absent.
type Payment struct {
	OrderID      string  `json:"order_id"`
	Sequential   int     `json:"payment_sequential"`
	Type         string  `json:"payment_type"`
	Installments int     `json:"payment_installments"`
	Value        float64 `json:"payment_value"`
}
