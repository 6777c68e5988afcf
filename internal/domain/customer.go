package domain

// Customer represents one row of the customers extract. CustomerID is unique
// per order instance; CustomerUniqueID is the stable identity across repeat
// purchases, so one unique customer can own many customer IDs.
type Customer struct {
	CustomerID       string `json:"customer_id"`
	CustomerUniqueID string `json:"customer_unique_id"`
	ZipCodePrefix    string `json:"customer_zip_code_prefix"`
	City             string `json:"customer_city"`
	State            string `json:"customer_state"`
}
