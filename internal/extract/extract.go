// Package extract reads the four Olist CSV extracts into typed records.
// Column positions are resolved from the header row once per file, so the
// rest of the pipeline works with struct fields instead of column-name
// strings. Malformed values are recovered locally (dates become null, money
// becomes 0); a missing file or missing column aborts the extraction.
package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null"

	"github.com/johnwards/olist-analytics/internal/domain"
)

// File names fixed by the Olist dataset release.
const (
	CustomersFile = "olist_customers_dataset.csv"
	ItemsFile     = "olist_order_items_dataset.csv"
	PaymentsFile  = "olist_order_payments_dataset.csv"
	OrdersFile    = "olist_orders_dataset.csv"
)

// Inputs holds all four extracted source tables.
type Inputs struct {
	Customers []domain.Customer
	Items     []domain.OrderItem
	Payments  []domain.Payment
	Orders    []domain.Order
}

// All extracts the four source datasets from dataPath. Every file is
// required; any read failure aborts the whole extraction so the pipeline
// never runs on partial inputs.
func All(dataPath string) (*Inputs, error) {
	customers, err := Customers(filepath.Join(dataPath, CustomersFile))
	if err != nil {
		return nil, fmt.Errorf("extract customers: %w", err)
	}
	items, err := Items(filepath.Join(dataPath, ItemsFile))
	if err != nil {
		return nil, fmt.Errorf("extract order items: %w", err)
	}
	payments, err := Payments(filepath.Join(dataPath, PaymentsFile))
	if err != nil {
		return nil, fmt.Errorf("extract payments: %w", err)
	}
	orders, err := Orders(filepath.Join(dataPath, OrdersFile))
	if err != nil {
		return nil, fmt.Errorf("extract orders: %w", err)
	}
	return &Inputs{Customers: customers, Items: items, Payments: payments, Orders: orders}, nil
}

// Customers reads the customers extract.
func Customers(path string) ([]domain.Customer, error) {
	var out []domain.Customer
	err := readCSV(path, []string{"customer_id", "customer_unique_id", "customer_zip_code_prefix", "customer_city", "customer_state"},
		func(get func(string) string) {
			out = append(out, domain.Customer{
				CustomerID:       get("customer_id"),
				CustomerUniqueID: get("customer_unique_id"),
				ZipCodePrefix:    get("customer_zip_code_prefix"),
				City:             get("customer_city"),
				State:            get("customer_state"),
			})
		})
	return out, err
}

// Items reads the order items extract.
func Items(path string) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	err := readCSV(path, []string{"order_id", "order_item_id", "product_id", "seller_id", "shipping_limit_date", "price", "freight_value"},
		func(get func(string) string) {
			out = append(out, domain.OrderItem{
				OrderID:           get("order_id"),
				OrderItemID:       parseInt(get("order_item_id")),
				ProductID:         get("product_id"),
				SellerID:          get("seller_id"),
				ShippingLimitDate: parseNullTime(get("shipping_limit_date")),
				Price:             parseMoney(get("price")),
				FreightValue:      parseMoney(get("freight_value")),
			})
		})
	return out, err
}

// Payments reads the order payments extract.
func Payments(path string) ([]domain.Payment, error) {
	var out []domain.Payment
	err := readCSV(path, []string{"order_id", "payment_sequential", "payment_type", "payment_installments", "payment_value"},
		func(get func(string) string) {
			out = append(out, domain.Payment{
				OrderID:      get("order_id"),
				Sequential:   parseInt(get("payment_sequential")),
				Type:         get("payment_type"),
				Installments: parseInt(get("payment_installments")),
				Value:        parseMoney(get("payment_value")),
			})
		})
	return out, err
}

// Orders reads the orders extract.
func Orders(path string) ([]domain.Order, error) {
	var out []domain.Order
	err := readCSV(path, []string{"order_id", "customer_id", "order_status", "order_purchase_timestamp", "order_approved_at", "order_delivered_carrier_date", "order_delivered_customer_date", "order_estimated_delivery_date"},
		func(get func(string) string) {
			out = append(out, domain.Order{
				OrderID:               get("order_id"),
				CustomerID:            get("customer_id"),
				Status:                strings.ToLower(strings.TrimSpace(get("order_status"))),
				PurchaseTimestamp:     parseNullTime(get("order_purchase_timestamp")),
				ApprovedAt:            parseNullTime(get("order_approved_at")),
				DeliveredCarrierDate:  parseNullTime(get("order_delivered_carrier_date")),
				DeliveredCustomerDate: parseNullTime(get("order_delivered_customer_date")),
				EstimatedDeliveryDate: parseNullTime(get("order_estimated_delivery_date")),
			})
		})
	return out, err
}

// readCSV streams path row by row, resolving the required columns from the
// header once and handing each row to fn as a name→value lookup.
func readCSV(path string, required []string, fn func(get func(string) string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", filepath.Base(path), err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return fmt.Errorf("%s: missing column %q", filepath.Base(path), name)
		}
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", filepath.Base(path), err)
		}
		row := record
		fn(func(name string) string { return strings.TrimSpace(row[idx[name]]) })
	}
}

// timeLayouts are the timestamp formats accepted across the dataset and the
// API date filters, most common first.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseTime parses s against the accepted timestamp layouts.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// parseNullTime is the lenient variant used on dataset fields: anything that
// fails to parse becomes null instead of an error.
func parseNullTime(s string) null.Time {
	if s == "" {
		return null.Time{}
	}
	t, err := ParseTime(s)
	if err != nil {
		return null.Time{}
	}
	return null.TimeFrom(t)
}

// parseMoney treats absent or malformed amounts as 0 so missing values do not
// drop rows out of later sums and means.
func parseMoney(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
