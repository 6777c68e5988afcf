package extract_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/olist-analytics/internal/extract"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestOrdersLenientDates(t *testing.T) {
	path := writeFile(t, t.TempDir(), extract.OrdersFile,
		"order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n"+
			"o1,c1,Delivered,2018-01-01 10:00:00,not-a-date,,2018-01-05 12:00:00,2018-01-10\n")

	orders, err := extract.Orders(path)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, "o1", o.OrderID)
	// Status is normalized to lower case.
	assert.Equal(t, "delivered", o.Status)
	assert.True(t, o.PurchaseTimestamp.Valid)
	// Unparseable and empty dates both become null, never an error.
	assert.False(t, o.ApprovedAt.Valid)
	assert.False(t, o.DeliveredCarrierDate.Valid)
	assert.True(t, o.DeliveredCustomerDate.Valid)
	// Date-only values are accepted.
	assert.True(t, o.EstimatedDeliveryDate.Valid)
}

func TestPaymentsMoneyDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), extract.PaymentsFile,
		"order_id,payment_sequential,payment_type,payment_installments,payment_value\n"+
			"o1,1,credit_card,3,129.90\n"+
			"o2,1,voucher,1,\n"+
			"o3,1,boleto,1,garbage\n")

	payments, err := extract.Payments(path)
	require.NoError(t, err)
	require.Len(t, payments, 3)

	assert.Equal(t, 129.90, payments[0].Value)
	assert.Zero(t, payments[1].Value)
	assert.Zero(t, payments[2].Value)
}

func TestItems(t *testing.T) {
	path := writeFile(t, t.TempDir(), extract.ItemsFile,
		"order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value\n"+
			"o1,1,p1,s1,2018-01-03 00:00:00,59.90,11.85\n")

	items, err := extract.Items(path)
	require.NoError(t, err)
	require.Len(t, items, 1)

	it := items[0]
	assert.Equal(t, 1, it.OrderItemID)
	assert.Equal(t, 59.90, it.Price)
	assert.Equal(t, 11.85, it.FreightValue)
	assert.True(t, it.ShippingLimitDate.Valid)
}

func TestMissingColumnFails(t *testing.T) {
	path := writeFile(t, t.TempDir(), extract.CustomersFile,
		"customer_id,customer_unique_id\nc1,u1\n")

	_, err := extract.Customers(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer_state")
}

func TestAllMissingFileFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, extract.CustomersFile, "customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state\nc1,u1,01000,sao paulo,SP\n")
	// Items, payments and orders files are absent: the whole extraction fails.

	_, err := extract.All(dir)
	require.Error(t, err)
}

func TestAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, extract.CustomersFile,
		"customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state\nc1,u1,01000,sao paulo,SP\n")
	writeFile(t, dir, extract.ItemsFile,
		"order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value\no1,1,p1,s1,2018-01-03 00:00:00,59.90,11.85\n")
	writeFile(t, dir, extract.PaymentsFile,
		"order_id,payment_sequential,payment_type,payment_installments,payment_value\no1,1,credit_card,1,71.75\n")
	writeFile(t, dir, extract.OrdersFile,
		"order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date\n"+
			"o1,c1,delivered,2018-01-01 10:00:00,2018-01-01 10:30:00,2018-01-02 08:00:00,2018-01-05 12:00:00,2018-01-10 00:00:00\n")

	in, err := extract.All(dir)
	require.NoError(t, err)
	assert.Len(t, in.Customers, 1)
	assert.Len(t, in.Items, 1)
	assert.Len(t, in.Payments, 1)
	assert.Len(t, in.Orders, 1)
}

func TestParseTime(t *testing.T) {
	for _, value := range []string{"2018-01-01 10:00:00", "2018-01-01", "2018-01-01T10:00:00Z"} {
		_, err := extract.ParseTime(value)
		assert.NoError(t, err, "value %q", value)
	}

	_, err := extract.ParseTime("01/02/2018")
	assert.Error(t, err)
}
