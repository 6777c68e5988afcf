package analytics_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/guregu/null"

	"github.com/johnwards/olist-analytics/internal/api"
	"github.com/johnwards/olist-analytics/internal/api/analytics"
	"github.com/johnwards/olist-analytics/internal/domain"
	"github.com/johnwards/olist-analytics/internal/load"
	"github.com/johnwards/olist-analytics/internal/store"
	"github.com/johnwards/olist-analytics/internal/testhelpers"
)

func newServer(t *testing.T, db *sql.DB) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	analytics.RegisterRoutes(mux, store.New(db))
	srv := httptest.NewServer(api.Chain(mux, api.RequestID()))
	t.Cleanup(srv.Close)
	return srv
}

func seed(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx := context.Background()
	loader := load.New(db)

	summaries := []domain.SalesSummary{
		{CustomerUniqueID: "u1", CustomerID: "c1", Region: null.StringFrom("SP"), TotalOrders: 2, TotalSales: 300, AvgOrderValue: 150, LastOrderDate: null.TimeFrom(time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC))},
		{CustomerUniqueID: "u2", CustomerID: "c2", Region: null.StringFrom("RJ"), TotalOrders: 1, TotalSales: 500, AvgOrderValue: 500},
		{CustomerUniqueID: "u3", CustomerID: "c3", Region: null.StringFrom("SP"), TotalOrders: 1, TotalSales: 100, AvgOrderValue: 100},
	}
	if err := loader.ReplaceSalesSummary(ctx, summaries); err != nil {
		t.Fatalf("seed sales_summary: %v", err)
	}

	regions := []domain.DeliveryPerformance{
		{Region: "RJ", TotalOrders: 1, PendingCount: 1, PercentPending: 100},
		{Region: "SP", TotalOrders: 3, DeliveredCount: 3, AvgDeliveryDays: null.FloatFrom(6.5), TotalLate: 1, PercentLate: 33.33},
	}
	if err := loader.ReplaceDeliveryPerformance(ctx, regions); err != nil {
		t.Fatalf("seed delivery_performance: %v", err)
	}
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK && out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestProbe(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	srv := newServer(t, db)

	var body map[string]string
	if code := getJSON(t, srv, "/", &body); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want %q", body["status"], "ok")
	}
}

func TestProbeUnavailable(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	srv := newServer(t, db)
	_ = db.Close()

	if code := getJSON(t, srv, "/", nil); code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", code)
	}
}

func TestSalesSummarySortedAndPaginated(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	seed(t, db)
	srv := newServer(t, db)

	var rows []domain.SalesSummary
	if code := getJSON(t, srv, "/sales_summary", &rows); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	// Sorted by total sales descending.
	if rows[0].CustomerUniqueID != "u2" || rows[2].CustomerUniqueID != "u3" {
		t.Errorf("order = [%s %s %s], want [u2 u1 u3]",
			rows[0].CustomerUniqueID, rows[1].CustomerUniqueID, rows[2].CustomerUniqueID)
	}

	var page2 []domain.SalesSummary
	if code := getJSON(t, srv, "/sales_summary?page=2&page_size=2", &page2); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if len(page2) != 1 || page2[0].CustomerUniqueID != "u3" {
		t.Errorf("page 2 = %+v, want single row u3", page2)
	}
}

func TestSalesSummaryEmptyTableIsEmptyArray(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	if err := load.New(db).ReplaceSalesSummary(context.Background(), nil); err != nil {
		t.Fatalf("seed: %v", err)
	}
	srv := newServer(t, db)

	resp, err := http.Get(srv.URL + "/sales_summary")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("body = %s, want []", raw)
	}
}

func TestSalesSummaryInvalidPagination(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	seed(t, db)
	srv := newServer(t, db)

	for _, query := range []string{"?page=0", "?page=abc", "?page_size=101", "?page_size=-1"} {
		if code := getJSON(t, srv, "/sales_summary"+query, nil); code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", query, code)
		}
	}
}

func TestSalesSummaryMissingTable(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	srv := newServer(t, db)

	// The pipeline has not run, so the table does not exist.
	if code := getJSON(t, srv, "/sales_summary", nil); code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", code)
	}
}

func TestSalesSummaryByRegion(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	seed(t, db)
	srv := newServer(t, db)

	var rows []domain.SalesSummary
	if code := getJSON(t, srv, "/sales_summary/SP", &rows); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if len(rows) != 2 {
		t.Errorf("rows = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row.Region.String != "SP" {
			t.Errorf("region = %q, want SP", row.Region.String)
		}
	}
}

func TestSalesSummaryByRegionNotFound(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	seed(t, db)
	srv := newServer(t, db)

	if code := getJSON(t, srv, "/sales_summary/XX", nil); code != http.StatusNotFound {
		t.Errorf("unknown region: status = %d, want 404", code)
	}
	// Region matching is case-sensitive.
	if code := getJSON(t, srv, "/sales_summary/sp", nil); code != http.StatusNotFound {
		t.Errorf("lowercase region: status = %d, want 404", code)
	}
}

func TestDeliveryPerformance(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	seed(t, db)
	srv := newServer(t, db)

	var rows []domain.DeliveryPerformance
	if code := getJSON(t, srv, "/delivery_performance", &rows); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	byRegion := map[string]domain.DeliveryPerformance{}
	for _, row := range rows {
		byRegion[row.Region] = row
	}
	if sp := byRegion["SP"]; !sp.AvgDeliveryDays.Valid || sp.AvgDeliveryDays.Float64 != 6.5 {
		t.Errorf("SP avg = %+v, want 6.5", sp.AvgDeliveryDays)
	}
	if rj := byRegion["RJ"]; rj.AvgDeliveryDays.Valid {
		t.Errorf("RJ avg = %+v, want null", rj.AvgDeliveryDays)
	}
}
