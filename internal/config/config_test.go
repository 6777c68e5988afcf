package config_test

import (
	"path/filepath"
	"testing"

	"github.com/johnwards/olist-analytics/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	// Unset any env vars that might be set.
	t.Setenv("OLIST_DATA_PATH", "")
	t.Setenv("OLIST_DB", "")
	t.Setenv("OLIST_ORDERS_CSV", "")
	t.Setenv("OLIST_ORDERS_ADDR", "")
	t.Setenv("OLIST_ANALYTICS_ADDR", "")

	cfg := config.Load()

	if cfg.OrdersAddr != ":8080" {
		t.Errorf("OrdersAddr = %q, want %q", cfg.OrdersAddr, ":8080")
	}
	if cfg.AnalyticsAddr != ":8081" {
		t.Errorf("AnalyticsAddr = %q, want %q", cfg.AnalyticsAddr, ":8081")
	}
	if cfg.DBPath != "" {
		t.Errorf("DBPath = %q, want empty", cfg.DBPath)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("OLIST_DATA_PATH", "/data/olist")
	t.Setenv("OLIST_DB", "/tmp/test.db")
	t.Setenv("OLIST_ORDERS_CSV", "")
	t.Setenv("OLIST_ORDERS_ADDR", ":9090")
	t.Setenv("OLIST_ANALYTICS_ADDR", ":9091")

	cfg := config.Load()

	if cfg.DataPath != "/data/olist" {
		t.Errorf("DataPath = %q, want %q", cfg.DataPath, "/data/olist")
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/test.db")
	}
	if cfg.OrdersAddr != ":9090" {
		t.Errorf("OrdersAddr = %q, want %q", cfg.OrdersAddr, ":9090")
	}

	// Orders CSV defaults to the orders extract inside the data directory.
	want := filepath.Join("/data/olist", "olist_orders_dataset.csv")
	if cfg.OrdersCSV != want {
		t.Errorf("OrdersCSV = %q, want %q", cfg.OrdersCSV, want)
	}
}

func TestRequireETL(t *testing.T) {
	cfg := config.Config{DataPath: "/data", DBPath: "olist.db"}
	if err := cfg.RequireETL(); err != nil {
		t.Errorf("RequireETL() = %v, want nil", err)
	}

	if err := (config.Config{DBPath: "olist.db"}).RequireETL(); err == nil {
		t.Error("RequireETL() without data path = nil, want error")
	}
	if err := (config.Config{DataPath: "/data"}).RequireETL(); err == nil {
		t.Error("RequireETL() without database = nil, want error")
	}
}
