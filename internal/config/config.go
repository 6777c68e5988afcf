package config

import (
	"errors"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/johnwards/olist-analytics/internal/extract"
)

// Config holds application configuration. Values come from environment
// variables with the OLIST_ prefix; a .env file in the working directory is
// loaded first when present.
type Config struct {
	DataPath      string // OLIST_DATA_PATH: directory holding the four Olist CSV extracts
	DBPath        string // OLIST_DB: SQLite path for the analytics tables
	OrdersCSV     string // OLIST_ORDERS_CSV: orders extract served by the orders API
	OrdersAddr    string // OLIST_ORDERS_ADDR, default ":8080"
	AnalyticsAddr string // OLIST_ANALYTICS_ADDR, default ":8081"
}

// Load reads configuration from a .env file (if any) and the environment.
func Load() Config {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("OLIST")
	v.AutomaticEnv()
	v.SetDefault("orders_addr", ":8080")
	v.SetDefault("analytics_addr", ":8081")

	cfg := Config{
		DataPath:      v.GetString("data_path"),
		DBPath:        v.GetString("db"),
		OrdersCSV:     v.GetString("orders_csv"),
		OrdersAddr:    v.GetString("orders_addr"),
		AnalyticsAddr: v.GetString("analytics_addr"),
	}
	if cfg.OrdersCSV == "" && cfg.DataPath != "" {
		cfg.OrdersCSV = filepath.Join(cfg.DataPath, extract.OrdersFile)
	}
	return cfg
}

// RequireETL checks the settings the pipeline cannot run without. Both the
// data directory and the target database are mandatory; their absence is
// startup-fatal.
func (c Config) RequireETL() error {
	if c.DataPath == "" {
		return errors.New("OLIST_DATA_PATH not set")
	}
	if c.DBPath == "" {
		return errors.New("OLIST_DB not set")
	}
	return nil
}

// RequireAnalytics checks the settings the analytics API cannot start without.
func (c Config) RequireAnalytics() error {
	if c.DBPath == "" {
		return errors.New("OLIST_DB not set")
	}
	return nil
}

// RequireOrders checks the settings the orders API cannot start without.
func (c Config) RequireOrders() error {
	if c.OrdersCSV == "" {
		return errors.New("OLIST_ORDERS_CSV or OLIST_DATA_PATH not set")
	}
	return nil
}
