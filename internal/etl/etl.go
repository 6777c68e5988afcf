// Package etl runs the batch pipeline: extract the four Olist CSVs,
// transform them into the three analytics tables, load the tables into the
// database. Stages run strictly in order; any failure aborts the run before
// partial state can be written by a later stage.
package etl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/johnwards/olist-analytics/internal/config"
	"github.com/johnwards/olist-analytics/internal/database"
	"github.com/johnwards/olist-analytics/internal/extract"
	"github.com/johnwards/olist-analytics/internal/load"
	"github.com/johnwards/olist-analytics/internal/transform"
)

// Run executes one full pipeline run against the configured data directory
// and database. All four source files are required; a missing input is fatal
// and nothing is loaded.
func Run(ctx context.Context, cfg config.Config) error {
	if err := cfg.RequireETL(); err != nil {
		return err
	}

	slog.Info("starting ETL run", "data_path", cfg.DataPath, "db", cfg.DBPath)

	in, err := extract.All(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	slog.Info("extracted source data",
		"customers", len(in.Customers),
		"items", len(in.Items),
		"payments", len(in.Payments),
		"orders", len(in.Orders),
	)

	out := transform.Apply(in)
	slog.Info("transformed data",
		"raw_orders", len(out.RawOrders),
		"sales_summary", len(out.SalesSummary),
		"delivery_performance", len(out.DeliveryPerformance),
	)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	loader := load.New(db)
	if err := loader.ReplaceRawOrders(ctx, out.RawOrders); err != nil {
		return fmt.Errorf("load raw_orders: %w", err)
	}
	slog.Info("loaded table", "table", load.TableRawOrders, "rows", len(out.RawOrders))

	if err := loader.ReplaceSalesSummary(ctx, out.SalesSummary); err != nil {
		return fmt.Errorf("load sales_summary: %w", err)
	}
	slog.Info("loaded table", "table", load.TableSalesSummary, "rows", len(out.SalesSummary))

	if err := loader.ReplaceDeliveryPerformance(ctx, out.DeliveryPerformance); err != nil {
		return fmt.Errorf("load delivery_performance: %w", err)
	}
	slog.Info("loaded table", "table", load.TableDeliveryPerformance, "rows", len(out.DeliveryPerformance))

	slog.Info("ETL run completed")
	return nil
}
