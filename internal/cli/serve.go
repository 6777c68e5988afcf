package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/johnwards/olist-analytics/internal/api"
	"github.com/johnwards/olist-analytics/internal/api/analytics"
	"github.com/johnwards/olist-analytics/internal/api/orders"
	"github.com/johnwards/olist-analytics/internal/config"
	"github.com/johnwards/olist-analytics/internal/database"
	"github.com/johnwards/olist-analytics/internal/store"
)

var (
	serveAddr string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve one of the read APIs",
	}

	serveOrdersCmd = &cobra.Command{
		Use:   "orders",
		Short: "Serve the direct-CSV orders API",
		Long: `Loads the orders extract into memory once and serves the paginated,
filtered /orders listing over it. A failed load keeps the process up and
degrades /orders into a data-not-loaded server error.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.Load()
			if serveAddr != "" {
				cfg.OrdersAddr = serveAddr
			}
			if err := cfg.RequireOrders(); err != nil {
				return err
			}

			snapshot, err := orders.LoadSnapshot(cfg.OrdersCSV)
			if err != nil {
				slog.Error("orders snapshot failed to load; /orders will report data not loaded",
					"csv", cfg.OrdersCSV, "error", err)
			}

			mux := http.NewServeMux()
			orders.RegisterRoutes(mux, snapshot)
			return serveHTTP(cfg.OrdersAddr, mux)
		},
	}

	serveAnalyticsCmd = &cobra.Command{
		Use:   "analytics",
		Short: "Serve the analytics API over the materialized tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.Load()
			if serveAddr != "" {
				cfg.AnalyticsAddr = serveAddr
			}
			if err := cfg.RequireAnalytics(); err != nil {
				return err
			}

			db, err := database.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			mux := http.NewServeMux()
			analytics.RegisterRoutes(mux, store.New(db))
			return serveHTTP(cfg.AnalyticsAddr, mux)
		},
	}
)

func init() {
	serveCmd.PersistentFlags().StringVar(&serveAddr, "addr", "", "listen address (overrides the configured default)")
	serveCmd.AddCommand(serveOrdersCmd)
	serveCmd.AddCommand(serveAnalyticsCmd)
}

// serveHTTP runs an HTTP server with the standard middleware chain and shuts
// it down cleanly on SIGINT/SIGTERM.
func serveHTTP(addr string, mux *http.ServeMux) error {
	handler := api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.JSONContentType(),
		api.Logging(),
	)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting server", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
