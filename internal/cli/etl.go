package cli

import (
	"github.com/spf13/cobra"

	"github.com/johnwards/olist-analytics/internal/config"
	"github.com/johnwards/olist-analytics/internal/etl"
)

var (
	etlDataPath string
	etlDBPath   string

	etlCmd = &cobra.Command{
		Use:   "etl",
		Short: "Run the extract-transform-load pipeline once",
		Long: `Reads the four Olist CSV extracts, derives the raw_orders, sales_summary
and delivery_performance tables and replaces them in the analytics database.
All four source files are required; a missing input aborts the run before
anything is written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if etlDataPath != "" {
				cfg.DataPath = etlDataPath
			}
			if etlDBPath != "" {
				cfg.DBPath = etlDBPath
			}
			return etl.Run(cmd.Context(), cfg)
		},
	}
)

func init() {
	etlCmd.Flags().StringVar(&etlDataPath, "data-path", "", "directory holding the Olist CSV extracts (overrides OLIST_DATA_PATH)")
	etlCmd.Flags().StringVar(&etlDBPath, "db", "", "SQLite database path (overrides OLIST_DB)")
}
