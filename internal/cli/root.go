// Package cli wires the olist binary's commands: the one-shot ETL run and
// the two read API servers.
package cli

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "olist",
	Short:         "Olist order analytics: ETL pipeline and read APIs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(etlCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
