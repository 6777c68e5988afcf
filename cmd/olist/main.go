package main

import (
	"log/slog"
	"os"

	"github.com/johnwards/olist-analytics/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}
