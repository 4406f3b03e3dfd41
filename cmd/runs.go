package cmd

import (
	"github.com/huangsam/devpulse/core"
	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/internal/reportstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsCmd lists persisted analysis runs from the report store.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted analysis runs and their headline metrics",
	Long: `Show historical analysis runs stored by 'devpulse report'.

For each run this lists start time, duration, record count, total churn,
the overall DORA band and the two forecasts. Runs appear newest first,
up to --limit entries.

Requires a store backend (sqlite, mysql or postgresql); with the default
'none' backend the list is always empty.

Examples:
  # Recent runs from the default SQLite store
  devpulse runs --store-backend sqlite

  # Inspect the warnings recorded for run 12
  devpulse runs --store-backend sqlite --run-warnings 12`,
	PreRunE: bareSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := reportstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open report store", err)
		}
		defer func() { _ = store.Close() }()
		warnRunID := viper.GetInt64("run-warnings")
		if err := core.ExecuteStoredRuns(rootCtx, cfg, store, warnRunID); err != nil {
			contract.LogFatal("Cannot list runs", err)
		}
	},
}
