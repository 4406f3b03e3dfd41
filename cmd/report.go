package cmd

import (
	"github.com/huangsam/devpulse/core"
	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/internal/reportstore"
	"github.com/spf13/cobra"
)

// reportCmd runs the full pipeline over one harvested batch.
var reportCmd = &cobra.Command{
	Use:   "report <batch-file>",
	Short: "Generate the full engineering velocity report from a harvested batch",
	Long: `Run every analytics stage over one harvested batch file and print the
combined report.

The report contains:
- Per-author churn statistics ranked by productivity
- Risk assessments for commits and pull requests
- Statistical churn outliers (Tukey fences)
- The four DORA metrics with performance bands
- Linear trend forecasts for churn and cycle time

When a store backend is configured, each run is also persisted for later
inspection with 'devpulse runs'.

Examples:
  # Full report over the batch window
  devpulse report batch.json

  # Narrow the window and persist the run to SQLite
  devpulse report batch.json --window 14 --store-backend sqlite

  # Machine-readable output for dashboards
  devpulse report batch.json --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := reportstore.NewStore(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Cannot open report store", err)
		}
		defer func() { _ = store.Close() }()
		if err := core.ExecuteVelocityReport(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot generate report", err)
		}
	},
}
