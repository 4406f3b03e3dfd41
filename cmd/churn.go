package cmd

import (
	"github.com/huangsam/devpulse/core"
	"github.com/huangsam/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

// churnCmd prints only the churn section of the report.
var churnCmd = &cobra.Command{
	Use:   "churn <batch-file>",
	Short: "Show per-author churn statistics for one harvested batch",
	Long: `Aggregate commit activity into per-author churn statistics.

For each author this reports commit count, additions, deletions, total
churn, churn ratio, active days and the composite productivity index.
Authors are ranked by productivity, descending.

Examples:
  # Top contributors by productivity
  devpulse churn batch.json

  # CSV for spreadsheets
  devpulse churn batch.json --output csv --output-file churn.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChurnView(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute churn", err)
		}
	},
}
