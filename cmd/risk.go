package cmd

import (
	"github.com/huangsam/devpulse/core"
	"github.com/huangsam/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

// riskCmd prints only the risk section of the report.
var riskCmd = &cobra.Command{
	Use:   "risk <batch-file>",
	Short: "Flag risky commits and pull requests in one harvested batch",
	Long: `Score every commit and pull request against the additive risk factors
and bucket the results into high, medium and low tiers.

Factors include high churn, wide file fan-out, deletion-heavy changes,
massive commits and unreviewed merges. Statistical churn outliers are
listed alongside the tiers. Thresholds and weights can be overridden in
the analytics section of .devpulse.yaml; run 'devpulse metrics' to see
the active values.

Examples:
  # What needs review attention this window
  devpulse risk batch.json

  # JSON for CI gating scripts
  devpulse risk batch.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRiskView(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot score risk", err)
		}
	},
}
