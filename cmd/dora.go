package cmd

import (
	"github.com/huangsam/devpulse/core"
	"github.com/huangsam/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

// doraCmd prints only the DORA section of the report.
var doraCmd = &cobra.Command{
	Use:   "dora <batch-file>",
	Short: "Compute the four DORA metrics for one harvested batch",
	Long: `Compute lead time for changes, deployment frequency, change failure
rate and mean time to recovery, each banded into elite, high, medium
or low performance.

The overall band is the weakest of the four individual bands. With no
deployments in the window every metric reports zero and the overall
band is low.

Examples:
  # Delivery performance for the window
  devpulse dora batch.json

  # One-row CSV for trend tracking
  devpulse dora batch.json --output csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDORAView(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute DORA metrics", err)
		}
	},
}
