package cmd

import (
	"github.com/huangsam/devpulse/core"
	"github.com/huangsam/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of the scoring model.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display risk factor weights, tier cutoffs and DORA bands",
	Long: `Show the formal definitions behind the risk scores and DORA bands.

Provides complete transparency into how records are scored, including:
- Risk factor conditions, thresholds and contribution weights
- Tier cutoffs for high and medium risk
- DORA banding boundaries for all four metrics
- Custom values if configured via .devpulse.yaml

No batch analysis is performed - this is purely informational.

Use this to:
- Understand what each risk factor measures
- Explain scoring logic to your team
- Validate custom threshold configurations
- Document scoring methodology

Examples:
  # Show default definitions
  devpulse metrics

  # View with custom thresholds from config file
  devpulse metrics --config .devpulse.yaml`,
	PreRunE: bareSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetricsInfo(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
