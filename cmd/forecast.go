package cmd

import (
	"github.com/huangsam/devpulse/core"
	"github.com/huangsam/devpulse/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// forecastCmd prints only the forecast section of the report.
var forecastCmd = &cobra.Command{
	Use:   "forecast <batch-file>",
	Short: "Forecast next-week churn and cycle time from one harvested batch",
	Long: `Fit a least-squares trend line over the weekly series in the batch and
project one week ahead.

Each forecast carries a predicted value, a plausible range, the trend
direction and a confidence level. Sparse series fall back to documented
defaults and the reason is stated in the output.

Examples:
  # Both forecasts
  devpulse forecast batch.json

  # Just the churn trend
  devpulse forecast batch.json --metric churn`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		metric := viper.GetString("metric")
		if err := core.ExecuteForecastView(rootCtx, cfg, metric); err != nil {
			contract.LogFatal("Cannot compute forecast", err)
		}
	},
}
