// Package cmd defines the command-line interface for devpulse.
package cmd

import (
	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(churnCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(doraCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("window", "w", 0, "Observation window in days (0 = use the batch file's window)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Report store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in section headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsCmd to Viper
	runsCmd.Flags().Int64("run-warnings", 0, "Also print stored warnings for this run ID (0 = off)")
	if err := viper.BindPFlags(runsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs flags", err)
	}

	// Bind all flags of migrateCmd to Viper
	migrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}

	// Bind all flags of forecastCmd to Viper
	forecastCmd.Flags().String("metric", "", "Limit output to one metric: churn or cycle_time")
	if err := viper.BindPFlags(forecastCmd.Flags()); err != nil {
		contract.LogFatal("Error binding forecast flags", err)
	}
}
