package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/devpulse/schema"
)

// Default values for configuration.
const (
	DefaultWindowDays  = 30
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// Config holds the runtime configuration for one CLI invocation.
// This struct is the final, validated config.
type Config struct {
	InputPath  string // Path to the harvester batch file (JSON)
	WindowDays int    // Observation window in days; 0 defers to the batch file

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// Analytics carries every engine threshold, resolved from defaults
	// plus config file overrides.
	Analytics schema.AnalyticsConfig

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// AnalyticsRawInput holds optional threshold overrides from the config
// file. Pointers distinguish "absent" from an explicit zero.
type AnalyticsRawInput struct {
	ChurnThreshold         *int     `mapstructure:"churn_threshold"`
	MassiveChurnThreshold  *int     `mapstructure:"massive_churn_threshold"`
	FilesChangedThreshold  *int     `mapstructure:"files_changed_threshold"`
	DeletionRatioThreshold *float64 `mapstructure:"deletion_ratio_threshold"`
	HighTierCutoff         *int     `mapstructure:"high_tier_cutoff"`
	MediumTierCutoff       *int     `mapstructure:"medium_tier_cutoff"`
	IncidentWindowHours    *float64 `mapstructure:"incident_window_hours"`

	Weights *RiskWeightsRaw `mapstructure:"weights"`
	Bands   *DORABandsRaw   `mapstructure:"bands"`
}

// RiskWeightsRaw holds optional per-factor weight overrides.
type RiskWeightsRaw struct {
	HighChurn         *int `mapstructure:"high_churn"`
	ManyFiles         *int `mapstructure:"many_files"`
	HighDeletionRatio *int `mapstructure:"high_deletion_ratio"`
	MassiveCommit     *int `mapstructure:"massive_commit"`
	NoReview          *int `mapstructure:"no_review"`
}

// DORACutoffsRaw holds optional banding boundary overrides for one metric.
type DORACutoffsRaw struct {
	Elite  *float64 `mapstructure:"elite"`
	High   *float64 `mapstructure:"high"`
	Medium *float64 `mapstructure:"medium"`
}

// DORABandsRaw holds optional banding overrides for all four metrics.
type DORABandsRaw struct {
	LeadTimeHours *DORACutoffsRaw `mapstructure:"lead_time_hours"`
	DeploysPerDay *DORACutoffsRaw `mapstructure:"deploys_per_day"`
	FailureRate   *DORACutoffsRaw `mapstructure:"failure_rate"`
	RecoveryHours *DORACutoffsRaw `mapstructure:"recovery_hours"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Window         int    `mapstructure:"window"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`

	// --- Threshold overrides from config file ---
	Analytics AnalyticsRawInput `mapstructure:"analytics"`
}

// ProcessAndValidate populates cfg from the raw input, applying defaults,
// clamps and override resolution. inputRequired is false for commands that
// run without a batch file (mcp, runs, metrics).
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, inputRequired bool) error {
	if inputRequired {
		if input.InputPathStr == "" {
			return fmt.Errorf("batch file path is required")
		}
		if _, err := os.Stat(input.InputPathStr); err != nil {
			return fmt.Errorf("cannot read batch file %q: %w", input.InputPathStr, err)
		}
	}
	cfg.InputPath = input.InputPathStr

	// 0 defers to the batch file's own window; the ingest boundary falls
	// back to DefaultWindowDays when the file omits it too.
	cfg.WindowDays = max(input.Window, 0)

	if input.Limit < 1 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d", MaxResultLimit)
	}
	cfg.ResultLimit = input.Limit

	cfg.Precision = min(max(input.Precision, 1), 2)

	output := schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	backend := schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend %q", input.StoreBackend)
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect

	cfg.UseEmojis = parseYesNo(input.Emoji, false)
	cfg.UseColors = parseYesNo(input.Color, true)

	cfg.Analytics = resolveAnalytics(&input.Analytics)
	return nil
}

// resolveAnalytics merges config-file overrides onto the published
// defaults. Absent fields keep their defaults.
func resolveAnalytics(raw *AnalyticsRawInput) schema.AnalyticsConfig {
	resolved := schema.DefaultAnalyticsConfig()

	setInt(&resolved.ChurnThreshold, raw.ChurnThreshold)
	setInt(&resolved.MassiveChurnThreshold, raw.MassiveChurnThreshold)
	setInt(&resolved.FilesChangedThreshold, raw.FilesChangedThreshold)
	setFloat(&resolved.DeletionRatioThreshold, raw.DeletionRatioThreshold)
	setInt(&resolved.HighTierCutoff, raw.HighTierCutoff)
	setInt(&resolved.MediumTierCutoff, raw.MediumTierCutoff)
	setFloat(&resolved.IncidentWindowHours, raw.IncidentWindowHours)

	if w := raw.Weights; w != nil {
		setInt(&resolved.Weights.HighChurn, w.HighChurn)
		setInt(&resolved.Weights.ManyFiles, w.ManyFiles)
		setInt(&resolved.Weights.HighDeletionRatio, w.HighDeletionRatio)
		setInt(&resolved.Weights.MassiveCommit, w.MassiveCommit)
		setInt(&resolved.Weights.NoReview, w.NoReview)
	}
	if b := raw.Bands; b != nil {
		resolveCutoffs(&resolved.Bands.LeadTimeHours, b.LeadTimeHours)
		resolveCutoffs(&resolved.Bands.DeploysPerDay, b.DeploysPerDay)
		resolveCutoffs(&resolved.Bands.FailureRate, b.FailureRate)
		resolveCutoffs(&resolved.Bands.RecoveryHours, b.RecoveryHours)
	}
	return resolved
}

func resolveCutoffs(dst *schema.DORACutoffs, raw *DORACutoffsRaw) {
	if raw == nil {
		return
	}
	setFloat(&dst.Elite, raw.Elite)
	setFloat(&dst.High, raw.High)
	setFloat(&dst.Medium, raw.Medium)
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// parseYesNo interprets yes/no style flag values with a fallback.
func parseYesNo(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "on", "1":
		return true
	case "no", "false", "off", "0":
		return false
	default:
		return fallback
	}
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
