package schema

// Default analytics thresholds. These are starting points, not laws;
// every one of them can be overridden per call through AnalyticsConfig.
const (
	DefaultChurnThreshold         = 300  // Commit churn above this adds the high_churn factor
	DefaultMassiveChurnThreshold  = 1000 // Commit churn above this adds the massive_commit factor
	DefaultFilesChangedThreshold  = 8    // Files touched above this adds the many_files factor
	DefaultDeletionRatioThreshold = 0.7  // deletions/max(additions,1) above this adds high_deletion_ratio

	DefaultHighTierCutoff   = 5 // Risk score at or above this is high tier
	DefaultMediumTierCutoff = 2 // Risk score at or above this (below high) is medium tier

	DefaultIncidentWindowHours = 2.0 // Incidents detected within this window after a deployment mark it failed
)

// RiskWeights holds the additive score contribution of each risk factor.
type RiskWeights struct {
	HighChurn         int `mapstructure:"high_churn"`
	ManyFiles         int `mapstructure:"many_files"`
	HighDeletionRatio int `mapstructure:"high_deletion_ratio"`
	MassiveCommit     int `mapstructure:"massive_commit"`
	NoReview          int `mapstructure:"no_review"`
}

// DORACutoffs holds the banding boundaries for one DORA metric.
// Elite <= High <= Medium for "lower is better" metrics; the deployment
// frequency cutoffs read the other way around.
type DORACutoffs struct {
	Elite  float64 `mapstructure:"elite"`
	High   float64 `mapstructure:"high"`
	Medium float64 `mapstructure:"medium"`
}

// DORABands holds the banding boundaries for all four DORA metrics.
type DORABands struct {
	LeadTimeHours DORACutoffs `mapstructure:"lead_time_hours"` // Lower is better
	DeploysPerDay DORACutoffs `mapstructure:"deploys_per_day"` // Higher is better
	FailureRate   DORACutoffs `mapstructure:"failure_rate"`    // Lower is better
	RecoveryHours DORACutoffs `mapstructure:"recovery_hours"`  // Lower is better
}

// AnalyticsConfig carries every tunable threshold the engine uses.
// It is passed explicitly into the pipeline so thresholds are testable
// and swappable per call rather than hidden module state.
type AnalyticsConfig struct {
	ChurnThreshold         int     `mapstructure:"churn_threshold"`
	MassiveChurnThreshold  int     `mapstructure:"massive_churn_threshold"`
	FilesChangedThreshold  int     `mapstructure:"files_changed_threshold"`
	DeletionRatioThreshold float64 `mapstructure:"deletion_ratio_threshold"`

	HighTierCutoff   int `mapstructure:"high_tier_cutoff"`
	MediumTierCutoff int `mapstructure:"medium_tier_cutoff"`

	IncidentWindowHours float64 `mapstructure:"incident_window_hours"`

	Weights RiskWeights `mapstructure:"weights"`
	Bands   DORABands   `mapstructure:"bands"`
}

// DefaultAnalyticsConfig returns the published defaults: the 300/1000-line
// churn thresholds, the additive factor weights, and the standard DORA
// banding boundaries.
func DefaultAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		ChurnThreshold:         DefaultChurnThreshold,
		MassiveChurnThreshold:  DefaultMassiveChurnThreshold,
		FilesChangedThreshold:  DefaultFilesChangedThreshold,
		DeletionRatioThreshold: DefaultDeletionRatioThreshold,
		HighTierCutoff:         DefaultHighTierCutoff,
		MediumTierCutoff:       DefaultMediumTierCutoff,
		IncidentWindowHours:    DefaultIncidentWindowHours,
		Weights: RiskWeights{
			HighChurn:         3,
			ManyFiles:         2,
			HighDeletionRatio: 1,
			MassiveCommit:     2,
			NoReview:          1,
		},
		Bands: DORABands{
			LeadTimeHours: DORACutoffs{Elite: 24, High: 168, Medium: 720},
			DeploysPerDay: DORACutoffs{Elite: 1, High: 1.0 / 7, Medium: 1.0 / 30},
			FailureRate:   DORACutoffs{Elite: 0.05, High: 0.15, Medium: 0.30},
			RecoveryHours: DORACutoffs{Elite: 1, High: 24, Medium: 168},
		},
	}
}

// TierFor maps a risk score to its bucket tier using the configured cutoffs.
// Score 0 is unflagged and has no tier; callers filter those out first.
func (c *AnalyticsConfig) TierFor(score int) RiskTier {
	switch {
	case score >= c.HighTierCutoff:
		return HighRisk
	case score >= c.MediumTierCutoff:
		return MediumRisk
	default:
		return LowRisk
	}
}
