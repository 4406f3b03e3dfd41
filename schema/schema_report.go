package schema

import "time"

// AuthorChurnStats aggregates churn for a single author. Derived, recomputed
// fresh per report; never mutated incrementally.
type AuthorChurnStats struct {
	Author       string  `json:"author"`
	Commits      int     `json:"commits"`
	Additions    int     `json:"additions"`
	Deletions    int     `json:"deletions"`
	FilesChanged int     `json:"files_changed"`
	ActiveDays   int     `json:"active_days"`  // Distinct calendar days with at least one commit
	ChurnRatio   float64 `json:"churn_ratio"`  // deletions / max(additions, 1)
	AvgChurn     float64 `json:"avg_churn"`    // Average churn per commit
	Productivity float64 `json:"productivity"` // Ranking-only composite score
}

// TotalChurn returns the author's total churn.
func (a *AuthorChurnStats) TotalChurn() int {
	return a.Additions + a.Deletions
}

// MessageTags counts conventional keywords seen in commit messages.
type MessageTags struct {
	Fix      int `json:"fix"`
	Feat     int `json:"feat"`
	Refactor int `json:"refactor"`
}

// ChurnSummary holds team-wide churn statistics for one batch.
type ChurnSummary struct {
	TotalCommits   int         `json:"total_commits"`
	TotalAdditions int         `json:"total_additions"`
	TotalDeletions int         `json:"total_deletions"`
	NetChange      int         `json:"net_change"` // additions - deletions
	TotalChurn     int         `json:"total_churn"`
	AvgChurn       float64     `json:"avg_churn"`
	MedianChurn    float64     `json:"median_churn"`
	ChurnStdDev    float64     `json:"churn_std_dev"` // Sample stddev, 0 with fewer than 2 commits
	Tags           MessageTags `json:"tags"`
}

// RiskAssessment scores one commit or pull request for defect risk.
type RiskAssessment struct {
	Kind    string       `json:"kind"` // "commit" or "pr"
	ID      string       `json:"id"`   // Commit SHA or pull request number
	Author  string       `json:"author"`
	Churn   int          `json:"churn"`
	Score   int          `json:"score"`
	Tier    RiskTier     `json:"tier"`
	Factors []RiskFactor `json:"factors"`
}

// RiskBuckets partitions assessments by tier. Items with score 0 are not
// flagged and appear in no bucket.
type RiskBuckets struct {
	High   []RiskAssessment `json:"high"`
	Medium []RiskAssessment `json:"medium"`
	Low    []RiskAssessment `json:"low"`
}

// Flagged returns the number of assessments across all buckets.
func (b *RiskBuckets) Flagged() int {
	return len(b.High) + len(b.Medium) + len(b.Low)
}

// ChurnOutlier marks a commit whose churn fell outside the IQR fences
// of the team distribution.
type ChurnOutlier struct {
	SHA       string           `json:"sha"`
	Author    string           `json:"author"`
	Churn     int              `json:"churn"`
	Direction OutlierDirection `json:"direction"`
}

// DORAMetrics holds the four key metrics with per-metric bands and an
// overall band. With zero deployments all four values are 0 and the
// overall band is low; that is a documented degraded state, not an error.
type DORAMetrics struct {
	LeadTimeHours             float64 `json:"lead_time_hours"`
	DeploymentFrequencyPerDay float64 `json:"deployment_frequency_per_day"`
	ChangeFailureRate         float64 `json:"change_failure_rate"` // In [0,1]
	MTTRHours                 float64 `json:"mttr_hours"`

	LeadTimeCategory      PerformanceCategory `json:"lead_time_category"`
	DeployFreqCategory    PerformanceCategory `json:"deploy_freq_category"`
	ChangeFailureCategory PerformanceCategory `json:"change_failure_category"`
	MTTRCategory          PerformanceCategory `json:"mttr_category"`
	Overall               PerformanceCategory `json:"overall"`
}

// ForecastRange bounds a forecast with metric-specific multipliers.
type ForecastRange struct {
	Optimistic  float64 `json:"optimistic"`
	Pessimistic float64 `json:"pessimistic"`
}

// ForecastResult is a next-period projection for one weekly series.
type ForecastResult struct {
	Metric         ForecastMetric  `json:"metric"`
	PredictedValue float64         `json:"predicted_value"`
	Slope          float64         `json:"slope"`
	ResidualStdDev float64         `json:"residual_std_dev"`
	Confidence     ConfidenceLevel `json:"confidence"`
	Trend          TrendDirection  `json:"trend"`
	Range          ForecastRange   `json:"range"`
	Observations   int             `json:"observations"`
	Reason         string          `json:"reason,omitempty"` // Set when a documented fallback was used
}

// AnalysisReport is the root aggregate produced once per pipeline invocation.
// It is never mutated after construction and is consumed read-only by
// narrative and bot layers.
type AnalysisReport struct {
	GeneratedAt time.Time `json:"generated_at"`
	WindowDays  int       `json:"window_days"`

	Churn       ChurnSummary       `json:"churn"`
	Authors     []AuthorChurnStats `json:"authors"` // Ranked by productivity, descending
	Assessments []RiskAssessment   `json:"assessments"`
	Buckets     RiskBuckets        `json:"buckets"`
	Outliers    []ChurnOutlier     `json:"outliers"`
	DORA        DORAMetrics        `json:"dora"`
	Forecasts   []ForecastResult   `json:"forecasts"`

	// Warnings collects stage-level degradations (malformed records,
	// insufficient data). The report itself is always well formed.
	Warnings []string `json:"warnings,omitempty"`
}
