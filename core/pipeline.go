package core

import (
	"fmt"
	"time"

	"github.com/huangsam/devpulse/schema"
)

// Forecast warning cutoffs, carried over from the bot's summary logic.
const (
	cycleTimeWarnHours = 48.0
	churnWarnLines     = 5000.0
)

// Run executes the full analytics pipeline over one immutable batch:
// churn aggregation, risk classification, DORA calculation, then trend
// forecasting. Each stage is a pure function of the batch and the outputs
// of prior stages; a stage short on data substitutes its documented
// default and appends a warning. Run always returns a well-formed report
// and never panics across the engine boundary.
func Run(batch *schema.RecordBatch, cfg *schema.AnalyticsConfig) *schema.AnalysisReport {
	report := &schema.AnalysisReport{
		GeneratedAt: time.Now().UTC(),
		WindowDays:  max(batch.WindowDays, 1),
	}

	clean, warnings := sanitizeBatch(batch)
	report.Warnings = warnings

	// --- 1. Churn Aggregation ---
	report.Churn, report.Authors = AggregateChurn(clean.Commits)
	if len(clean.Commits) == 0 {
		report.Warnings = append(report.Warnings, "no commits in window; churn statistics are empty")
	}

	// --- 2. Risk Classification ---
	report.Assessments, report.Buckets = ClassifyRisk(clean.Commits, clean.PullRequests, cfg)
	report.Outliers = DetectOutliers(clean.Commits)
	if len(clean.Commits) > 0 && len(clean.Commits) < minOutlierPoints {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("outlier detection needs at least %d commits; skipped", minOutlierPoints))
	}

	// --- 3. DORA Calculation ---
	report.DORA = ComputeDORA(clean, cfg)
	if len(clean.Deployments) == 0 {
		report.Warnings = append(report.Warnings, "no deployments in window; DORA metrics are zeroed")
	}

	// --- 4. Trend Forecasting ---
	churnForecast := ForecastSeries(schema.ChurnMetric, WeeklyChurnSeries(clean.Commits))
	cycleForecast := ForecastSeries(schema.CycleTimeMetric, WeeklyCycleTimeSeries(clean.PullRequests))
	report.Forecasts = []schema.ForecastResult{churnForecast, cycleForecast}
	for _, f := range report.Forecasts {
		if f.Reason != "" {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("%s forecast degraded: %s", f.Metric, f.Reason))
		}
	}
	if churnForecast.PredictedValue > churnWarnLines {
		report.Warnings = append(report.Warnings, "high churn forecast; monitor for potential issues")
	}
	if cycleForecast.PredictedValue > cycleTimeWarnHours {
		report.Warnings = append(report.Warnings, "high cycle time forecast; consider process improvements")
	}

	return report
}

// RunAnalytics is the flat-argument form of Run for callers that have not
// assembled a RecordBatch.
func RunAnalytics(
	commits []schema.CommitRecord,
	prs []schema.PullRequestRecord,
	deployments []schema.DeploymentRecord,
	incidents []schema.IncidentRecord,
	windowDays int,
	cfg *schema.AnalyticsConfig,
) *schema.AnalysisReport {
	batch := &schema.RecordBatch{
		Commits:      commits,
		PullRequests: prs,
		Deployments:  deployments,
		Incidents:    incidents,
		WindowDays:   windowDays,
	}
	return Run(batch, cfg)
}

// sanitizeBatch drops records with impossible numeric fields or missing
// timestamps, recording one warning each. The ingestion boundary already
// validates harvester input; this guards batches assembled in code so a
// single malformed record can never abort the whole run.
func sanitizeBatch(batch *schema.RecordBatch) (*schema.RecordBatch, []string) {
	var warnings []string
	clean := &schema.RecordBatch{WindowDays: batch.WindowDays}

	for i := range batch.Commits {
		c := &batch.Commits[i]
		if c.Additions < 0 || c.Deletions < 0 || c.FilesChanged < 0 || c.Timestamp.IsZero() {
			warnings = append(warnings, fmt.Sprintf("skipped malformed commit %q", c.SHA))
			continue
		}
		clean.Commits = append(clean.Commits, *c)
	}
	for i := range batch.PullRequests {
		p := &batch.PullRequests[i]
		if p.Additions < 0 || p.Deletions < 0 || p.CreatedAt.IsZero() {
			warnings = append(warnings, fmt.Sprintf("skipped malformed pull request %d", p.ID))
			continue
		}
		if p.MergedAt != nil && p.MergedAt.Before(p.CreatedAt) {
			warnings = append(warnings, fmt.Sprintf("skipped pull request %d merged before creation", p.ID))
			continue
		}
		clean.PullRequests = append(clean.PullRequests, *p)
	}
	for i := range batch.Deployments {
		d := &batch.Deployments[i]
		if d.Timestamp.IsZero() {
			warnings = append(warnings, "skipped deployment with missing timestamp")
			continue
		}
		clean.Deployments = append(clean.Deployments, *d)
	}
	for i := range batch.Incidents {
		inc := &batch.Incidents[i]
		if inc.DetectedAt.IsZero() {
			warnings = append(warnings, "skipped incident with missing detection time")
			continue
		}
		if inc.ResolvedAt != nil && inc.ResolvedAt.Before(inc.DetectedAt) {
			warnings = append(warnings, "skipped incident resolved before detection")
			continue
		}
		clean.Incidents = append(clean.Incidents, *inc)
	}

	return clean, warnings
}
