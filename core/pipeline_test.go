package core

import (
	"testing"
	"time"

	"github.com/huangsam/devpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBatch() *schema.RecordBatch {
	merged := time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC)
	return &schema.RecordBatch{
		WindowDays: 14,
		Commits: []schema.CommitRecord{
			commitAt("alice", 1, 100, 50, 3),
			commitAt("bob", 2, 200, 10, 5),
			commitAt("alice", 9, 50, 300, 2),
			commitAt("bob", 10, 1500, 100, 12),
		},
		PullRequests: []schema.PullRequestRecord{
			{ID: 1, Author: "alice", CreatedAt: merged.Add(-24 * time.Hour), MergedAt: &merged, ReviewCount: 2, Additions: 120, Deletions: 30, CIStatus: schema.CISuccess},
		},
		Deployments: []schema.DeploymentRecord{
			{Timestamp: time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC), Status: schema.DeploySuccess},
		},
	}
}

// TestRunProducesCompleteReport verifies every section of the report is
// populated from one batch.
func TestRunProducesCompleteReport(t *testing.T) {
	cfg := defaultCfg()
	report := Run(sampleBatch(), cfg)

	require.NotNil(t, report)
	assert.Equal(t, 14, report.WindowDays)
	assert.Equal(t, 4, report.Churn.TotalCommits)
	assert.Len(t, report.Authors, 2)
	assert.Len(t, report.Assessments, 5) // 4 commits + 1 PR
	assert.NotZero(t, report.DORA.DeploymentFrequencyPerDay)
	assert.Len(t, report.Forecasts, 2)
}

// TestRunEmptyBatch verifies the pipeline completes with a well-formed
// report and warnings rather than an error.
func TestRunEmptyBatch(t *testing.T) {
	cfg := defaultCfg()
	report := Run(&schema.RecordBatch{WindowDays: 7}, cfg)

	require.NotNil(t, report)
	assert.Zero(t, report.Churn.TotalCommits)
	assert.Empty(t, report.Assessments)
	assert.Equal(t, schema.LowCategory, report.DORA.Overall)
	assert.NotEmpty(t, report.Warnings)

	// Degraded forecasts still carry the documented defaults.
	require.Len(t, report.Forecasts, 2)
	for _, f := range report.Forecasts {
		assert.Equal(t, schema.LowConfidence, f.Confidence)
	}
}

// TestRunSkipsMalformedRecords verifies a bad record is dropped with a
// warning instead of aborting the batch.
func TestRunSkipsMalformedRecords(t *testing.T) {
	cfg := defaultCfg()
	batch := sampleBatch()
	batch.Commits = append(batch.Commits, schema.CommitRecord{
		SHA: "bad", Author: "eve", Timestamp: time.Time{}, Additions: 10,
	})

	report := Run(batch, cfg)
	assert.Equal(t, 4, report.Churn.TotalCommits)
	assert.Contains(t, report.Warnings, `skipped malformed commit "bad"`)
}

// TestRunDeterminism verifies two invocations on identical inputs produce
// identical numeric output.
func TestRunDeterminism(t *testing.T) {
	cfg := defaultCfg()
	first := Run(sampleBatch(), cfg)
	second := Run(sampleBatch(), cfg)

	// GeneratedAt is wall-clock; everything else must match exactly.
	first.GeneratedAt = second.GeneratedAt
	assert.Equal(t, first, second)
}

// TestRunAnalyticsFlatForm verifies the flat-argument entry point.
func TestRunAnalyticsFlatForm(t *testing.T) {
	cfg := defaultCfg()
	b := sampleBatch()
	report := RunAnalytics(b.Commits, b.PullRequests, b.Deployments, b.Incidents, b.WindowDays, cfg)

	require.NotNil(t, report)
	assert.Equal(t, b.WindowDays, report.WindowDays)
}

// TestRunWindowDaysFloor verifies the division guard on the window length.
func TestRunWindowDaysFloor(t *testing.T) {
	cfg := defaultCfg()
	batch := sampleBatch()
	batch.WindowDays = 0

	report := Run(batch, cfg)
	assert.Equal(t, 1, report.WindowDays)
	// One deployment over a floored one-day window
	assert.InDelta(t, 1.0, report.DORA.DeploymentFrequencyPerDay, 0.001)
}

// TestSanitizeBatch covers each record family's rejection rules.
func TestSanitizeBatch(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	earlier := now.Add(-time.Hour)
	batch := &schema.RecordBatch{
		Commits: []schema.CommitRecord{
			{SHA: "ok", Timestamp: now, Additions: 1},
			{SHA: "neg", Timestamp: now, Additions: -1},
		},
		PullRequests: []schema.PullRequestRecord{
			{ID: 1, CreatedAt: now},
			{ID: 2, CreatedAt: now, MergedAt: &earlier}, // Merged before creation
		},
		Deployments: []schema.DeploymentRecord{{}, {Timestamp: now}},
		Incidents:   []schema.IncidentRecord{{DetectedAt: now}, {}},
	}

	clean, warnings := sanitizeBatch(batch)
	assert.Len(t, clean.Commits, 1)
	assert.Len(t, clean.PullRequests, 1)
	assert.Len(t, clean.Deployments, 1)
	assert.Len(t, clean.Incidents, 1)
	assert.Len(t, warnings, 4)
}
