package core

import (
	"testing"
	"time"

	"github.com/huangsam/devpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCfg() *schema.AnalyticsConfig {
	cfg := schema.DefaultAnalyticsConfig()
	return &cfg
}

// TestScoreCommit covers the additive scoring rule.
func TestScoreCommit(t *testing.T) {
	tests := []struct {
		name    string
		commit  schema.CommitRecord
		score   int
		tier    schema.RiskTier
		factors []schema.RiskFactor
	}{
		{
			name:    "clean small commit",
			commit:  schema.CommitRecord{SHA: "a", Additions: 50, Deletions: 10, FilesChanged: 2},
			score:   0,
			tier:    schema.LowRisk,
			factors: nil,
		},
		{
			name:    "high churn only",
			commit:  schema.CommitRecord{SHA: "b", Additions: 350, Deletions: 0, FilesChanged: 1},
			score:   3,
			tier:    schema.MediumRisk,
			factors: []schema.RiskFactor{schema.FactorHighChurn},
		},
		{
			name: "massive commit reaches high tier",
			// Reference scenario: 2000 additions, 0 deletions, 1 file
			// scores 3 (high_churn) + 2 (massive_commit) = 5.
			commit:  schema.CommitRecord{SHA: "c", Additions: 2000, Deletions: 0, FilesChanged: 1},
			score:   5,
			tier:    schema.HighRisk,
			factors: []schema.RiskFactor{schema.FactorHighChurn, schema.FactorMassiveCommit},
		},
		{
			name:   "all factors stack",
			commit: schema.CommitRecord{SHA: "d", Additions: 500, Deletions: 600, FilesChanged: 12},
			score:  8,
			tier:   schema.HighRisk,
			factors: []schema.RiskFactor{
				schema.FactorHighChurn, schema.FactorManyFiles,
				schema.FactorHighDeletionRatio, schema.FactorMassiveCommit,
			},
		},
		{
			name:    "deletion heavy refactor",
			commit:  schema.CommitRecord{SHA: "e", Additions: 10, Deletions: 100, FilesChanged: 3},
			score:   1,
			tier:    schema.LowRisk,
			factors: []schema.RiskFactor{schema.FactorHighDeletionRatio},
		},
	}

	cfg := defaultCfg()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := ScoreCommit(&tt.commit, cfg)
			assert.Equal(t, tt.score, a.Score)
			assert.Equal(t, tt.tier, a.Tier)
			assert.Equal(t, tt.factors, a.Factors)
		})
	}
}

// TestScoreMonotonic verifies that adding a risk factor never lowers the
// bucket tier.
func TestScoreMonotonic(t *testing.T) {
	cfg := defaultCfg()
	base := schema.CommitRecord{SHA: "m", Additions: 250, Deletions: 40, FilesChanged: 2}
	before := ScoreCommit(&base, cfg)

	// Push churn past the 300-line threshold.
	bumped := base
	bumped.Additions = 400
	after := ScoreCommit(&bumped, cfg)

	assert.GreaterOrEqual(t, after.Score, before.Score)
	tierRank := map[schema.RiskTier]int{schema.LowRisk: 0, schema.MediumRisk: 1, schema.HighRisk: 2}
	assert.GreaterOrEqual(t, tierRank[after.Tier], tierRank[before.Tier])
}

// TestScorePullRequest covers PR-specific factors.
func TestScorePullRequest(t *testing.T) {
	cfg := defaultCfg()
	merged := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	t.Run("unreviewed merged PR", func(t *testing.T) {
		pr := schema.PullRequestRecord{ID: 7, Additions: 40, Deletions: 5, MergedAt: &merged}
		a := ScorePullRequest(&pr, cfg)
		assert.Equal(t, 1, a.Score)
		assert.Equal(t, []schema.RiskFactor{schema.FactorNoReview}, a.Factors)
	})

	t.Run("reviewed open PR is clean", func(t *testing.T) {
		pr := schema.PullRequestRecord{ID: 8, Additions: 40, Deletions: 5, ReviewCount: 2}
		a := ScorePullRequest(&pr, cfg)
		assert.Zero(t, a.Score)
	})

	t.Run("large unreviewed PR stacks factors", func(t *testing.T) {
		pr := schema.PullRequestRecord{ID: 9, Additions: 900, Deletions: 700, MergedAt: &merged}
		a := ScorePullRequest(&pr, cfg)
		assert.Equal(t, 7, a.Score) // high_churn + high_deletion_ratio + massive + no_review
		assert.Equal(t, schema.HighRisk, a.Tier)
	})
}

// TestClassifyRiskBuckets verifies score-zero items appear in no bucket.
func TestClassifyRiskBuckets(t *testing.T) {
	cfg := defaultCfg()
	commits := []schema.CommitRecord{
		{SHA: "clean", Additions: 10, Deletions: 2, FilesChanged: 1},
		{SHA: "medium", Additions: 400, Deletions: 10, FilesChanged: 2},
		{SHA: "high", Additions: 1500, Deletions: 200, FilesChanged: 15},
	}

	assessments, buckets := ClassifyRisk(commits, nil, cfg)
	assert.Len(t, assessments, 3)
	assert.Len(t, buckets.High, 1)
	assert.Len(t, buckets.Medium, 1)
	assert.Empty(t, buckets.Low)
	assert.Equal(t, 2, buckets.Flagged())
}

// TestDetectOutliers exercises the Tukey fences.
func TestDetectOutliers(t *testing.T) {
	t.Run("fewer than 4 points yields empty", func(t *testing.T) {
		commits := []schema.CommitRecord{
			{SHA: "a", Additions: 10}, {SHA: "b", Additions: 20}, {SHA: "c", Additions: 5000},
		}
		assert.Empty(t, DetectOutliers(commits))
	})

	t.Run("high outlier detected", func(t *testing.T) {
		commits := []schema.CommitRecord{
			{SHA: "a", Additions: 100}, {SHA: "b", Additions: 110},
			{SHA: "c", Additions: 105}, {SHA: "d", Additions: 95},
			{SHA: "huge", Additions: 5000},
		}
		outliers := DetectOutliers(commits)
		require.Len(t, outliers, 1)
		assert.Equal(t, "huge", outliers[0].SHA)
		assert.Equal(t, schema.OutlierHigh, outliers[0].Direction)
	})

	t.Run("uniform distribution has no outliers", func(t *testing.T) {
		commits := []schema.CommitRecord{
			{SHA: "a", Additions: 100}, {SHA: "b", Additions: 102},
			{SHA: "c", Additions: 98}, {SHA: "d", Additions: 101},
		}
		assert.Empty(t, DetectOutliers(commits))
	})
}

// TestDeletionRatioGuard verifies the floored denominator.
func TestDeletionRatioGuard(t *testing.T) {
	assert.InDelta(t, 120.0, deletionRatio(0, 120), 0.001)
	assert.InDelta(t, 0.5, deletionRatio(100, 50), 0.001)
}

// FuzzScoreCommit asserts scoring invariants over arbitrary inputs.
func FuzzScoreCommit(f *testing.F) {
	f.Add(100, 50, 3)
	f.Add(2000, 0, 1)
	f.Add(0, 0, 0)

	cfg := schema.DefaultAnalyticsConfig()
	f.Fuzz(func(t *testing.T, additions, deletions, files int) {
		if additions < 0 || deletions < 0 || files < 0 {
			t.Skip()
		}
		c := schema.CommitRecord{SHA: "fuzz", Additions: additions, Deletions: deletions, FilesChanged: files}
		a := ScoreCommit(&c, &cfg)
		if a.Score < 0 {
			t.Fatalf("negative risk score %d", a.Score)
		}
		if a.Score > 0 && len(a.Factors) == 0 {
			t.Fatal("positive score without factors")
		}
	})
}
