package core

import (
	"strconv"

	"github.com/huangsam/devpulse/schema"
)

// iqrFenceFactor is the standard Tukey fence multiplier.
const iqrFenceFactor = 1.5

// minOutlierPoints is the smallest distribution that supports quartile
// interpolation; below it the outlier list is empty, not an error.
const minOutlierPoints = 4

// ScoreCommit assesses a single commit for defect risk. Scoring is
// additive and order-independent: each factor contributes a fixed weight.
func ScoreCommit(c *schema.CommitRecord, cfg *schema.AnalyticsConfig) schema.RiskAssessment {
	a := schema.RiskAssessment{
		Kind:   "commit",
		ID:     c.SHA,
		Author: c.Author,
		Churn:  c.Churn(),
	}

	churn := c.Churn()
	if churn > cfg.ChurnThreshold {
		a.Score += cfg.Weights.HighChurn
		a.Factors = append(a.Factors, schema.FactorHighChurn)
	}
	if c.FilesChanged > cfg.FilesChangedThreshold {
		a.Score += cfg.Weights.ManyFiles
		a.Factors = append(a.Factors, schema.FactorManyFiles)
	}
	if deletionRatio(c.Additions, c.Deletions) > cfg.DeletionRatioThreshold {
		a.Score += cfg.Weights.HighDeletionRatio
		a.Factors = append(a.Factors, schema.FactorHighDeletionRatio)
	}
	if churn > cfg.MassiveChurnThreshold {
		a.Score += cfg.Weights.MassiveCommit
		a.Factors = append(a.Factors, schema.FactorMassiveCommit)
	}

	a.Tier = cfg.TierFor(a.Score)
	return a
}

// ScorePullRequest assesses a single pull request. Pull requests carry no
// files-changed count, so the many_files factor never applies; merged PRs
// that shipped without review pick up the no_review factor instead.
func ScorePullRequest(p *schema.PullRequestRecord, cfg *schema.AnalyticsConfig) schema.RiskAssessment {
	a := schema.RiskAssessment{
		Kind:   "pr",
		ID:     strconv.Itoa(p.ID),
		Author: p.Author,
		Churn:  p.Churn(),
	}

	churn := p.Churn()
	if churn > cfg.ChurnThreshold {
		a.Score += cfg.Weights.HighChurn
		a.Factors = append(a.Factors, schema.FactorHighChurn)
	}
	if deletionRatio(p.Additions, p.Deletions) > cfg.DeletionRatioThreshold {
		a.Score += cfg.Weights.HighDeletionRatio
		a.Factors = append(a.Factors, schema.FactorHighDeletionRatio)
	}
	if churn > cfg.MassiveChurnThreshold {
		a.Score += cfg.Weights.MassiveCommit
		a.Factors = append(a.Factors, schema.FactorMassiveCommit)
	}
	if p.MergedAt != nil && p.ReviewCount == 0 {
		a.Score += cfg.Weights.NoReview
		a.Factors = append(a.Factors, schema.FactorNoReview)
	}

	a.Tier = cfg.TierFor(a.Score)
	return a
}

// ClassifyRisk scores every commit and pull request, returning all
// assessments plus the three tier buckets. Items with score 0 are not
// flagged and appear in no bucket.
func ClassifyRisk(
	commits []schema.CommitRecord,
	prs []schema.PullRequestRecord,
	cfg *schema.AnalyticsConfig,
) ([]schema.RiskAssessment, schema.RiskBuckets) {
	assessments := make([]schema.RiskAssessment, 0, len(commits)+len(prs))
	for i := range commits {
		assessments = append(assessments, ScoreCommit(&commits[i], cfg))
	}
	for i := range prs {
		assessments = append(assessments, ScorePullRequest(&prs[i], cfg))
	}

	var buckets schema.RiskBuckets
	for _, a := range assessments {
		if a.Score == 0 {
			continue
		}
		switch a.Tier {
		case schema.HighRisk:
			buckets.High = append(buckets.High, a)
		case schema.MediumRisk:
			buckets.Medium = append(buckets.Medium, a)
		default:
			buckets.Low = append(buckets.Low, a)
		}
	}

	return assessments, buckets
}

// DetectOutliers tags commits whose churn falls outside the Tukey fences
// [Q1-1.5*IQR, Q3+1.5*IQR] of the team churn distribution. Quartiles need
// at least 4 data points; fewer yields an empty list.
func DetectOutliers(commits []schema.CommitRecord) []schema.ChurnOutlier {
	if len(commits) < minOutlierPoints {
		return nil
	}

	churns := make([]float64, len(commits))
	for i := range commits {
		churns[i] = float64(commits[i].Churn())
	}

	q1 := quantile(churns, 0.25)
	q3 := quantile(churns, 0.75)
	iqr := q3 - q1
	lower := q1 - iqrFenceFactor*iqr
	upper := q3 + iqrFenceFactor*iqr

	var outliers []schema.ChurnOutlier
	for i := range commits {
		c := &commits[i]
		churn := float64(c.Churn())
		switch {
		case churn > upper:
			outliers = append(outliers, schema.ChurnOutlier{
				SHA: c.SHA, Author: c.Author, Churn: c.Churn(), Direction: schema.OutlierHigh,
			})
		case churn < lower:
			outliers = append(outliers, schema.ChurnOutlier{
				SHA: c.SHA, Author: c.Author, Churn: c.Churn(), Direction: schema.OutlierLow,
			})
		}
	}
	return outliers
}

// deletionRatio floors the additions denominator to 1 so deletion-only
// changes never divide by zero.
func deletionRatio(additions, deletions int) float64 {
	return float64(deletions) / float64(max(additions, 1))
}
