package core

import (
	"sort"
	"time"

	"github.com/huangsam/devpulse/schema"
)

// ComputeDORA derives the four key metrics from one batch of records and
// bands each against the configured cutoffs. With zero deployments all
// four values are 0 and the overall band is low; that is the documented
// degraded state, not an error.
func ComputeDORA(batch *schema.RecordBatch, cfg *schema.AnalyticsConfig) schema.DORAMetrics {
	var m schema.DORAMetrics

	if len(batch.Deployments) > 0 {
		windowDays := max(batch.WindowDays, 1)

		m.LeadTimeHours = meanLeadTime(batch.Commits, batch.Deployments)
		m.DeploymentFrequencyPerDay = float64(len(batch.Deployments)) / float64(windowDays)
		m.ChangeFailureRate = changeFailureRate(batch.Deployments, batch.Incidents, cfg.IncidentWindowHours)
		m.MTTRHours = meanRecovery(batch.Incidents)
	}

	m.LeadTimeCategory = bandLowerBetter(m.LeadTimeHours, cfg.Bands.LeadTimeHours)
	m.DeployFreqCategory = bandHigherBetter(m.DeploymentFrequencyPerDay, cfg.Bands.DeploysPerDay)
	m.ChangeFailureCategory = bandLowerBetter(m.ChangeFailureRate, cfg.Bands.FailureRate)
	m.MTTRCategory = bandLowerBetter(m.MTTRHours, cfg.Bands.RecoveryHours)
	m.Overall = schema.WorstCategory(
		m.LeadTimeCategory, m.DeployFreqCategory, m.ChangeFailureCategory, m.MTTRCategory,
	)
	return m
}

// meanLeadTime averages deployment time minus the first associated commit
// time, in hours, over deployments that have an associable commit. Commits
// are associated with the next deployment at or after them; the association
// stays linear after one sort rather than any graph matching.
func meanLeadTime(commits []schema.CommitRecord, deployments []schema.DeploymentRecord) float64 {
	if len(commits) == 0 {
		return 0
	}

	commitTimes := make([]time.Time, len(commits))
	for i := range commits {
		commitTimes[i] = commits[i].Timestamp
	}
	sort.Slice(commitTimes, func(i, j int) bool { return commitTimes[i].Before(commitTimes[j]) })

	deployTimes := make([]time.Time, len(deployments))
	for i := range deployments {
		deployTimes[i] = deployments[i].Timestamp
	}
	sort.Slice(deployTimes, func(i, j int) bool { return deployTimes[i].Before(deployTimes[j]) })

	var leadTimes []float64
	ci := 0
	for _, dt := range deployTimes {
		// First commit after the previous deployment and at or before
		// this one is the first associated commit.
		if ci >= len(commitTimes) || commitTimes[ci].After(dt) {
			continue // No associable commit for this deployment
		}
		leadTimes = append(leadTimes, dt.Sub(commitTimes[ci]).Hours())
		for ci < len(commitTimes) && !commitTimes[ci].After(dt) {
			ci++
		}
	}
	return mean(leadTimes)
}

// changeFailureRate returns failed/total deployments in [0,1]. A deployment
// counts as failed if its status says so, or if an incident was detected
// within windowHours after it.
func changeFailureRate(
	deployments []schema.DeploymentRecord,
	incidents []schema.IncidentRecord,
	windowHours float64,
) float64 {
	window := time.Duration(windowHours * float64(time.Hour))

	detections := make([]time.Time, len(incidents))
	for i := range incidents {
		detections[i] = incidents[i].DetectedAt
	}
	sort.Slice(detections, func(i, j int) bool { return detections[i].Before(detections[j]) })

	failed := 0
	for i := range deployments {
		d := &deployments[i]
		if d.Status == schema.DeployFailed || incidentWithin(detections, d.Timestamp, window) {
			failed++
		}
	}
	return float64(failed) / float64(len(deployments))
}

// incidentWithin reports whether any detection falls in (start, start+window].
func incidentWithin(detections []time.Time, start time.Time, window time.Duration) bool {
	idx := sort.Search(len(detections), func(i int) bool { return detections[i].After(start) })
	return idx < len(detections) && !detections[idx].After(start.Add(window))
}

// meanRecovery averages detected-to-resolved hours over resolved incidents.
// Unresolved incidents are excluded; none resolved yields 0.
func meanRecovery(incidents []schema.IncidentRecord) float64 {
	var hours []float64
	for i := range incidents {
		if h, ok := incidents[i].RecoveryHours(); ok {
			hours = append(hours, h)
		}
	}
	return mean(hours)
}

// bandLowerBetter bands a metric where smaller values are better
// (lead time, failure rate, MTTR).
func bandLowerBetter(value float64, cutoffs schema.DORACutoffs) schema.PerformanceCategory {
	switch {
	case value <= cutoffs.Elite:
		return schema.EliteCategory
	case value <= cutoffs.High:
		return schema.HighCategory
	case value <= cutoffs.Medium:
		return schema.MediumCategory
	default:
		return schema.LowCategory
	}
}

// bandHigherBetter bands a metric where larger values are better
// (deployment frequency).
func bandHigherBetter(value float64, cutoffs schema.DORACutoffs) schema.PerformanceCategory {
	switch {
	case value >= cutoffs.Elite:
		return schema.EliteCategory
	case value >= cutoffs.High:
		return schema.HighCategory
	case value >= cutoffs.Medium:
		return schema.MediumCategory
	default:
		return schema.LowCategory
	}
}
