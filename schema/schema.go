// Package schema has configs, models and constants for all parts of devpulse.
package schema

import "time"

// CommitRecord is a single normalized commit as supplied by the harvester.
// Records are immutable once harvested; all derived values are recomputed
// fresh per report.
type CommitRecord struct {
	SHA          string    `json:"sha"`           // Unique commit identifier
	Author       string    `json:"author"`        // Commit author login
	Timestamp    time.Time `json:"timestamp"`     // Author timestamp
	Additions    int       `json:"additions"`     // Lines added
	Deletions    int       `json:"deletions"`     // Lines deleted
	FilesChanged int       `json:"files_changed"` // Number of files touched
	Message      string    `json:"message"`       // Commit message subject
}

// Churn returns lines added plus lines deleted.
func (c *CommitRecord) Churn() int {
	return c.Additions + c.Deletions
}

// PullRequestRecord is a single normalized pull request.
// MergedAt is nil for open or closed-unmerged pull requests.
type PullRequestRecord struct {
	ID          int        `json:"id"`
	Author      string     `json:"author"`
	CreatedAt   time.Time  `json:"created_at"`
	MergedAt    *time.Time `json:"merged_at"`
	ReviewCount int        `json:"review_count"`
	Additions   int        `json:"additions"`
	Deletions   int        `json:"deletions"`
	CIStatus    CIStatus   `json:"ci_status"`
}

// Churn returns lines added plus lines deleted.
func (p *PullRequestRecord) Churn() int {
	return p.Additions + p.Deletions
}

// LeadTimeHours returns the hours between creation and merge.
// The second return value is false for unmerged pull requests,
// for which lead time is undefined.
func (p *PullRequestRecord) LeadTimeHours() (float64, bool) {
	if p.MergedAt == nil {
		return 0, false
	}
	return p.MergedAt.Sub(p.CreatedAt).Hours(), true
}

// DeploymentRecord is a single normalized deployment event.
type DeploymentRecord struct {
	Timestamp time.Time        `json:"timestamp"`
	Status    DeploymentStatus `json:"status"`
}

// IncidentRecord is a single normalized production incident.
// ResolvedAt is nil for incidents that are still open; unresolved
// incidents are excluded from MTTR.
type IncidentRecord struct {
	DetectedAt time.Time  `json:"detected_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
	Status     string     `json:"status"`
}

// RecoveryHours returns the hours between detection and resolution.
// The second return value is false for unresolved incidents.
func (i *IncidentRecord) RecoveryHours() (float64, bool) {
	if i.ResolvedAt == nil {
		return 0, false
	}
	return i.ResolvedAt.Sub(i.DetectedAt).Hours(), true
}

// RecordBatch groups one immutable set of input records for a single
// pipeline invocation. WindowDays is the observation window length.
type RecordBatch struct {
	Commits      []CommitRecord      `json:"commits"`
	PullRequests []PullRequestRecord `json:"pull_requests"`
	Deployments  []DeploymentRecord  `json:"deployments"`
	Incidents    []IncidentRecord    `json:"incidents"`
	WindowDays   int                 `json:"window_days"`
}
