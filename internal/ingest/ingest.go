// Package ingest loads harvester batch files into typed records.
// Validation happens here, at the boundary: malformed records are rejected
// with a recorded warning instead of being defensively handled at every
// use site inside the engine.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/schema"
)

// Accepted timestamp layouts, tried in order. Harvesters emit RFC3339;
// the space-separated layout covers database exports.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadResult pairs a validated batch with per-record warnings.
type LoadResult struct {
	Batch    *schema.RecordBatch
	Warnings []string
}

// rawCommit mirrors the harvester JSON with pointer numerics so a missing
// field is distinguishable from an explicit zero.
type rawCommit struct {
	SHA          string `json:"sha"`
	Author       string `json:"author"`
	Timestamp    string `json:"timestamp"`
	Additions    *int   `json:"additions"`
	Deletions    *int   `json:"deletions"`
	FilesChanged *int   `json:"files_changed"`
	Message      string `json:"message"`
}

type rawPullRequest struct {
	ID          *int   `json:"id"`
	Author      string `json:"author"`
	CreatedAt   string `json:"created_at"`
	MergedAt    string `json:"merged_at"`
	ReviewCount *int   `json:"review_count"`
	Additions   *int   `json:"additions"`
	Deletions   *int   `json:"deletions"`
	CIStatus    string `json:"ci_status"`
}

type rawDeployment struct {
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

type rawIncident struct {
	DetectedAt string `json:"detected_at"`
	ResolvedAt string `json:"resolved_at"`
	Status     string `json:"status"`
}

type rawBatch struct {
	Commits      []rawCommit      `json:"commits"`
	PullRequests []rawPullRequest `json:"pull_requests"`
	Deployments  []rawDeployment  `json:"deployments"`
	Incidents    []rawIncident    `json:"incidents"`
	WindowDays   int              `json:"window_days"`
}

// LoadBatch reads and validates a harvester batch file. windowDays
// overrides the file's own window when positive.
func LoadBatch(path string, windowDays int) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseBatch(f, windowDays)
}

// ParseBatch decodes and validates one batch. Individual malformed records
// produce warnings and are skipped; only an undecodable document is an error.
func ParseBatch(r io.Reader, windowDays int) (*LoadResult, error) {
	var raw rawBatch
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}

	result := &LoadResult{Batch: &schema.RecordBatch{WindowDays: raw.WindowDays}}
	if windowDays > 0 {
		result.Batch.WindowDays = windowDays
	}
	if result.Batch.WindowDays <= 0 {
		result.Batch.WindowDays = contract.DefaultWindowDays
	}

	for i, rc := range raw.Commits {
		commit, err := validateCommit(&rc)
		if err != nil {
			result.warnf("commit %d (%s): %v", i, rc.SHA, err)
			continue
		}
		result.Batch.Commits = append(result.Batch.Commits, commit)
	}
	for i, rp := range raw.PullRequests {
		pr, err := validatePullRequest(&rp)
		if err != nil {
			result.warnf("pull request %d: %v", i, err)
			continue
		}
		result.Batch.PullRequests = append(result.Batch.PullRequests, pr)
	}
	for i, rd := range raw.Deployments {
		dep, err := validateDeployment(&rd)
		if err != nil {
			result.warnf("deployment %d: %v", i, err)
			continue
		}
		result.Batch.Deployments = append(result.Batch.Deployments, dep)
	}
	for i, ri := range raw.Incidents {
		inc, err := validateIncident(&ri)
		if err != nil {
			result.warnf("incident %d: %v", i, err)
			continue
		}
		result.Batch.Incidents = append(result.Batch.Incidents, inc)
	}

	return result, nil
}

func (lr *LoadResult) warnf(format string, args ...any) {
	lr.Warnings = append(lr.Warnings, fmt.Sprintf(format, args...))
}

func validateCommit(rc *rawCommit) (schema.CommitRecord, error) {
	var c schema.CommitRecord
	if rc.SHA == "" {
		return c, fmt.Errorf("missing sha")
	}
	if rc.Additions == nil || rc.Deletions == nil || rc.FilesChanged == nil {
		return c, fmt.Errorf("missing numeric fields")
	}
	if *rc.Additions < 0 || *rc.Deletions < 0 || *rc.FilesChanged < 0 {
		return c, fmt.Errorf("negative numeric fields")
	}
	ts, err := parseTime(rc.Timestamp)
	if err != nil {
		return c, fmt.Errorf("bad timestamp: %w", err)
	}

	return schema.CommitRecord{
		SHA:          rc.SHA,
		Author:       rc.Author,
		Timestamp:    ts,
		Additions:    *rc.Additions,
		Deletions:    *rc.Deletions,
		FilesChanged: *rc.FilesChanged,
		Message:      rc.Message,
	}, nil
}

func validatePullRequest(rp *rawPullRequest) (schema.PullRequestRecord, error) {
	var p schema.PullRequestRecord
	if rp.ID == nil {
		return p, fmt.Errorf("missing id")
	}
	if rp.Additions == nil || rp.Deletions == nil {
		return p, fmt.Errorf("missing numeric fields")
	}
	if *rp.Additions < 0 || *rp.Deletions < 0 {
		return p, fmt.Errorf("negative numeric fields")
	}
	created, err := parseTime(rp.CreatedAt)
	if err != nil {
		return p, fmt.Errorf("bad created_at: %w", err)
	}

	p = schema.PullRequestRecord{
		ID:        *rp.ID,
		Author:    rp.Author,
		CreatedAt: created,
		Additions: *rp.Additions,
		Deletions: *rp.Deletions,
		CIStatus:  schema.ParseCIStatus(rp.CIStatus),
	}
	if rp.ReviewCount != nil {
		p.ReviewCount = *rp.ReviewCount
	}
	if rp.MergedAt != "" {
		merged, err := parseTime(rp.MergedAt)
		if err != nil {
			return p, fmt.Errorf("bad merged_at: %w", err)
		}
		if merged.Before(created) {
			return p, fmt.Errorf("merged before creation")
		}
		p.MergedAt = &merged
	}
	return p, nil
}

func validateDeployment(rd *rawDeployment) (schema.DeploymentRecord, error) {
	ts, err := parseTime(rd.Timestamp)
	if err != nil {
		return schema.DeploymentRecord{}, fmt.Errorf("bad timestamp: %w", err)
	}
	return schema.DeploymentRecord{
		Timestamp: ts,
		Status:    schema.ParseDeploymentStatus(rd.Status),
	}, nil
}

func validateIncident(ri *rawIncident) (schema.IncidentRecord, error) {
	var inc schema.IncidentRecord
	detected, err := parseTime(ri.DetectedAt)
	if err != nil {
		return inc, fmt.Errorf("bad detected_at: %w", err)
	}
	inc = schema.IncidentRecord{DetectedAt: detected, Status: ri.Status}
	if ri.ResolvedAt != "" {
		resolved, err := parseTime(ri.ResolvedAt)
		if err != nil {
			return inc, fmt.Errorf("bad resolved_at: %w", err)
		}
		if resolved.Before(detected) {
			return inc, fmt.Errorf("resolved before detection")
		}
		inc.ResolvedAt = &resolved
	}
	return inc, nil
}

// parseTime tries each accepted layout in order.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
