package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/huangsam/devpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBatch = `{
	"window_days": 30,
	"commits": [
		{"sha": "abc123", "author": "alice", "timestamp": "2026-08-03T10:00:00Z",
		 "additions": 120, "deletions": 30, "files_changed": 4, "message": "feat: add parser"},
		{"sha": "def456", "author": "bob", "timestamp": "2026-08-04 09:30:00",
		 "additions": 10, "deletions": 2, "files_changed": 1, "message": "fix typo"}
	],
	"pull_requests": [
		{"id": 1, "author": "alice", "created_at": "2026-08-03T08:00:00Z",
		 "merged_at": "2026-08-04T08:00:00Z", "review_count": 2,
		 "additions": 150, "deletions": 20, "ci_status": "passed"},
		{"id": 2, "author": "bob", "created_at": "2026-08-05T08:00:00Z",
		 "additions": 5, "deletions": 0, "ci_status": "weird"}
	],
	"deployments": [
		{"timestamp": "2026-08-05T12:00:00Z", "status": "success"},
		{"timestamp": "2026-08-06T12:00:00Z", "status": "error"}
	],
	"incidents": [
		{"detected_at": "2026-08-06T13:00:00Z", "resolved_at": "2026-08-06T15:00:00Z", "status": "resolved"},
		{"detected_at": "2026-08-07T13:00:00Z", "status": "open"}
	]
}`

func TestParseBatchHappyPath(t *testing.T) {
	result, err := ParseBatch(strings.NewReader(sampleBatch), 0)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	batch := result.Batch
	assert.Equal(t, 30, batch.WindowDays)
	require.Len(t, batch.Commits, 2)
	assert.Equal(t, "abc123", batch.Commits[0].SHA)
	assert.Equal(t, 120, batch.Commits[0].Additions)
	assert.Equal(t, time.Date(2026, 8, 4, 9, 30, 0, 0, time.UTC), batch.Commits[1].Timestamp)

	require.Len(t, batch.PullRequests, 2)
	assert.Equal(t, schema.CISuccess, batch.PullRequests[0].CIStatus)
	require.NotNil(t, batch.PullRequests[0].MergedAt)
	assert.Nil(t, batch.PullRequests[1].MergedAt)
	assert.Equal(t, schema.CIPending, batch.PullRequests[1].CIStatus)

	require.Len(t, batch.Deployments, 2)
	assert.Equal(t, schema.DeploySuccess, batch.Deployments[0].Status)
	assert.Equal(t, schema.DeployFailed, batch.Deployments[1].Status)

	require.Len(t, batch.Incidents, 2)
	assert.NotNil(t, batch.Incidents[0].ResolvedAt)
	assert.Nil(t, batch.Incidents[1].ResolvedAt)
}

func TestParseBatchWindowOverride(t *testing.T) {
	result, err := ParseBatch(strings.NewReader(sampleBatch), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Batch.WindowDays)
}

func TestParseBatchMalformedRecords(t *testing.T) {
	doc := `{
		"window_days": 30,
		"commits": [
			{"sha": "", "author": "x", "timestamp": "2026-08-03T10:00:00Z",
			 "additions": 1, "deletions": 1, "files_changed": 1},
			{"sha": "aaa", "author": "x", "timestamp": "2026-08-03T10:00:00Z",
			 "deletions": 1, "files_changed": 1},
			{"sha": "bbb", "author": "x", "timestamp": "2026-08-03T10:00:00Z",
			 "additions": -5, "deletions": 1, "files_changed": 1},
			{"sha": "ccc", "author": "x", "timestamp": "not-a-time",
			 "additions": 1, "deletions": 1, "files_changed": 1},
			{"sha": "ok", "author": "x", "timestamp": "2026-08-03T10:00:00Z",
			 "additions": 1, "deletions": 1, "files_changed": 1}
		],
		"pull_requests": [
			{"author": "x", "created_at": "2026-08-03T10:00:00Z", "additions": 1, "deletions": 1},
			{"id": 9, "author": "x", "created_at": "2026-08-03T10:00:00Z",
			 "merged_at": "2026-08-02T10:00:00Z", "additions": 1, "deletions": 1}
		],
		"incidents": [
			{"detected_at": "2026-08-06T13:00:00Z", "resolved_at": "2026-08-06T12:00:00Z"}
		]
	}`
	result, err := ParseBatch(strings.NewReader(doc), 0)
	require.NoError(t, err)

	require.Len(t, result.Batch.Commits, 1)
	assert.Equal(t, "ok", result.Batch.Commits[0].SHA)
	assert.Empty(t, result.Batch.PullRequests)
	assert.Empty(t, result.Batch.Incidents)
	assert.Len(t, result.Warnings, 7)
	assert.Contains(t, result.Warnings[0], "missing sha")
	assert.Contains(t, result.Warnings[1], "missing numeric fields")
	assert.Contains(t, result.Warnings[5], "merged before creation")
	assert.Contains(t, result.Warnings[6], "resolved before detection")
}

func TestParseBatchBadDocument(t *testing.T) {
	_, err := ParseBatch(strings.NewReader("{not json"), 0)
	assert.Error(t, err)
}

func TestLoadBatchMissingFile(t *testing.T) {
	_, err := LoadBatch("/nonexistent/batch.json", 0)
	assert.Error(t, err)
}

func TestParseTimeLayouts(t *testing.T) {
	for _, s := range []string{"2026-08-03T10:00:00Z", "2026-08-03 10:00:00", "2026-08-03"} {
		ts, err := parseTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, time.UTC, ts.Location())
	}
	_, err := parseTime("")
	assert.Error(t, err)
}
