// Package contract defines configuration processing and the interfaces
// shared between the CLI, the engine and the persistence layer.
package contract

import (
	"time"

	"github.com/huangsam/devpulse/schema"
)

// ReportStore persists analysis runs for later inspection. Implementations
// must be safe for sequential use from a single CLI invocation; a no-op
// implementation backs the "none" backend.
type ReportStore interface {
	// BeginRun registers a new analysis run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// RecordReport stores the headline numbers of a finished report.
	RecordReport(runID int64, report *schema.AnalysisReport) error

	// EndRun finalizes a run with its end time and record count.
	EndRun(runID int64, endTime time.Time, totalRecords int) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(limit int) ([]schema.StoredRun, error)

	// ListWarnings returns the stage warnings stored for one run, in order.
	ListWarnings(runID int64) ([]string, error)

	// Close releases the underlying database handle.
	Close() error
}
