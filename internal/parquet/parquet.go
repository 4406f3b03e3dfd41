// Package parquet provides data structures and functions for exporting
// devpulse reports to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/devpulse/schema"
	"github.com/parquet-go/parquet-go"
)

// AuthorStat is one author's churn aggregate in a report.
type AuthorStat struct {
	// GeneratedAt is when the parent report was produced
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// Author is the normalized author name
	Author string `parquet:"author,snappy"`

	// Commits is the author's commit count in the window
	Commits int32 `parquet:"commits,snappy"`

	// Additions and Deletions are line totals in the window
	Additions int32 `parquet:"additions,snappy"`
	Deletions int32 `parquet:"deletions,snappy"`

	// ActiveDays is the number of distinct days with at least one commit
	ActiveDays int32 `parquet:"active_days,snappy"`

	// ChurnRatio is deletions over additions
	ChurnRatio float64 `parquet:"churn_ratio,snappy"`

	// Productivity is the composite ranking score
	Productivity float64 `parquet:"productivity,snappy"`
}

// Assessment is one flagged commit or pull request in a report.
type Assessment struct {
	// GeneratedAt is when the parent report was produced
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// Kind is "commit" or "pr"
	Kind string `parquet:"kind,snappy"`

	// ID is the commit SHA or pull request number
	ID string `parquet:"id,snappy"`

	// Author is the normalized author name
	Author string `parquet:"author,snappy"`

	// Churn is the total lines touched
	Churn int32 `parquet:"churn,snappy"`

	// Score is the additive risk score
	Score int32 `parquet:"score,snappy"`

	// Tier is the resulting risk bucket (empty when unflagged)
	Tier string `parquet:"tier,snappy"`

	// Factors is the comma-joined factor list
	Factors string `parquet:"factors,snappy"`
}

// RunSummary is one stored run as read back from the report store.
type RunSummary struct {
	RunID     int64      `parquet:"run_id,snappy"`
	StartTime time.Time  `parquet:"start_time,snappy"`
	EndTime   *time.Time `parquet:"end_time,optional,snappy"`

	TotalRecords      int32   `parquet:"total_records,snappy"`
	TotalChurn        int32   `parquet:"total_churn,snappy"`
	LeadTimeHours     float64 `parquet:"lead_time_hours,snappy"`
	DeployFreqPerDay  float64 `parquet:"deploy_freq_per_day,snappy"`
	ChangeFailureRate float64 `parquet:"change_failure_rate,snappy"`
	MTTRHours         float64 `parquet:"mttr_hours,snappy"`
	Overall           string  `parquet:"overall,snappy"`
	ChurnForecast     float64 `parquet:"churn_forecast,snappy"`
	CycleTimeForecast float64 `parquet:"cycle_time_forecast,snappy"`
}

// writeParquet writes any record slice to a Parquet file using struct
// schema inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// ExportReport writes a report's author stats and risk assessments to a pair
// of Parquet files derived from outputFile.
func ExportReport(report *schema.AnalysisReport, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("an output file is required for parquet export")
	}

	authorsFile := outputFile + ".authors.parquet"
	if err := writeParquet(ConvertAuthorStats(report), authorsFile); err != nil {
		return fmt.Errorf("failed to write author stats: %w", err)
	}
	fmt.Printf("Exported %d author stats to: %s\n", len(report.Authors), authorsFile)

	assessmentsFile := outputFile + ".assessments.parquet"
	if err := writeParquet(ConvertAssessments(report), assessmentsFile); err != nil {
		return fmt.Errorf("failed to write assessments: %w", err)
	}
	fmt.Printf("Exported %d assessments to: %s\n", len(report.Assessments), assessmentsFile)

	return nil
}

// ExportRuns writes stored run history to a single Parquet file.
func ExportRuns(runs []schema.StoredRun, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("an output file is required for parquet export")
	}

	runsFile := outputFile + ".runs.parquet"
	if err := writeParquet(ConvertStoredRuns(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	return nil
}

// ConvertAuthorStats converts a report's author stats for Parquet export.
func ConvertAuthorStats(report *schema.AnalysisReport) []AuthorStat {
	result := make([]AuthorStat, len(report.Authors))
	for i, a := range report.Authors {
		result[i] = AuthorStat{
			GeneratedAt:  report.GeneratedAt,
			Author:       a.Author,
			Commits:      int32(a.Commits),
			Additions:    int32(a.Additions),
			Deletions:    int32(a.Deletions),
			ActiveDays:   int32(a.ActiveDays),
			ChurnRatio:   a.ChurnRatio,
			Productivity: a.Productivity,
		}
	}
	return result
}

// ConvertAssessments converts a report's risk assessments for Parquet export.
func ConvertAssessments(report *schema.AnalysisReport) []Assessment {
	result := make([]Assessment, len(report.Assessments))
	for i, a := range report.Assessments {
		result[i] = Assessment{
			GeneratedAt: report.GeneratedAt,
			Kind:        a.Kind,
			ID:          a.ID,
			Author:      a.Author,
			Churn:       int32(a.Churn),
			Score:       int32(a.Score),
			Tier:        string(a.Tier),
			Factors:     schema.FormatFactors(a.Factors),
		}
	}
	return result
}

// ConvertStoredRuns converts stored runs for Parquet export.
func ConvertStoredRuns(runs []schema.StoredRun) []RunSummary {
	result := make([]RunSummary, len(runs))
	for i, r := range runs {
		result[i] = RunSummary{
			RunID:             r.RunID,
			StartTime:         r.StartTime,
			EndTime:           r.EndTime,
			TotalRecords:      int32(r.TotalRecords),
			TotalChurn:        int32(r.TotalChurn),
			LeadTimeHours:     r.LeadTimeHours,
			DeployFreqPerDay:  r.DeploymentFrequencyPerDay,
			ChangeFailureRate: r.ChangeFailureRate,
			MTTRHours:         r.MTTRHours,
			Overall:           string(r.Overall),
			ChurnForecast:     r.ChurnForecast,
			CycleTimeForecast: r.CycleTimeForecast,
		}
	}
	return result
}
