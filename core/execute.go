package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/internal/ingest"
	"github.com/huangsam/devpulse/internal/outwriter"
	"github.com/huangsam/devpulse/schema"
)

// writer is the shared output facade for all Execute entrypoints.
var writer = outwriter.NewOutWriter()

// loadAndAnalyze reads the configured batch file and runs the full
// pipeline over it. Ingestion warnings come first in the report so a
// reader sees data-quality problems before stage degradations.
func loadAndAnalyze(cfg *contract.Config) (*schema.AnalysisReport, int, error) {
	loaded, err := ingest.LoadBatch(cfg.InputPath, cfg.WindowDays)
	if err != nil {
		return nil, 0, err
	}
	report := Run(loaded.Batch, &cfg.Analytics)
	if len(loaded.Warnings) > 0 {
		report.Warnings = append(loaded.Warnings, report.Warnings...)
	}
	batch := loaded.Batch
	total := len(batch.Commits) + len(batch.PullRequests) + len(batch.Deployments) + len(batch.Incidents)
	return report, total, nil
}

// persistRun records one full analysis run in the report store. Storage
// failures never abort the run; the report still goes to the writer.
func persistRun(cfg *contract.Config, store contract.ReportStore, report *schema.AnalysisReport, start time.Time, total int) {
	params := map[string]any{
		"input":  cfg.InputPath,
		"window": report.WindowDays,
		"limit":  cfg.ResultLimit,
	}
	runID, err := store.BeginRun(start, params)
	if err != nil {
		contract.LogWarn("Cannot begin stored run", err)
		return
	}
	if err := store.RecordReport(runID, report); err != nil {
		contract.LogWarn("Cannot record report", err)
		return
	}
	if err := store.EndRun(runID, time.Now().UTC(), total); err != nil {
		contract.LogWarn("Cannot finish stored run", err)
	}
}

// ExecuteVelocityReport runs the full pipeline, persists the run when a
// store backend is configured, and writes the complete report.
// It serves as the main entry point for the 'report' command.
func ExecuteVelocityReport(_ context.Context, cfg *contract.Config, store contract.ReportStore) error {
	start := time.Now().UTC()
	report, total, err := loadAndAnalyze(cfg)
	if err != nil {
		return err
	}
	persistRun(cfg, store, report, start, total)
	return writer.WriteReport(report, cfg)
}

// ExecuteChurnView runs the pipeline and writes only the churn section.
func ExecuteChurnView(_ context.Context, cfg *contract.Config) error {
	report, _, err := loadAndAnalyze(cfg)
	if err != nil {
		return err
	}
	return writer.WriteChurn(report, cfg)
}

// ExecuteRiskView runs the pipeline and writes only the risk section.
func ExecuteRiskView(_ context.Context, cfg *contract.Config) error {
	report, _, err := loadAndAnalyze(cfg)
	if err != nil {
		return err
	}
	return writer.WriteRisk(report, cfg)
}

// ExecuteDORAView runs the pipeline and writes only the DORA section.
func ExecuteDORAView(_ context.Context, cfg *contract.Config) error {
	report, _, err := loadAndAnalyze(cfg)
	if err != nil {
		return err
	}
	return writer.WriteDORA(report, cfg)
}

// ExecuteForecastView runs the pipeline and writes the forecast section.
// A non-empty metric narrows the output to that single forecast.
func ExecuteForecastView(_ context.Context, cfg *contract.Config, metric string) error {
	report, _, err := loadAndAnalyze(cfg)
	if err != nil {
		return err
	}
	if metric != "" {
		want := schema.ForecastMetric(metric)
		var kept []schema.ForecastResult
		for _, f := range report.Forecasts {
			if f.Metric == want {
				kept = append(kept, f)
			}
		}
		if len(kept) == 0 {
			return fmt.Errorf("unknown forecast metric: %s", metric)
		}
		report.Forecasts = kept
	}
	return writer.WriteForecasts(report, cfg)
}

// ExecuteMetricsInfo writes the scoring definitions without touching any
// batch file. Purely informational.
func ExecuteMetricsInfo(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteMetricsDefinitions(cfg)
}

// ExecuteStoredRuns lists persisted runs from the report store. When
// warnRunID is non-zero the stored warnings for that run follow the list.
func ExecuteStoredRuns(_ context.Context, cfg *contract.Config, store contract.ReportStore, warnRunID int64) error {
	runs, err := store.ListRuns(cfg.ResultLimit)
	if err != nil {
		return err
	}
	if err := writer.WriteRuns(runs, cfg); err != nil {
		return err
	}
	if warnRunID > 0 {
		warnings, err := store.ListWarnings(warnRunID)
		if err != nil {
			return err
		}
		fmt.Printf("\nWarnings for run %d:\n", warnRunID)
		if len(warnings) == 0 {
			fmt.Println("  (none)")
		}
		for _, w := range warnings {
			fmt.Printf("  - %s\n", w)
		}
	}
	return nil
}
