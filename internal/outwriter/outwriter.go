// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API
// for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints a full analysis report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.AnalysisReport, cfg *contract.Config) error {
	return WriteReportResults(report, cfg)
}

// WriteChurn prints only the churn section of a report.
func (ow *OutWriter) WriteChurn(report *schema.AnalysisReport, cfg *contract.Config) error {
	return WriteChurnResults(report, cfg)
}

// WriteRisk prints only the risk section of a report.
func (ow *OutWriter) WriteRisk(report *schema.AnalysisReport, cfg *contract.Config) error {
	return WriteRiskResults(report, cfg)
}

// WriteDORA prints only the DORA section of a report.
func (ow *OutWriter) WriteDORA(report *schema.AnalysisReport, cfg *contract.Config) error {
	return WriteDORAResults(report, cfg)
}

// WriteForecasts prints only the forecast section of a report.
func (ow *OutWriter) WriteForecasts(report *schema.AnalysisReport, cfg *contract.Config) error {
	return WriteForecastResults(report, cfg)
}

// WriteRuns prints stored run history using the configured output format.
func (ow *OutWriter) WriteRuns(runs []schema.StoredRun, cfg *contract.Config) error {
	return WriteRunResults(runs, cfg)
}
