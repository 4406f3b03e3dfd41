package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/schema"
)

// metricRule is one scoring rule with its live threshold and weight.
type metricRule struct {
	Factor    string  `json:"factor"`
	Condition string  `json:"condition"`
	Threshold float64 `json:"threshold"`
	Weight    int     `json:"weight"`
}

// metricsRenderModel bundles the active thresholds for display.
type metricsRenderModel struct {
	Title string       `json:"title"`
	Rules []metricRule `json:"rules"`

	HighTierCutoff   int `json:"high_tier_cutoff"`
	MediumTierCutoff int `json:"medium_tier_cutoff"`

	Bands schema.DORABands `json:"bands"`
}

// buildMetricsRenderModel constructs the render model from the active
// analytics configuration.
func buildMetricsRenderModel(analytics *schema.AnalyticsConfig) *metricsRenderModel {
	return &metricsRenderModel{
		Title: "Risk scoring and DORA banding",
		Rules: []metricRule{
			{string(schema.FactorHighChurn), "commit churn above", float64(analytics.ChurnThreshold), analytics.Weights.HighChurn},
			{string(schema.FactorManyFiles), "files changed above", float64(analytics.FilesChangedThreshold), analytics.Weights.ManyFiles},
			{string(schema.FactorHighDeletionRatio), "deletion ratio above", analytics.DeletionRatioThreshold, analytics.Weights.HighDeletionRatio},
			{string(schema.FactorMassiveCommit), "commit churn above", float64(analytics.MassiveChurnThreshold), analytics.Weights.MassiveCommit},
			{string(schema.FactorNoReview), "merged without review", 0, analytics.Weights.NoReview},
		},
		HighTierCutoff:   analytics.HighTierCutoff,
		MediumTierCutoff: analytics.MediumTierCutoff,
		Bands:            analytics.Bands,
	}
}

// WriteMetricsDefinitions displays the active scoring rules and banding
// boundaries. This is a static display that does not require input records.
func WriteMetricsDefinitions(cfg *contract.Config) error {
	renderModel := buildMetricsRenderModel(&cfg.Analytics)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsCSV(w, renderModel)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, renderModel, cfg)
		}, "Wrote text")
	}
}

// writeMetricsText displays metrics in human-readable text format.
func writeMetricsText(w io.Writer, renderModel *metricsRenderModel, cfg *contract.Config) error {
	title := renderModel.Title
	if cfg.UseEmojis {
		title = "📏 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "Risk factors (additive):"); err != nil {
		return err
	}
	for _, rule := range renderModel.Rules {
		if rule.Threshold > 0 {
			if _, err := fmt.Fprintf(w, "  %s: %s %g (+%d)\n", rule.Factor, rule.Condition, rule.Threshold, rule.Weight); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, "  %s: %s (+%d)\n", rule.Factor, rule.Condition, rule.Weight); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(w, "Tiers: high >= %d, medium >= %d, low >= 1\n\n",
		renderModel.HighTierCutoff, renderModel.MediumTierCutoff); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "DORA bands:"); err != nil {
		return err
	}
	b := renderModel.Bands
	lines := []struct {
		name    string
		cutoffs schema.DORACutoffs
		note    string
	}{
		{"Lead time (h)", b.LeadTimeHours, "lower is better"},
		{"Deploys per day", b.DeploysPerDay, "higher is better"},
		{"Failure rate", b.FailureRate, "lower is better"},
		{"Recovery (h)", b.RecoveryHours, "lower is better"},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "  %s: elite %g, high %g, medium %g (%s)\n",
			line.name, line.cutoffs.Elite, line.cutoffs.High, line.cutoffs.Medium, line.note); err != nil {
			return err
		}
	}

	return nil
}

// writeMetricsCSV displays the scoring rules in CSV format.
func writeMetricsCSV(w io.Writer, renderModel *metricsRenderModel) error {
	header := []string{"factor", "condition", "threshold", "weight"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, rule := range renderModel.Rules {
			rec := []string{
				rule.Factor,
				rule.Condition,
				fmt.Sprintf("%g", rule.Threshold),
				fmt.Sprintf("%d", rule.Weight),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
