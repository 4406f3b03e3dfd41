package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/internal/parquet"
	"github.com/huangsam/devpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteReportResults outputs a full analysis report, dispatching based on the
// output format configured.
func WriteReportResults(report *schema.AnalysisReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		// CSV flattens to per-author rows; use the section commands for
		// risk or forecast rows.
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorCSV(w, report, cfg)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.ExportReport(report, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(report, cfg, w)
		}, "Wrote report")
	}
}

// WriteChurnResults outputs the churn section of a report.
func WriteChurnResults(report *schema.AnalysisReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Churn   schema.ChurnSummary       `json:"churn"`
				Authors []schema.AuthorChurnStats `json:"authors"`
			}{report.Churn, report.Authors})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorCSV(w, report, cfg)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChurnSection(report, cfg, w)
		}, "Wrote churn stats")
	}
}

// WriteRiskResults outputs the risk section of a report.
func WriteRiskResults(report *schema.AnalysisReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Buckets  schema.RiskBuckets    `json:"buckets"`
				Outliers []schema.ChurnOutlier `json:"outliers"`
			}{report.Buckets, report.Outliers})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRiskCSV(w, report)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRiskSection(report, cfg, w)
		}, "Wrote risk assessments")
	}
}

// WriteDORAResults outputs the DORA section of a report.
func WriteDORAResults(report *schema.AnalysisReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report.DORA)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDORACSV(w, report, cfg)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDORASection(report, cfg, w)
		}, "Wrote DORA metrics")
	}
}

// WriteForecastResults outputs the forecast section of a report.
func WriteForecastResults(report *schema.AnalysisReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report.Forecasts)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeForecastCSV(w, report, cfg)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeForecastSection(report, cfg, w)
		}, "Wrote forecasts")
	}
}

// writeReportText renders the complete human-readable report, one section
// after another.
func writeReportText(report *schema.AnalysisReport, cfg *contract.Config, w io.Writer) error {
	title := "Engineering velocity report"
	if cfg.UseEmojis {
		title = "📈 " + title
	}
	if _, err := fmt.Fprintf(w, "%s (window: %d days)\n\n", title, report.WindowDays); err != nil {
		return err
	}

	sections := []func(*schema.AnalysisReport, *contract.Config, io.Writer) error{
		writeChurnSection,
		writeRiskSection,
		writeDORASection,
		writeForecastSection,
	}
	for _, section := range sections {
		if err := section(report, cfg, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return writeWarnings(report, cfg, w)
}

// writeChurnSection renders team churn plus the ranked author table.
func writeChurnSection(report *schema.AnalysisReport, cfg *contract.Config, w io.Writer) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	heading := "Code churn"
	if cfg.UseEmojis {
		heading = "🔀 " + heading
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Author", "Commits", "Churn", "Ratio", "Days", "Productivity"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	authorWidth := GetMaxAuthorWidth(cfg)
	var data [][]string
	for i, a := range report.Authors {
		if i >= cfg.ResultLimit {
			break
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateAuthor(a.Author, authorWidth),
			fmt.Sprintf(intFmt, a.Commits),
			fmt.Sprintf(intFmt, a.TotalChurn()),
			fmtFloat(a.ChurnRatio),
			fmt.Sprintf(intFmt, a.ActiveDays),
			fmtFloat(a.Productivity),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	c := report.Churn
	if _, err := fmt.Fprintf(w, "Commits: %d, churn: %d (+%d/-%d, net %+d)\n",
		c.TotalCommits, c.TotalChurn, c.TotalAdditions, c.TotalDeletions, c.NetChange); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Per commit: avg %s, median %s, stddev %s\n",
		fmtFloat(c.AvgChurn), fmtFloat(c.MedianChurn), fmtFloat(c.ChurnStdDev)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Message tags: %d fix, %d feat, %d refactor\n",
		c.Tags.Fix, c.Tags.Feat, c.Tags.Refactor)
	return err
}

// writeRiskSection renders flagged assessments and churn outliers.
func writeRiskSection(report *schema.AnalysisReport, cfg *contract.Config, w io.Writer) error {
	heading := "Risk assessments"
	if cfg.UseEmojis {
		heading = "⚠️  " + heading
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}

	if report.Buckets.Flagged() == 0 {
		if _, err := fmt.Fprintln(w, "Nothing flagged in this window."); err != nil {
			return err
		}
	} else {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Kind", "ID", "Author", "Churn", "Score", "Tier", "Factors"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		count := 0
		for _, bucket := range [][]schema.RiskAssessment{report.Buckets.High, report.Buckets.Medium, report.Buckets.Low} {
			for _, a := range bucket {
				if count >= cfg.ResultLimit {
					break
				}
				data = append(data, []string{
					a.Kind,
					a.ID,
					a.Author,
					strconv.Itoa(a.Churn),
					strconv.Itoa(a.Score),
					contract.TierLabel(a.Tier, cfg.UseColors),
					schema.FormatFactors(a.Factors),
				})
				count++
			}
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Flagged: %d high, %d medium, %d low\n",
			len(report.Buckets.High), len(report.Buckets.Medium), len(report.Buckets.Low)); err != nil {
			return err
		}
	}

	if len(report.Outliers) > 0 {
		if _, err := fmt.Fprintf(w, "Churn outliers (IQR fences):\n"); err != nil {
			return err
		}
		for _, o := range report.Outliers {
			if _, err := fmt.Fprintf(w, "  %s by %s: %d lines (%s)\n", o.SHA, o.Author, o.Churn, o.Direction); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeDORASection renders the four key metrics with their bands.
func writeDORASection(report *schema.AnalysisReport, cfg *contract.Config, w io.Writer) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	heading := "DORA metrics"
	if cfg.UseEmojis {
		heading = "🚀 " + heading
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}

	d := report.DORA
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value", "Band"})
	if err := table.Bulk([][]string{
		{"Lead time", fmtFloat(d.LeadTimeHours) + " h", contract.CategoryLabel(d.LeadTimeCategory, cfg.UseColors)},
		{"Deploy frequency", fmtFloat(d.DeploymentFrequencyPerDay) + " /day", contract.CategoryLabel(d.DeployFreqCategory, cfg.UseColors)},
		{"Change failure rate", fmtPercent(d.ChangeFailureRate), contract.CategoryLabel(d.ChangeFailureCategory, cfg.UseColors)},
		{"Time to restore", fmtFloat(d.MTTRHours) + " h", contract.CategoryLabel(d.MTTRCategory, cfg.UseColors)},
	}); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Overall: %s\n", contract.CategoryLabel(d.Overall, cfg.UseColors))
	return err
}

// writeForecastSection renders the next-period projections.
func writeForecastSection(report *schema.AnalysisReport, cfg *contract.Config, w io.Writer) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	heading := "Forecasts"
	if cfg.UseEmojis {
		heading = "🔮 " + heading
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Forecast", "Range", "Trend", "Confidence", "Weeks"})
	var data [][]string
	for _, f := range report.Forecasts {
		data = append(data, []string{
			string(f.Metric),
			fmtFloat(f.PredictedValue),
			fmt.Sprintf("%s - %s", fmtFloat(f.Range.Optimistic), fmtFloat(f.Range.Pessimistic)),
			string(f.Trend),
			contract.ConfidenceLabel(f.Confidence, cfg.UseColors),
			strconv.Itoa(f.Observations),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, f := range report.Forecasts {
		if f.Reason != "" {
			if _, err := fmt.Fprintf(w, "Note (%s): %s\n", f.Metric, f.Reason); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeWarnings renders stage warnings collected during the run.
func writeWarnings(report *schema.AnalysisReport, cfg *contract.Config, w io.Writer) error {
	if len(report.Warnings) == 0 {
		return nil
	}
	heading := "Warnings"
	if cfg.UseEmojis {
		heading = "🚧 " + heading
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}
	for _, warning := range report.Warnings {
		if _, err := fmt.Fprintf(w, "  %s\n", warning); err != nil {
			return err
		}
	}
	return nil
}

// writeAuthorCSV writes the ranked author stats in CSV format.
func writeAuthorCSV(w io.Writer, report *schema.AnalysisReport, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	header := []string{
		"rank", "author", "commits", "additions", "deletions",
		"churn", "churn_ratio", "active_days", "avg_churn", "productivity",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, a := range report.Authors {
			rec := []string{
				strconv.Itoa(i + 1),
				a.Author,
				fmt.Sprintf(intFmt, a.Commits),
				fmt.Sprintf(intFmt, a.Additions),
				fmt.Sprintf(intFmt, a.Deletions),
				fmt.Sprintf(intFmt, a.TotalChurn()),
				fmtFloat(a.ChurnRatio),
				fmt.Sprintf(intFmt, a.ActiveDays),
				fmtFloat(a.AvgChurn),
				fmtFloat(a.Productivity),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeRiskCSV writes all assessments (flagged or not) in CSV format.
func writeRiskCSV(w io.Writer, report *schema.AnalysisReport) error {
	header := []string{"kind", "id", "author", "churn", "score", "tier", "factors"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, a := range report.Assessments {
			rec := []string{
				a.Kind,
				a.ID,
				a.Author,
				strconv.Itoa(a.Churn),
				strconv.Itoa(a.Score),
				string(a.Tier),
				schema.FormatFactors(a.Factors),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeDORACSV writes the four key metrics as one CSV row.
func writeDORACSV(w io.Writer, report *schema.AnalysisReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	d := report.DORA
	header := []string{
		"lead_time_hours", "lead_time_band",
		"deploy_freq_per_day", "deploy_freq_band",
		"change_failure_rate", "change_failure_band",
		"mttr_hours", "mttr_band",
		"overall",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			fmtFloat(d.LeadTimeHours), string(d.LeadTimeCategory),
			fmtFloat(d.DeploymentFrequencyPerDay), string(d.DeployFreqCategory),
			fmtFloat(d.ChangeFailureRate), string(d.ChangeFailureCategory),
			fmtFloat(d.MTTRHours), string(d.MTTRCategory),
			string(d.Overall),
		})
	})
}

// writeForecastCSV writes one CSV row per forecast.
func writeForecastCSV(w io.Writer, report *schema.AnalysisReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	header := []string{
		"metric", "forecast", "slope", "optimistic", "pessimistic",
		"trend", "confidence", "observations", "reason",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range report.Forecasts {
			rec := []string{
				string(f.Metric),
				fmtFloat(f.PredictedValue),
				fmtFloat(f.Slope),
				fmtFloat(f.Range.Optimistic),
				fmtFloat(f.Range.Pessimistic),
				string(f.Trend),
				string(f.Confidence),
				strconv.Itoa(f.Observations),
				f.Reason,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
