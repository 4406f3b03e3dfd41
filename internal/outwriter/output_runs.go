package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/internal/parquet"
	"github.com/huangsam/devpulse/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// runTimeFormat is how run timestamps are rendered in tables and CSV.
const runTimeFormat = "2006-01-02 15:04:05"

// WriteRunResults outputs stored run history, dispatching based on the
// output format configured.
func WriteRunResults(runs []schema.StoredRun, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunCSV(w, runs, cfg)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.ExportRuns(runs, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunTable(runs, cfg, w)
		}, "Wrote runs")
	}
}

// writeRunTable renders stored runs as a human-readable table.
func writeRunTable(runs []schema.StoredRun, cfg *contract.Config, w io.Writer) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	heading := "Run history"
	if cfg.UseEmojis {
		heading = "🗂️  " + heading
	}
	if _, err := fmt.Fprintln(w, heading); err != nil {
		return err
	}

	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No stored runs. Run `devpulse report` with a store backend configured.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Started", "Duration", "Records", "Churn", "Overall", "Churn Fcst", "Cycle Fcst"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartTime.Format(runTimeFormat),
			formatDuration(r.StartTime, r.EndTime),
			strconv.Itoa(r.TotalRecords),
			strconv.Itoa(r.TotalChurn),
			contract.CategoryLabel(r.Overall, cfg.UseColors),
			fmtFloat(r.ChurnForecast),
			fmtFloat(r.CycleTimeForecast),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d runs\n", len(runs))
	return err
}

// writeRunCSV writes stored runs in CSV format.
func writeRunCSV(w io.Writer, runs []schema.StoredRun, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	header := []string{
		"run_id", "start_time", "end_time", "total_records",
		"total_churn", "lead_time_hours", "deploy_freq_per_day",
		"change_failure_rate", "mttr_hours", "overall",
		"churn_forecast", "cycle_time_forecast",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range runs {
			endTime := ""
			if r.EndTime != nil {
				endTime = r.EndTime.Format(runTimeFormat)
			}
			rec := []string{
				strconv.FormatInt(r.RunID, 10),
				r.StartTime.Format(runTimeFormat),
				endTime,
				strconv.Itoa(r.TotalRecords),
				strconv.Itoa(r.TotalChurn),
				fmtFloat(r.LeadTimeHours),
				fmtFloat(r.DeploymentFrequencyPerDay),
				fmtFloat(r.ChangeFailureRate),
				fmtFloat(r.MTTRHours),
				string(r.Overall),
				fmtFloat(r.ChurnForecast),
				fmtFloat(r.CycleTimeForecast),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatDuration renders an elapsed run duration for status lines.
func formatDuration(start time.Time, end *time.Time) string {
	if end == nil {
		return "running"
	}
	return end.Sub(start).Round(time.Millisecond).String()
}
