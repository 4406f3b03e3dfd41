package schema

import "time"

// StoredRun is one persisted analysis run summary as read back from the
// report store.
type StoredRun struct {
	RunID        int64      `json:"run_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	TotalRecords int        `json:"total_records"`

	TotalChurn                int                 `json:"total_churn"`
	LeadTimeHours             float64             `json:"lead_time_hours"`
	DeploymentFrequencyPerDay float64             `json:"deployment_frequency_per_day"`
	ChangeFailureRate         float64             `json:"change_failure_rate"`
	MTTRHours                 float64             `json:"mttr_hours"`
	Overall                   PerformanceCategory `json:"overall"`
	ChurnForecast             float64             `json:"churn_forecast"`
	CycleTimeForecast         float64             `json:"cycle_time_forecast"`
}
