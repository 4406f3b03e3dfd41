package core

import (
	"math"
	"sort"
	"time"

	"github.com/huangsam/devpulse/schema"
)

// Forecast range multipliers. These are metric-specific constants, not
// derived statistically: churn swings wider week to week than cycle time.
const (
	ChurnOptimisticFactor      = 0.7
	ChurnPessimisticFactor     = 1.4
	CycleTimeOptimisticFactor  = 0.85
	CycleTimePessimisticFactor = 1.25
)

// Fallback forecasts used when fewer than 2 observations exist. Fixed
// documented constants keep the output reproducible; the engine never
// substitutes random noise.
const (
	DefaultChurnForecast     = 1000.0 // Lines per week
	DefaultCycleTimeForecast = 24.0   // Hours
)

// Residual-stddev cutoffs mapping fit quality to a confidence label.
const (
	churnHighConfidenceStdDev   = 100.0
	churnMediumConfidenceStdDev = 500.0
	cycleHighConfidenceStdDev   = 5.0
	cycleMediumConfidenceStdDev = 10.0
)

// minForecastPoints is the smallest series a regression can run on.
const minForecastPoints = 2

// ForecastSeries fits an ordinary least-squares line to a time-ordered
// weekly series and projects the next period. The closed-form fit keeps the
// output exact and deterministic. Forecasts are clamped to zero since churn
// and cycle time cannot be negative. Fewer than 2 observations returns the
// metric's documented fallback with low confidence; it never fails.
func ForecastSeries(metric schema.ForecastMetric, series []float64) schema.ForecastResult {
	result := schema.ForecastResult{
		Metric:       metric,
		Observations: len(series),
	}

	if len(series) < minForecastPoints {
		result.PredictedValue = fallbackForecast(metric)
		result.Confidence = schema.LowConfidence
		result.Trend = schema.TrendStable
		result.Range = forecastRange(metric, result.PredictedValue)
		result.Reason = "insufficient historical data"
		return result
	}

	slope, intercept := fitLine(series)
	lastValue := series[len(series)-1]

	result.Slope = slope
	result.PredictedValue = math.Max(0, lastValue+slope)
	result.ResidualStdDev = residualStdDev(series, slope, intercept)
	result.Confidence = confidenceFor(metric, result.ResidualStdDev)
	result.Trend = trendFor(slope)
	result.Range = forecastRange(metric, result.PredictedValue)
	return result
}

// fitLine computes the closed-form OLS slope and intercept of value
// against index. The caller guarantees at least 2 points.
func fitLine(series []float64) (slope, intercept float64) {
	n := float64(len(series))
	xMean := (n - 1) / 2 // Indices 0..n-1
	yMean := mean(series)

	var num, den float64
	for i, y := range series {
		dx := float64(i) - xMean
		num += dx * (y - yMean)
		den += dx * dx
	}
	slope = num / den
	intercept = yMean - slope*xMean
	return slope, intercept
}

// residualStdDev measures the spread of the series around the fitted line.
func residualStdDev(series []float64, slope, intercept float64) float64 {
	var ss float64
	for i, y := range series {
		r := y - (intercept + slope*float64(i))
		ss += r * r
	}
	return math.Sqrt(ss / float64(len(series)))
}

// confidenceFor maps residual spread to a confidence label using
// metric-specific cutoffs.
func confidenceFor(metric schema.ForecastMetric, stdDev float64) schema.ConfidenceLevel {
	high, medium := churnHighConfidenceStdDev, churnMediumConfidenceStdDev
	if metric == schema.CycleTimeMetric {
		high, medium = cycleHighConfidenceStdDev, cycleMediumConfidenceStdDev
	}
	switch {
	case stdDev < high:
		return schema.HighConfidence
	case stdDev < medium:
		return schema.MediumConfidence
	default:
		return schema.LowConfidence
	}
}

// trendFor maps the slope sign to a direction label.
func trendFor(slope float64) schema.TrendDirection {
	switch {
	case slope > 0:
		return schema.TrendIncreasing
	case slope < 0:
		return schema.TrendDecreasing
	default:
		return schema.TrendStable
	}
}

// forecastRange bounds a forecast with the metric's multipliers.
func forecastRange(metric schema.ForecastMetric, forecast float64) schema.ForecastRange {
	opt, pess := ChurnOptimisticFactor, ChurnPessimisticFactor
	if metric == schema.CycleTimeMetric {
		opt, pess = CycleTimeOptimisticFactor, CycleTimePessimisticFactor
	}
	return schema.ForecastRange{
		Optimistic:  forecast * opt,
		Pessimistic: forecast * pess,
	}
}

// fallbackForecast returns the documented default for a metric.
func fallbackForecast(metric schema.ForecastMetric) float64 {
	if metric == schema.CycleTimeMetric {
		return DefaultCycleTimeForecast
	}
	return DefaultChurnForecast
}

// WeeklyChurnSeries buckets commits into calendar weeks and returns total
// churn per week, oldest first. Weeks between the first and last commit
// with no activity contribute an explicit zero so the regression sees the
// quiet weeks too.
func WeeklyChurnSeries(commits []schema.CommitRecord) []float64 {
	if len(commits) == 0 {
		return nil
	}

	totals := make(map[time.Time]float64)
	first := weekStart(commits[0].Timestamp)
	last := first
	for i := range commits {
		week := weekStart(commits[i].Timestamp)
		totals[week] += float64(commits[i].Churn())
		if week.Before(first) {
			first = week
		}
		if week.After(last) {
			last = week
		}
	}

	var series []float64
	for week := first; !week.After(last); week = week.AddDate(0, 0, 7) {
		series = append(series, totals[week])
	}
	return series
}

// WeeklyCycleTimeSeries buckets merged pull requests by merge week and
// returns mean lead time hours per week, oldest first. Weeks without a
// merge are skipped: a mean over nothing is undefined, unlike zero churn.
func WeeklyCycleTimeSeries(prs []schema.PullRequestRecord) []float64 {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for i := range prs {
		hours, ok := prs[i].LeadTimeHours()
		if !ok {
			continue
		}
		week := weekStart(*prs[i].MergedAt)
		sums[week] += hours
		counts[week]++
	}
	if len(sums) == 0 {
		return nil
	}

	weeks := make([]time.Time, 0, len(sums))
	for week := range sums {
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	series := make([]float64, len(weeks))
	for i, week := range weeks {
		series[i] = sums[week] / float64(counts[week])
	}
	return series
}

// weekStart truncates a timestamp to the Monday of its ISO week, in UTC.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}
