package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for report storage.
	DatabaseBackend string

	// CIStatus represents the CI state of a pull request.
	CIStatus string

	// DeploymentStatus represents the outcome of a deployment.
	DeploymentStatus string

	// RiskTier represents the risk bucket of a commit or pull request.
	RiskTier string

	// RiskFactor labels one additive contribution to a risk score.
	RiskFactor string

	// PerformanceCategory is a DORA performance band.
	PerformanceCategory string

	// ConfidenceLevel grades how much to trust a forecast.
	ConfidenceLevel string

	// TrendDirection is the sign of a fitted trend slope.
	TrendDirection string

	// ForecastMetric identifies which weekly series a forecast covers.
	ForecastMetric string

	// OutlierDirection marks which side of the IQR fence a value fell on.
	OutlierDirection string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All report store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All CI statuses supported.
const (
	CISuccess CIStatus = "success"
	CIFailure CIStatus = "failure"
	CIPending CIStatus = "pending"
)

// All deployment statuses supported.
const (
	DeploySuccess DeploymentStatus = "success"
	DeployFailed  DeploymentStatus = "failed"
)

// Risk tiers, highest first.
const (
	HighRisk   RiskTier = "high"
	MediumRisk RiskTier = "medium"
	LowRisk    RiskTier = "low"
)

// Risk factors contributing to a score.
const (
	FactorHighChurn         RiskFactor = "high_churn"
	FactorManyFiles         RiskFactor = "many_files"
	FactorHighDeletionRatio RiskFactor = "high_deletion_ratio"
	FactorMassiveCommit     RiskFactor = "massive_commit"
	FactorNoReview          RiskFactor = "no_review"
)

// DORA performance bands, best first.
const (
	EliteCategory  PerformanceCategory = "elite"
	HighCategory   PerformanceCategory = "high"
	MediumCategory PerformanceCategory = "medium"
	LowCategory    PerformanceCategory = "low"
)

// Forecast confidence levels.
const (
	HighConfidence   ConfidenceLevel = "high"
	MediumConfidence ConfidenceLevel = "medium"
	LowConfidence    ConfidenceLevel = "low"
)

// Trend directions.
const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// Forecast metrics.
const (
	ChurnMetric     ForecastMetric = "churn"
	CycleTimeMetric ForecastMetric = "cycle_time"
)

// Outlier directions.
const (
	OutlierHigh OutlierDirection = "high"
	OutlierLow  OutlierDirection = "low"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid report store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidCIStatuses lists all valid CI statuses.
var ValidCIStatuses = map[CIStatus]struct{}{
	CISuccess: {},
	CIFailure: {},
	CIPending: {},
}

// categoryRank orders performance bands from worst (0) to best (3).
var categoryRank = map[PerformanceCategory]int{
	LowCategory:    0,
	MediumCategory: 1,
	HighCategory:   2,
	EliteCategory:  3,
}

// WorstCategory returns the lowest band among the given categories.
// DORA is commonly read bottleneck-driven, so the overall band is the
// minimum of the four. An empty input returns LowCategory.
func WorstCategory(categories ...PerformanceCategory) PerformanceCategory {
	worst := EliteCategory
	if len(categories) == 0 {
		return LowCategory
	}
	for _, c := range categories {
		if categoryRank[c] < categoryRank[worst] {
			worst = c
		}
	}
	return worst
}
