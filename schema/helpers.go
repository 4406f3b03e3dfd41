package schema

import "strings"

// FormatFactors joins risk factors as "high_churn, many_files" for display.
func FormatFactors(factors []RiskFactor) string {
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}

// ParseCIStatus normalizes a raw CI status string. Unknown values map to
// CIPending so a sloppy harvester cannot inflate the failure count.
func ParseCIStatus(s string) CIStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success", "passed":
		return CISuccess
	case "failure", "failed":
		return CIFailure
	default:
		return CIPending
	}
}

// ParseDeploymentStatus normalizes a raw deployment status string.
// Anything that is not explicitly failed counts as success.
func ParseDeploymentStatus(s string) DeploymentStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "failed", "failure", "error":
		return DeployFailed
	default:
		return DeploySuccess
	}
}
