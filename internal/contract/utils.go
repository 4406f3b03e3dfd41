package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/huangsam/devpulse/schema"
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // highColor flags items needing attention now.
	MediumColor = color.New(color.FgYellow)          // mediumColor represents standard caution, not bold.
	LowColor    = color.New(color.FgCyan)            // lowColor represents informational / low-priority signal.
	EliteColor  = color.New(color.FgGreen, color.Bold)
	GoodColor   = color.New(color.FgGreen)
)

// TierLabel returns a colored risk tier label for console output (table).
// With colors disabled it returns the plain tier string.
func TierLabel(tier schema.RiskTier, useColors bool) string {
	text := string(tier)
	if !useColors {
		return text
	}
	switch tier {
	case schema.HighRisk:
		return HighColor.Sprint(text)
	case schema.MediumRisk:
		return MediumColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// CategoryLabel returns a colored DORA band label for console output.
func CategoryLabel(category schema.PerformanceCategory, useColors bool) string {
	text := string(category)
	if !useColors {
		return text
	}
	switch category {
	case schema.EliteCategory:
		return EliteColor.Sprint(text)
	case schema.HighCategory:
		return GoodColor.Sprint(text)
	case schema.MediumCategory:
		return MediumColor.Sprint(text)
	default:
		return HighColor.Sprint(text)
	}
}

// ConfidenceLabel returns a colored forecast confidence label.
func ConfidenceLabel(confidence schema.ConfidenceLevel, useColors bool) string {
	text := string(confidence)
	if !useColors {
		return text
	}
	switch confidence {
	case schema.HighConfidence:
		return GoodColor.Sprint(text)
	case schema.MediumConfidence:
		return MediumColor.Sprint(text)
	default:
		return HighColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It writes to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}
