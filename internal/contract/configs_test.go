package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/devpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(t *testing.T) *ConfigRawInput {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	return &ConfigRawInput{
		InputPathStr: path,
		Window:       30,
		Limit:        25,
		Precision:    1,
		Output:       "text",
		StoreBackend: "none",
	}
}

// TestProcessAndValidateDefaults verifies the happy path with defaults.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := validInput(t)

	require.NoError(t, ProcessAndValidate(cfg, input, true))
	assert.Equal(t, 30, cfg.WindowDays)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)
	assert.Equal(t, schema.DefaultChurnThreshold, cfg.Analytics.ChurnThreshold)
}

// TestProcessAndValidateErrors covers validation failures.
func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{name: "missing batch file", mutate: func(in *ConfigRawInput) { in.InputPathStr = "" }},
		{name: "unreadable batch file", mutate: func(in *ConfigRawInput) { in.InputPathStr = "/no/such/file.json" }},
		{name: "zero limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }},
		{name: "excessive limit", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{name: "bad output mode", mutate: func(in *ConfigRawInput) { in.Output = "xml" }},
		{name: "bad backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(t)
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input, true))
		})
	}
}

// TestProcessAndValidateOptionalInput verifies commands that run without a
// batch file skip the existence check.
func TestProcessAndValidateOptionalInput(t *testing.T) {
	input := validInput(t)
	input.InputPathStr = ""

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, false))
	assert.Empty(t, cfg.InputPath)
}

// TestProcessAndValidateClamps verifies precision and window clamping.
func TestProcessAndValidateClamps(t *testing.T) {
	input := validInput(t)
	input.Precision = 9
	input.Window = -5

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, true))
	assert.Equal(t, 2, cfg.Precision)
	// Negative windows collapse to 0, deferring to the batch file.
	assert.Equal(t, 0, cfg.WindowDays)
}

// TestResolveAnalyticsOverrides verifies config-file threshold overrides
// are merged onto the defaults.
func TestResolveAnalyticsOverrides(t *testing.T) {
	churn := 500
	ratio := 0.9
	noReview := 3
	elite := 12.0
	raw := AnalyticsRawInput{
		ChurnThreshold:         &churn,
		DeletionRatioThreshold: &ratio,
		Weights:                &RiskWeightsRaw{NoReview: &noReview},
		Bands: &DORABandsRaw{
			LeadTimeHours: &DORACutoffsRaw{Elite: &elite},
		},
	}

	resolved := resolveAnalytics(&raw)
	assert.Equal(t, 500, resolved.ChurnThreshold)
	assert.InDelta(t, 0.9, resolved.DeletionRatioThreshold, 0.001)
	assert.Equal(t, 3, resolved.Weights.NoReview)
	assert.InDelta(t, 12.0, resolved.Bands.LeadTimeHours.Elite, 0.001)

	// Untouched fields keep the published defaults.
	assert.Equal(t, schema.DefaultMassiveChurnThreshold, resolved.MassiveChurnThreshold)
	assert.Equal(t, 3, resolved.Weights.HighChurn)
	assert.InDelta(t, 168.0, resolved.Bands.LeadTimeHours.High, 0.001)
}

// TestParseYesNo covers flag value parsing with fallbacks.
func TestParseYesNo(t *testing.T) {
	assert.True(t, parseYesNo("yes", false))
	assert.True(t, parseYesNo("ON", false))
	assert.False(t, parseYesNo("no", true))
	assert.True(t, parseYesNo("", true))
	assert.False(t, parseYesNo("maybe", false))
}

// TestTierLabelPlain verifies labels pass through uncolored when disabled.
func TestTierLabelPlain(t *testing.T) {
	assert.Equal(t, "high", TierLabel(schema.HighRisk, false))
	assert.Equal(t, "elite", CategoryLabel(schema.EliteCategory, false))
	assert.Equal(t, "medium", ConfidenceLabel(schema.MediumConfidence, false))
}
