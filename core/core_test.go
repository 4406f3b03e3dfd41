package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMean tests the arithmetic mean helper.
func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "empty slice", values: []float64{}, expected: 0},
		{name: "single value", values: []float64{5}, expected: 5},
		{name: "mixed values", values: []float64{1, 2, 3, 4}, expected: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, mean(tt.values), 0.001)
		})
	}
}

// TestMedian tests the middle-value helper for odd and even lengths.
func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "empty slice", values: nil, expected: 0},
		{name: "odd length", values: []float64{9, 1, 5}, expected: 5},
		{name: "even length", values: []float64{4, 1, 3, 2}, expected: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, median(tt.values), 0.001)
		})
	}
}

// TestSampleStdDev tests the n-1 denominator and the small-input guard.
func TestSampleStdDev(t *testing.T) {
	t.Run("fewer than 2 values", func(t *testing.T) {
		assert.Zero(t, sampleStdDev(nil))
		assert.Zero(t, sampleStdDev([]float64{42}))
	})

	t.Run("known distribution", func(t *testing.T) {
		// Variance of {2,4,4,4,5,5,7,9} with n-1 is 32/7.
		values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
		assert.InDelta(t, 2.138, sampleStdDev(values), 0.001)
	})
}

// TestQuantile tests linear interpolation between closest ranks.
func TestQuantile(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.75, quantile(values, 0.25), 0.001)
	assert.InDelta(t, 2.5, quantile(values, 0.5), 0.001)
	assert.InDelta(t, 3.25, quantile(values, 0.75), 0.001)
	assert.InDelta(t, 1.0, quantile(values, 0), 0.001)
	assert.InDelta(t, 4.0, quantile(values, 1), 0.001)
}

// BenchmarkQuantile benchmarks quartile interpolation on a realistic batch.
func BenchmarkQuantile(b *testing.B) {
	values := make([]float64, 1000)
	for i := range values {
		values[i] = float64((i * 37) % 500)
	}

	for b.Loop() {
		quantile(values, 0.75)
	}
}
