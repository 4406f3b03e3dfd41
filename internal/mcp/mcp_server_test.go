package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/devpulse/internal/contract"
	mcp_internal "github.com/huangsam/devpulse/internal/mcp"
	"github.com/huangsam/devpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBatch = `{
	"window_days": 30,
	"commits": [
		{"sha": "aaa", "author": "alice", "timestamp": "2026-08-03T10:00:00Z",
		 "additions": 100, "deletions": 20, "files_changed": 3, "message": "feat: parser"},
		{"sha": "bbb", "author": "bob", "timestamp": "2026-08-10T10:00:00Z",
		 "additions": 50, "deletions": 10, "files_changed": 2, "message": "fix: crash"}
	],
	"pull_requests": [],
	"deployments": [{"timestamp": "2026-08-11T10:00:00Z", "status": "success"}],
	"incidents": []
}`

func writeTestBatch(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(testBatch), 0o644))
	return path
}

func baseConfig() *contract.Config {
	return &contract.Config{
		WindowDays:  30,
		ResultLimit: 25,
		Precision:   1,
		Analytics:   schema.DefaultAnalyticsConfig(),
	}
}

func TestMCPServerRunReport(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	batchPath := writeTestBatch(t)

	tool := s.GetTool("run_report")
	require.NotNil(t, tool, "Tool run_report should exist")

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "run_report",
			Arguments: map[string]any{
				"input": batchPath,
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var report schema.AnalysisReport
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &report))
	assert.Equal(t, 30, report.WindowDays)
	assert.Equal(t, 2, report.Churn.TotalCommits)
	assert.Len(t, report.Authors, 2)
}

func TestMCPServerRunReportMissingInput(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())

	tool := s.GetTool("run_report")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "run_report",
			Arguments: map[string]any{},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	assert.True(t, res.IsError, "The response should indicate an error state")
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "input batch file is required")
}

func TestMCPServerGetDORA(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	batchPath := writeTestBatch(t)

	tool := s.GetTool("get_dora")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "get_dora",
			Arguments: map[string]any{
				"input":  batchPath,
				"window": 10.0,
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var dora schema.DORAMetrics
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &dora))
	assert.InDelta(t, 0.1, dora.DeploymentFrequencyPerDay, 1e-9)
	assert.NotEmpty(t, dora.Overall)
}

func TestMCPServerGetForecast(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	batchPath := writeTestBatch(t)

	tool := s.GetTool("get_forecast")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "get_forecast",
			Arguments: map[string]any{
				"input":  batchPath,
				"metric": "churn",
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var forecasts []schema.ForecastResult
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &forecasts))
	require.Len(t, forecasts, 1)
	assert.Equal(t, schema.ChurnMetric, forecasts[0].Metric)
}

func TestMCPServerGetForecastUnknownMetric(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig())
	batchPath := writeTestBatch(t)

	tool := s.GetTool("get_forecast")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "get_forecast",
			Arguments: map[string]any{
				"input":  batchPath,
				"metric": "velocity",
			},
		},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "unknown forecast metric")
}
