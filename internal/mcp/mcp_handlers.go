package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/devpulse/core"
	"github.com/huangsam/devpulse/internal/contract"
	"github.com/huangsam/devpulse/internal/ingest"
	"github.com/huangsam/devpulse/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// runPipeline loads the batch named by the request and runs the full
// pipeline with the handler's analytics configuration.
func (h *toolHandler) runPipeline(request mcp.CallToolRequest) (*schema.AnalysisReport, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input", ""); p != "" {
		cfg.InputPath = p
	}
	if w := request.GetInt("window", 0); w > 0 {
		cfg.WindowDays = w
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	if cfg.InputPath == "" {
		return nil, fmt.Errorf("an input batch file is required")
	}

	loaded, err := ingest.LoadBatch(cfg.InputPath, cfg.WindowDays)
	if err != nil {
		return nil, err
	}

	report := core.Run(loaded.Batch, &cfg.Analytics)
	report.Warnings = append(loaded.Warnings, report.Warnings...)
	if len(report.Authors) > cfg.ResultLimit {
		report.Authors = report.Authors[:cfg.ResultLimit]
	}
	return report, nil
}

func (h *toolHandler) handleRunReport(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.runPipeline(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDORA(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.runPipeline(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report.DORA, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetForecast(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := h.runPipeline(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	forecasts := report.Forecasts
	if m := request.GetString("metric", ""); m != "" {
		var filtered []schema.ForecastResult
		for _, f := range forecasts {
			if f.Metric == schema.ForecastMetric(m) {
				filtered = append(filtered, f)
			}
		}
		if len(filtered) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("unknown forecast metric: %s", m)), nil
		}
		forecasts = filtered
	}

	jsonData, _ := json.MarshalIndent(forecasts, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
