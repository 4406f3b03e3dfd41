// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/devpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Devpulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Devpulse Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: run_report ---
	s.AddTool(mcp.NewTool("run_report",
		mcp.WithDescription("Run the full analytics pipeline on a harvester batch file: churn, risk, DORA and forecasts."),
		mcp.WithString("input", mcp.Description("Path to the batch JSON file (defaults to the configured input).")),
		mcp.WithNumber("window", mcp.Description("Observation window in days (overrides the batch's own window).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of authors and assessments returned.")),
	), h.handleRunReport)

	// --- 2. Tool: get_dora ---
	s.AddTool(mcp.NewTool("get_dora",
		mcp.WithDescription("Compute the four DORA key metrics with performance bands for a harvester batch file."),
		mcp.WithString("input", mcp.Description("Path to the batch JSON file (defaults to the configured input).")),
		mcp.WithNumber("window", mcp.Description("Observation window in days.")),
	), h.handleGetDORA)

	// --- 3. Tool: get_forecast ---
	s.AddTool(mcp.NewTool("get_forecast",
		mcp.WithDescription("Forecast next-period weekly churn or cycle time from a harvester batch file."),
		mcp.WithString("input", mcp.Description("Path to the batch JSON file (defaults to the configured input).")),
		mcp.WithString("metric", mcp.Description("Which forecast to return (churn or cycle_time). Defaults to both."), mcp.Enum("churn", "cycle_time")),
		mcp.WithNumber("window", mcp.Description("Observation window in days.")),
	), h.handleGetForecast)

	return s
}

// StartMCPServer starts the Devpulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
