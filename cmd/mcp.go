package cmd

import (
	"github.com/huangsam/devpulse/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the devpulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to run velocity analysis via standard tools.`,
	PreRunE: func(_ *cobra.Command, args []string) error {
		// Batch files arrive per tool call, so none is required here.
		// Setup stays quiet to avoid polluting the stdio protocol stream.
		return sharedSetup(args, false)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}
