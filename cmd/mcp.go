package cmd

import (
	"github.com/eastside-atlas/velocity/internal/framestore"
	"github.com/eastside-atlas/velocity/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Velocity MCP server",
	Long:  `Launch an MCP server over stdio that lets AI agents query displacement data via standard tools.`,
	// Setup never prints, since stdio carries the protocol.
	PreRunE: serviceSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, atlas, framestore.Manager)
	},
}
