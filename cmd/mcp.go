package cmd

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/polgraph/internal/mcp"
	"github.com/ziadkadry99/polgraph/internal/theme"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to list entities, describe them, look up related prediction markets and render the graph.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cfg)

		d, err := loadDataset(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		logger.Info("polgraph MCP server started on stdio", "dataset", d.Title, "nodes", len(d.Nodes))

		srv := mcpserver.NewServer(d, theme.Parse(cfg.Theme))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
