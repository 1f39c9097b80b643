package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/theme"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the graph to assistants.
type Server struct {
	data  *dataset.Dataset
	theme theme.Theme
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server over d.
func NewServer(d *dataset.Dataset, th theme.Theme) *Server {
	s := &Server{data: d, theme: th}

	s.mcp = server.NewMCPServer(
		"polgraph",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listEntitiesTool, s.handleListEntities)
	s.mcp.AddTool(getEntityTool, s.handleGetEntity)
	s.mcp.AddTool(relatedMarketsTool, s.handleRelatedMarkets)
	s.mcp.AddTool(renderGraphTool, s.handleRenderGraph)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
