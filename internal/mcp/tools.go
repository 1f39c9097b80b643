package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listEntitiesTool defines the list_entities MCP tool.
var listEntitiesTool = mcp.NewTool("list_entities",
	mcp.WithDescription("List the political entities in the graph with their group and influence tier."),
	mcp.WithString("group",
		mcp.Description("Only list entities of this group (default: all groups)"),
	),
)

// getEntityTool defines the get_entity MCP tool.
var getEntityTool = mcp.NewTool("get_entity",
	mcp.WithDescription("Get an entity's description, its connections and the prediction markets linked to it."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Entity id, as returned by list_entities"),
	),
)

// relatedMarketsTool defines the related_markets MCP tool.
var relatedMarketsTool = mcp.NewTool("related_markets",
	mcp.WithDescription("List prediction markets with current odds. With an entity id, only markets linked to it."),
	mcp.WithString("node",
		mcp.Description("Entity id to filter by (default: all markets)"),
	),
)

// renderGraphTool defines the render_graph MCP tool.
var renderGraphTool = mcp.NewTool("render_graph",
	mcp.WithDescription("Render the graph as SVG or a Mermaid flowchart, optionally filtered to one group and with one entity highlighted."),
	mcp.WithString("group",
		mcp.Description("Group to show (default: all)"),
	),
	mcp.WithString("selected",
		mcp.Description("Entity id to highlight together with its direct connections"),
	),
	mcp.WithString("theme",
		mcp.Description("Colour theme"),
		mcp.Enum("dark", "light"),
	),
	mcp.WithString("format",
		mcp.Description("Output format: svg (default) or mermaid, a flowchart for Markdown documents"),
		mcp.Enum("svg", "mermaid"),
	),
)
