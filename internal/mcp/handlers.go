package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/polgraph/internal/diagrams"
	"github.com/ziadkadry99/polgraph/internal/engine"
	"github.com/ziadkadry99/polgraph/internal/filter"
	"github.com/ziadkadry99/polgraph/internal/markets"
	"github.com/ziadkadry99/polgraph/internal/panel"
	"github.com/ziadkadry99/polgraph/internal/theme"
)

// handleListEntities lists nodes, optionally for one group.
func (s *Server) handleListEntities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group := request.GetString("group", filter.All)
	if group != filter.All {
		if _, ok := s.data.Group(group); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown group %q; groups are: %s", group, strings.Join(s.data.GroupIDs(), ", "))), nil
		}
	}

	visible := filter.Apply(group, s.data.Nodes, nil)
	if len(visible.Nodes) == 0 {
		return mcp.NewToolResultText("No entities found."), nil
	}

	linked := markets.LinkedNodes(s.data.Markets)
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Entities (%d)\n\n", len(visible.Nodes))
	for _, n := range visible.Nodes {
		fmt.Fprintf(&sb, "- **%s** (`%s`), %s, %s influence", n.Label, n.ID, n.Group, n.Influence)
		if linked[n.ID] {
			sb.WriteString(", has markets")
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetEntity describes one node.
func (s *Server) handleGetEntity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	n, ok := s.data.Node(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No entity with id %q. Use list_entities to see valid ids.", id)), nil
	}

	p, err := panel.NewBuilder().Build(s.data, panel.TabInfo, id, s.theme)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("building entity: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", n.Label)
	fmt.Fprintf(&sb, "Group: %s  \nInfluence: %s\n\n", p.Entity.GroupLabel, n.Influence)
	if n.Description != "" {
		sb.WriteString(n.Description)
		sb.WriteString("\n\n")
	}
	if len(p.Entity.Connections) > 0 {
		sb.WriteString("## Connections\n\n")
		for _, c := range p.Entity.Connections {
			arrow := "<-"
			if c.Outgoing {
				arrow = "->"
			}
			fmt.Fprintf(&sb, "- %s %s: %s (%s)\n", arrow, c.OtherLabel, labelOr(c.Label, c.Type), c.Type)
		}
		sb.WriteString("\n")
	}
	cards := markets.Cards(id, s.data.Markets)
	if len(cards) > 0 {
		sb.WriteString("## Markets\n\n")
		writeCards(&sb, cards)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleRelatedMarkets lists markets for an optional node.
func (s *Server) handleRelatedMarkets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	node := request.GetString("node", "")
	if node != "" {
		if _, ok := s.data.Node(node); !ok {
			return mcp.NewToolResultError(fmt.Sprintf("No entity with id %q.", node)), nil
		}
	}
	cards := markets.Cards(node, s.data.Markets)
	if len(cards) == 0 {
		return mcp.NewToolResultText(panel.NoMarkets), nil
	}
	var sb strings.Builder
	writeCards(&sb, cards)
	return mcp.NewToolResultText(sb.String()), nil
}

// handleRenderGraph returns the SVG for one frame.
func (s *Server) handleRenderGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	th := s.theme
	if name := request.GetString("theme", ""); name != "" {
		th = theme.Parse(name)
	}
	format := request.GetString("format", "svg")
	if format != "svg" && format != "mermaid" {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: must be svg or mermaid", format)), nil
	}
	group := request.GetString("group", filter.All)
	e := engine.New(s.data, engine.Options{Theme: th})
	if err := e.SetFilter(group); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if format == "mermaid" {
		visible := filter.Apply(group, s.data.Nodes, s.data.Edges)
		return mcp.NewToolResultText(diagrams.Flowchart(s.data, visible, th)), nil
	}
	if sel := request.GetString("selected", ""); sel != "" {
		if err := e.Select(sel); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	svg, err := e.View().Scene.SVG()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rendering: %v", err)), nil
	}
	return mcp.NewToolResultText(svg), nil
}

func writeCards(sb *strings.Builder, cards []markets.Card) {
	for _, c := range cards {
		fmt.Fprintf(sb, "- [%s](%s) on %s", c.Title, c.URL, c.Platform)
		switch {
		case c.Probability != nil:
			fmt.Fprintf(sb, ": %g%%", *c.Probability)
			if c.ChangeText != "" {
				fmt.Fprintf(sb, " (%s %s)", c.ChangeText, c.Arrow)
			}
		case len(c.Candidates) > 0:
			parts := make([]string, 0, len(c.Candidates))
			for _, cand := range c.Candidates {
				parts = append(parts, fmt.Sprintf("%s %g%%", cand.Name, cand.Prob))
			}
			fmt.Fprintf(sb, ": %s", strings.Join(parts, ", "))
		}
		if c.Volume != "" {
			fmt.Fprintf(sb, ", %s volume", c.Volume)
		}
		sb.WriteString("\n")
	}
}

func labelOr(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}
