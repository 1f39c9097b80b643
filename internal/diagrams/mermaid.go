// Package diagrams exports the visible graph as a Mermaid flowchart, for
// pasting into Markdown documents that cannot embed the interactive view.
package diagrams

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/filter"
	"github.com/ziadkadry99/polgraph/internal/theme"
)

// Flowchart renders visible as a "graph LR" diagram. Nodes are grouped into
// one subgraph per dataset group, in declared group order, and styled with
// the group palette for th. Conflict edges are drawn dotted.
func Flowchart(d *dataset.Dataset, visible filter.Result, th theme.Theme) string {
	var b strings.Builder
	b.WriteString("graph LR\n")

	byGroup := make(map[string][]dataset.Node)
	for _, n := range visible.Nodes {
		byGroup[n.Group] = append(byGroup[n.Group], n)
	}

	for _, g := range d.Groups {
		nodes := byGroup[g.ID]
		if len(nodes) == 0 {
			continue
		}
		label := g.Label
		if label == "" {
			label = g.ID
		}
		fmt.Fprintf(&b, "    subgraph %s[\"%s\"]\n", sanitizeID("group_"+g.ID), escapeMermaid(label))
		for _, n := range nodes {
			fmt.Fprintf(&b, "        %s%s\n", sanitizeID(n.ID), shape(n))
		}
		b.WriteString("    end\n")
	}

	for _, e := range visible.Edges {
		arrow := "-->"
		if e.Type == dataset.EdgeConflict {
			arrow = "-.->"
		}
		if e.Label != "" {
			fmt.Fprintf(&b, "    %s %s|%s| %s\n", sanitizeID(e.Source), arrow, escapeMermaid(e.Label), sanitizeID(e.Target))
		} else {
			fmt.Fprintf(&b, "    %s %s %s\n", sanitizeID(e.Source), arrow, sanitizeID(e.Target))
		}
	}

	for _, g := range d.Groups {
		if len(byGroup[g.ID]) == 0 {
			continue
		}
		p := th.Group(g, true)
		fmt.Fprintf(&b, "    classDef %s fill:%s,stroke:%s,color:%s\n", sanitizeID("g_"+g.ID), p.Fill, p.Border, p.Text)
		ids := make([]string, 0, len(byGroup[g.ID]))
		for _, n := range byGroup[g.ID] {
			ids = append(ids, sanitizeID(n.ID))
		}
		fmt.Fprintf(&b, "    class %s %s\n", strings.Join(ids, ","), sanitizeID("g_"+g.ID))
	}

	return b.String()
}

// shape picks a double circle for critical nodes, a stadium otherwise.
func shape(n dataset.Node) string {
	label := escapeMermaid(n.Label)
	if n.Influence == dataset.InfluenceCritical {
		return "(((\"" + label + "\")))"
	}
	return "([\"" + label + "\"])"
}

// sanitizeID converts a string into a safe mermaid node ID.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		".", "_",
		"-", "_",
		" ", "_",
		":", "_",
	)
	return replacer.Replace(s)
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "|", "#124;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	return s
}
