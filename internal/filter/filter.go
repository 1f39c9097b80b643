// Package filter derives the visible subset of the graph from the active
// group selector.
package filter

import "github.com/ziadkadry99/polgraph/internal/dataset"

// All is the selector that keeps every group.
const All = "all"

// Result is the visible subset. Order follows the input.
type Result struct {
	Nodes []dataset.Node
	Edges []dataset.Edge
}

// NodeIDs returns the set of visible node ids.
func (r Result) NodeIDs() map[string]bool {
	ids := make(map[string]bool, len(r.Nodes))
	for _, n := range r.Nodes {
		ids[n.ID] = true
	}
	return ids
}

// Apply keeps the nodes of group (or all of them for All) and the edges
// whose endpoints both survived. Edges with a missing endpoint are dropped
// here as well, so dangling references never reach the renderer.
func Apply(group string, nodes []dataset.Node, edges []dataset.Edge) Result {
	var res Result
	keep := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if group == All || n.Group == group {
			res.Nodes = append(res.Nodes, n)
			keep[n.ID] = true
		}
	}
	for _, e := range edges {
		if keep[e.Source] && keep[e.Target] {
			res.Edges = append(res.Edges, e)
		}
	}
	return res
}
