// Package highlight derives the active node, its undirected neighbourhood
// and the per-element emphasis the renderer applies.
package highlight

import "github.com/ziadkadry99/polgraph/internal/dataset"

const (
	NodeFull   = 1.0
	NodeDimmed = 0.25

	EdgeBaseline = 0.5
	EdgeFull     = 1.0
	EdgeDimmed   = 0.12

	EdgeWidth       = 1.0
	EdgeWidthActive = 2.0
)

// Active picks the node driving the highlight: hover, then selection.
func Active(hovered, selected string) string {
	if hovered != "" {
		return hovered
	}
	return selected
}

// Neighbors returns the nodes sharing an edge with id, ignoring direction.
func Neighbors(id string, edges []dataset.Edge) map[string]bool {
	out := make(map[string]bool)
	if id == "" {
		return out
	}
	for _, e := range edges {
		if e.Touches(id) {
			out[e.Other(id)] = true
		}
	}
	return out
}

// Highlight is the derived emphasis for one frame.
type Highlight struct {
	Active    string
	Connected map[string]bool
}

// Compute derives the highlight from hover, selection and the edges in
// play.
func Compute(hovered, selected string, edges []dataset.Edge) Highlight {
	active := Active(hovered, selected)
	return Highlight{Active: active, Connected: Neighbors(active, edges)}
}

// Any reports whether a node is active.
func (h Highlight) Any() bool { return h.Active != "" }

// Lit reports whether node id is the active node or one of its neighbours.
func (h Highlight) Lit(id string) bool {
	return !h.Any() || id == h.Active || h.Connected[id]
}

// NodeOpacity is the node's opacity.
func (h Highlight) NodeOpacity(id string) float64 {
	if h.Lit(id) {
		return NodeFull
	}
	return NodeDimmed
}

// Incident reports whether e touches the active node.
func (h Highlight) Incident(e dataset.Edge) bool {
	return h.Any() && e.Touches(h.Active)
}

// EdgeOpacity is the edge's stroke opacity.
func (h Highlight) EdgeOpacity(e dataset.Edge) float64 {
	switch {
	case !h.Any():
		return EdgeBaseline
	case h.Incident(e):
		return EdgeFull
	default:
		return EdgeDimmed
	}
}

// EdgeWidth is the edge's stroke width.
func (h Highlight) EdgeWidth(e dataset.Edge) float64 {
	if h.Incident(e) {
		return EdgeWidthActive
	}
	return EdgeWidth
}

// ShowLabel reports whether e's label is drawn.
func (h Highlight) ShowLabel(e dataset.Edge) bool {
	return h.Incident(e)
}
