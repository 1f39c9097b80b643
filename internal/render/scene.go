// Package render turns the derived view (visible subset, highlight, badge
// set, positions and viewport) into a drawable scene and writes it as SVG.
package render

import (
	"math"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/filter"
	"github.com/ziadkadry99/polgraph/internal/geom"
	"github.com/ziadkadry99/polgraph/internal/highlight"
	"github.com/ziadkadry99/polgraph/internal/theme"
	"github.com/ziadkadry99/polgraph/internal/viewport"
)

const (
	// ActiveScale enlarges the active node.
	ActiveScale = 1.08

	curveFactor  = 0.15
	labelLift    = 6.0
	glowPadding  = 8.0
	ringInset    = 4.0
	badgeInset   = 4.0
	badgeRadius  = 5.0
	labelSpacing = 14.0
)

// Radius is a node's circle radius for its influence tier.
func Radius(inf dataset.Influence) float64 {
	switch inf {
	case dataset.InfluenceCritical:
		return 32
	case dataset.InfluenceHigh:
		return 26
	default:
		return 20
	}
}

// Control returns the quadratic control point for an edge from a to b.
// The offset is a fraction of the shorter axis span; its sign follows dy
// for x and dx for y so curvature alternates deterministically.
func Control(a, b geom.Point) geom.Point {
	mid := geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	dx := b.X - a.X
	dy := b.Y - a.Y
	curve := math.Min(math.Abs(dx), math.Abs(dy)) * curveFactor

	c := mid
	if dy > 0 {
		c.X += curve
	} else {
		c.X -= curve
	}
	if dx > 0 {
		c.Y -= curve
	} else {
		c.Y += curve
	}
	return c
}

// Positions resolves a node's current position.
type Positions interface {
	Get(id string) (geom.Point, bool)
}

// Input is everything Build needs for one frame.
type Input struct {
	Dataset   *dataset.Dataset
	Visible   filter.Result
	Positions Positions
	Highlight highlight.Highlight
	Badges    map[string]bool
	Viewport  viewport.Viewport
	Theme     theme.Theme
}

// Edge is a drawable edge.
type Edge struct {
	Source    string     `json:"source"`
	Target    string     `json:"target"`
	Type      string     `json:"type"`
	Label     string     `json:"label,omitempty"`
	From      geom.Point `json:"from"`
	Control   geom.Point `json:"control"`
	To        geom.Point `json:"to"`
	Color     string     `json:"color"`
	Width     float64    `json:"width"`
	Opacity   float64    `json:"opacity"`
	Dashed    bool       `json:"dashed"`
	ShowLabel bool       `json:"showLabel"`
	LabelAt   geom.Point `json:"labelAt"`
}

// Node is a drawable node.
type Node struct {
	ID           string            `json:"id"`
	Label        string            `json:"label"`
	Group        string            `json:"group"`
	Influence    dataset.Influence `json:"influence"`
	Center       geom.Point        `json:"center"`
	Radius       float64           `json:"radius"`
	Scale        float64           `json:"scale"`
	Fill         string            `json:"fill"`
	Border       string            `json:"border"`
	BorderWidth  float64           `json:"borderWidth"`
	TextColor    string            `json:"textColor"`
	Opacity      float64           `json:"opacity"`
	Active       bool              `json:"active"`
	CriticalRing bool              `json:"criticalRing"`
	Badge        bool              `json:"badge"`
}

// LegendEntry describes one group swatch.
type LegendEntry struct {
	Group   string          `json:"group"`
	Label   string          `json:"label"`
	Palette dataset.Palette `json:"palette"`
}

// Scene is the complete draw list for a frame. Edges are drawn before
// nodes; both keep dataset order.
type Scene struct {
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	Theme    string            `json:"theme"`
	Colors   theme.Colors      `json:"-"`
	Viewport viewport.Viewport `json:"viewport"`
	Active   string            `json:"active,omitempty"`
	Edges    []Edge            `json:"edges"`
	Nodes    []Node            `json:"nodes"`
	Legend   []LegendEntry     `json:"legend"`
}

// Build computes the scene. Edges whose endpoints have no position are
// skipped.
func Build(in Input) Scene {
	colors := in.Theme.Colors()
	s := Scene{
		Width:    viewport.LogicalWidth,
		Height:   viewport.LogicalHeight,
		Theme:    in.Theme.Name(),
		Colors:   colors,
		Viewport: in.Viewport,
		Active:   in.Highlight.Active,
		Edges:    make([]Edge, 0, len(in.Visible.Edges)),
		Nodes:    make([]Node, 0, len(in.Visible.Nodes)),
	}

	var edgeColors map[string]string
	if in.Dataset != nil {
		edgeColors = in.Dataset.EdgeColors
	}

	for _, e := range in.Visible.Edges {
		from, ok1 := in.Positions.Get(e.Source)
		to, ok2 := in.Positions.Get(e.Target)
		if !ok1 || !ok2 {
			continue
		}
		c := Control(from, to)
		s.Edges = append(s.Edges, Edge{
			Source:    e.Source,
			Target:    e.Target,
			Type:      e.Type,
			Label:     e.Label,
			From:      from,
			Control:   c,
			To:        to,
			Color:     in.Theme.EdgeColor(edgeColors, e.Type),
			Width:     in.Highlight.EdgeWidth(e),
			Opacity:   in.Highlight.EdgeOpacity(e),
			Dashed:    e.Type == dataset.EdgeConflict,
			ShowLabel: in.Highlight.ShowLabel(e) && e.Label != "",
			LabelAt:   geom.Point{X: c.X, Y: c.Y - labelLift},
		})
	}

	for _, n := range in.Visible.Nodes {
		pos, ok := in.Positions.Get(n.ID)
		if !ok {
			pos = n.Position
		}
		var pal dataset.Palette
		if in.Dataset != nil {
			pal = in.Theme.Group(in.Dataset.Group(n.Group))
		} else {
			pal = in.Theme.Group(dataset.Group{}, false)
		}
		active := n.ID == in.Highlight.Active
		node := Node{
			ID:           n.ID,
			Label:        n.Label,
			Group:        n.Group,
			Influence:    n.Influence,
			Center:       pos,
			Radius:       Radius(n.Influence),
			Scale:        1,
			Fill:         pal.Fill,
			Border:       pal.Border,
			BorderWidth:  1,
			TextColor:    pal.Text,
			Opacity:      in.Highlight.NodeOpacity(n.ID),
			Active:       active,
			CriticalRing: n.Influence == dataset.InfluenceCritical,
			Badge:        in.Badges[n.ID],
		}
		if active {
			node.Scale = ActiveScale
			node.Border = pal.Text
			node.BorderWidth = 2
		}
		s.Nodes = append(s.Nodes, node)
	}

	if in.Dataset != nil {
		for _, g := range in.Dataset.Groups {
			label := g.Label
			if label == "" {
				label = g.ID
			}
			s.Legend = append(s.Legend, LegendEntry{Group: g.ID, Label: label, Palette: in.Theme.Group(g, true)})
		}
	}
	return s
}

// Node returns the drawn node with id.
func (s Scene) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the drawn edge from source to target.
func (s Scene) Edge(source, target string) (Edge, bool) {
	for _, e := range s.Edges {
		if e.Source == source && e.Target == target {
			return e, true
		}
	}
	return Edge{}, false
}
