// Package layout keeps the per-instance node positions. The dataset's
// declared positions are copied in at construction and only drag operations
// change them afterwards.
package layout

import (
	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/geom"
)

// Layout is an arena of positions indexed by node id.
type Layout struct {
	bounds   geom.Bounds
	index    map[string]int
	declared []geom.Point
	current  []geom.Point
}

// New copies the declared positions of nodes. Declared positions outside
// bounds are kept as-is; only Place clamps.
func New(nodes []dataset.Node, bounds geom.Bounds) *Layout {
	l := &Layout{
		bounds:   bounds,
		index:    make(map[string]int, len(nodes)),
		declared: make([]geom.Point, len(nodes)),
		current:  make([]geom.Point, len(nodes)),
	}
	for i, n := range nodes {
		l.index[n.ID] = i
		l.declared[i] = n.Position
		l.current[i] = n.Position
	}
	return l
}

// Bounds returns the clamping box.
func (l *Layout) Bounds() geom.Bounds { return l.bounds }

// Get returns the current position of id.
func (l *Layout) Get(id string) (geom.Point, bool) {
	i, ok := l.index[id]
	if !ok {
		return geom.Point{}, false
	}
	return l.current[i], true
}

// Place moves id to p clamped into bounds and returns the stored position.
func (l *Layout) Place(id string, p geom.Point) (geom.Point, bool) {
	i, ok := l.index[id]
	if !ok {
		return geom.Point{}, false
	}
	l.current[i] = l.bounds.Clamp(p)
	return l.current[i], true
}

// Reset restores every node to its declared position.
func (l *Layout) Reset() {
	copy(l.current, l.declared)
}

// Moved reports whether any node differs from its declared position.
func (l *Layout) Moved() bool {
	for i := range l.current {
		if l.current[i] != l.declared[i] {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of all current positions.
func (l *Layout) Snapshot() map[string]geom.Point {
	out := make(map[string]geom.Point, len(l.index))
	for id, i := range l.index {
		out[id] = l.current[i]
	}
	return out
}
