package interaction

import (
	"github.com/ziadkadry99/polgraph/internal/geom"
	"github.com/ziadkadry99/polgraph/internal/viewport"
)

// Shape is a node's hit circle in model space.
type Shape struct {
	ID     string
	Center geom.Point
	Radius float64
}

// HitTest returns the topmost shape under the client point p. Shapes are in
// draw order, so later shapes win. The comparison happens on the logical
// canvas, where a model circle stays a circle regardless of how the host
// stretches the surface.
func HitTest(shapes []Shape, vp viewport.Viewport, rect geom.Rect, p geom.Point) (string, bool) {
	c, ok := viewport.ScreenToCanvas(p, rect)
	if !ok {
		return "", false
	}
	for i := len(shapes) - 1; i >= 0; i-- {
		s := shapes[i]
		center := geom.Point{
			X: s.Center.X*vp.Zoom + vp.Pan.X,
			Y: s.Center.Y*vp.Zoom + vp.Pan.Y,
		}
		if c.Dist(center) <= s.Radius*vp.Zoom {
			return s.ID, true
		}
	}
	return "", false
}
