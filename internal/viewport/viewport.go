// Package viewport owns the pan/zoom transform between the screen (client
// pixels of the rendering surface) and model space (node coordinates).
//
// The renderer draws model content inside translate(pan) scale(zoom) on a
// fixed logical canvas of LogicalWidth x LogicalHeight, which the host then
// stretches to the element's bounding rect.
package viewport

import "github.com/ziadkadry99/polgraph/internal/geom"

const (
	LogicalWidth  = 800.0
	LogicalHeight = 560.0

	MinZoom = 0.5
	MaxZoom = 2.0
)

// Viewport is the pan offset (in logical canvas units) and zoom factor.
type Viewport struct {
	Pan  geom.Point `json:"pan"`
	Zoom float64    `json:"zoom"`
}

// New returns the identity viewport.
func New() Viewport {
	return Viewport{Zoom: 1}
}

// PanBy adds (dx, dy) to the pan offset. The canvas is unbounded.
func (v *Viewport) PanBy(dx, dy float64) {
	v.Pan.X += dx
	v.Pan.Y += dy
}

// SetPan replaces the pan offset.
func (v *Viewport) SetPan(p geom.Point) {
	v.Pan = p
}

// ZoomBy adds delta to the zoom factor, clamped to [MinZoom, MaxZoom].
func (v *Viewport) ZoomBy(delta float64) {
	v.Zoom = geom.Clamp(v.Zoom+delta, MinZoom, MaxZoom)
}

// Reset restores pan (0,0) and zoom 1.
func (v *Viewport) Reset() {
	*v = New()
}

// ScreenToCanvas maps a client pixel to logical canvas units, ignoring pan
// and zoom. ok is false for a degenerate rect.
func ScreenToCanvas(p geom.Point, rect geom.Rect) (geom.Point, bool) {
	if rect.Degenerate() {
		return geom.Point{}, false
	}
	return geom.Point{
		X: (p.X - rect.Left) * LogicalWidth / rect.Width,
		Y: (p.Y - rect.Top) * LogicalHeight / rect.Height,
	}, true
}

// ScreenToModel maps a client pixel to model space. ok is false when rect
// has no area; callers keep their previous state in that case.
func (v Viewport) ScreenToModel(p geom.Point, rect geom.Rect) (geom.Point, bool) {
	if rect.Degenerate() || v.Zoom == 0 {
		return geom.Point{}, false
	}
	scaleX := LogicalWidth / rect.Width / v.Zoom
	scaleY := LogicalHeight / rect.Height / v.Zoom
	return geom.Point{
		X: (p.X-rect.Left)*scaleX - v.Pan.X/v.Zoom,
		Y: (p.Y-rect.Top)*scaleY - v.Pan.Y/v.Zoom,
	}, true
}

// ModelToScreen is the inverse of ScreenToModel.
func (v Viewport) ModelToScreen(p geom.Point, rect geom.Rect) (geom.Point, bool) {
	if rect.Degenerate() || v.Zoom == 0 {
		return geom.Point{}, false
	}
	return geom.Point{
		X: (p.X*v.Zoom+v.Pan.X)*rect.Width/LogicalWidth + rect.Left,
		Y: (p.Y*v.Zoom+v.Pan.Y)*rect.Height/LogicalHeight + rect.Top,
	}, true
}

// ScreenScale is the number of client pixels per model unit. The smaller
// axis wins when the rect is not proportional to the logical canvas.
func (v Viewport) ScreenScale(rect geom.Rect) float64 {
	if rect.Degenerate() {
		return 0
	}
	sx := rect.Width / LogicalWidth
	sy := rect.Height / LogicalHeight
	if sy < sx {
		sx = sy
	}
	return sx * v.Zoom
}
