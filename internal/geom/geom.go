// Package geom holds the small amount of plane geometry shared by the
// viewport, layout and render packages.
package geom

import "math"

// Point is a position in either model or screen space. Which space is
// implied by the caller.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Rect is the on-screen bounding rectangle of the rendering surface, as
// reported by the host at event time.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Degenerate reports whether the rect has no area (element not laid out yet).
func (r Rect) Degenerate() bool {
	return !(r.Width > 0) || !(r.Height > 0)
}

// Bounds is an axis-aligned box used to clamp positions.
type Bounds struct {
	Min Point
	Max Point
}

// CanvasBounds is the region node centres are kept inside while dragging.
var CanvasBounds = Bounds{
	Min: Point{X: 60, Y: 40},
	Max: Point{X: 740, Y: 520},
}

// Clamp returns p moved to the nearest point inside b.
func (b Bounds) Clamp(p Point) Point {
	return Point{
		X: Clamp(p.X, b.Min.X, b.Max.X),
		Y: Clamp(p.Y, b.Min.Y, b.Max.Y),
	}
}

// Contains reports whether p lies inside b (edges included).
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
