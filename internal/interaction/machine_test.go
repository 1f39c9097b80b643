package interaction

import (
	"math"
	"testing"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/geom"
	"github.com/ziadkadry99/polgraph/internal/layout"
	"github.com/ziadkadry99/polgraph/internal/viewport"
)

// identity maps client pixels 1:1 onto the logical canvas.
var identity = geom.Rect{Width: viewport.LogicalWidth, Height: viewport.LogicalHeight}

type fixture struct {
	vp     *viewport.Viewport
	layout *layout.Layout
	win    *Window
	m      *Machine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	nodes := []dataset.Node{
		{ID: "a", Position: geom.Point{X: 100, Y: 100}},
		{ID: "b", Position: geom.Point{X: 300, Y: 100}},
	}
	vp := viewport.New()
	l := layout.New(nodes, geom.CanvasBounds)
	win := NewWindow()
	shapes := func() []Shape {
		var out []Shape
		for _, n := range nodes {
			p, _ := l.Get(n.ID)
			out = append(out, Shape{ID: n.ID, Center: p, Radius: 20})
		}
		return out
	}
	return &fixture{vp: &vp, layout: l, win: win, m: New(&vp, l, win, shapes)}
}

func at(x, y float64) PointerEvent {
	return PointerEvent{Client: geom.Point{X: x, Y: y}, Rect: identity}
}

func TestDragClampsToCanvas(t *testing.T) {
	f := newFixture(t)

	f.m.PointerDown(at(105, 95))
	st := f.m.State()
	if st.Mode != DraggingNode || st.NodeID != "a" {
		t.Fatalf("state = %+v, want dragging a", st)
	}
	if st.Selected != "a" {
		t.Errorf("selected = %q, want a", st.Selected)
	}
	if f.win.Len() != 1 {
		t.Errorf("listeners = %d, want 1", f.win.Len())
	}

	f.m.PointerMove(at(900, 600))
	if p, _ := f.layout.Get("a"); p != (geom.Point{X: 740, Y: 520}) {
		t.Errorf("after (900,600): %v", p)
	}
	f.m.PointerMove(at(-50, -50))
	if p, _ := f.layout.Get("a"); p != (geom.Point{X: 60, Y: 40}) {
		t.Errorf("after (-50,-50): %v", p)
	}
	if p, _ := f.layout.Get("b"); p != (geom.Point{X: 300, Y: 100}) {
		t.Errorf("b moved to %v", p)
	}
	if f.vp.Pan != (geom.Point{}) {
		t.Errorf("drag changed pan: %v", f.vp.Pan)
	}

	f.m.PointerUp(at(-50, -50))
	if f.m.State().Mode != Idle {
		t.Errorf("mode = %v after up", f.m.State().Mode)
	}
	if f.win.Len() != 0 {
		t.Errorf("listeners = %d after up, want 0", f.win.Len())
	}
	if f.m.State().Selected != "a" {
		t.Error("release should keep the selection")
	}
}

func TestDragUnderPanAndZoom(t *testing.T) {
	f := newFixture(t)
	f.vp.Zoom = 2
	f.vp.Pan = geom.Point{X: 50, Y: -30}

	// a sits at canvas (100*2+50, 100*2-30) = (250, 170).
	f.m.PointerDown(at(250, 170))
	if f.m.State().NodeID != "a" {
		t.Fatalf("expected to grab a, state %+v", f.m.State())
	}
	f.m.PointerMove(at(450, 370))
	got, _ := f.layout.Get("a")
	if math.Abs(got.X-200) > 1e-9 || math.Abs(got.Y-200) > 1e-9 {
		t.Errorf("a = %v, want (200,200)", got)
	}
}

func TestPanBackground(t *testing.T) {
	f := newFixture(t)
	f.m.Select("b")
	f.vp.Pan = geom.Point{X: 10, Y: 10}

	f.m.PointerDown(at(500, 400))
	st := f.m.State()
	if st.Mode != PanningBackground {
		t.Fatalf("mode = %v, want panning", st.Mode)
	}
	if st.Anchor != (geom.Point{X: 490, Y: 390}) {
		t.Errorf("anchor = %v", st.Anchor)
	}

	f.m.PointerMove(at(550, 380))
	if f.vp.Pan != (geom.Point{X: 60, Y: -10}) {
		t.Errorf("pan = %v, want (60,-10)", f.vp.Pan)
	}
	f.m.PointerUp(at(550, 380))

	if f.m.State().Mode != Idle || f.win.Len() != 0 {
		t.Errorf("gesture not torn down: %+v, %d listeners", f.m.State(), f.win.Len())
	}
	if f.m.State().Selected != "b" {
		t.Error("panning must not change the selection")
	}
	if p, _ := f.layout.Get("a"); p != (geom.Point{X: 100, Y: 100}) {
		t.Errorf("panning moved a node: %v", p)
	}
}

func TestBackgroundClickDeselects(t *testing.T) {
	f := newFixture(t)
	f.m.Select("a")
	f.m.PointerDown(at(500, 400))
	f.m.PointerUp(at(501, 400))
	if f.m.State().Selected != "" {
		t.Errorf("selected = %q, want cleared", f.m.State().Selected)
	}
}

func TestLeaveEndsGesture(t *testing.T) {
	f := newFixture(t)
	f.m.PointerDown(at(100, 100))
	f.m.PointerEnter("a")
	f.m.PointerLeave()

	st := f.m.State()
	if st.Mode != Idle || st.Hovered != "" {
		t.Errorf("state after leave = %+v", st)
	}
	if f.win.Len() != 0 {
		t.Errorf("listeners = %d, want 0", f.win.Len())
	}

	// Moves after the gesture ended reach nobody.
	f.win.DispatchMove(at(600, 300))
	if p, _ := f.layout.Get("a"); p != (geom.Point{X: 100, Y: 100}) {
		t.Errorf("a moved after leave: %v", p)
	}
}

func TestReleaseOutsideSurface(t *testing.T) {
	f := newFixture(t)
	f.m.PointerDown(at(100, 100))
	// The pointer has left the element but the window still sees it.
	f.m.PointerMove(at(2000, -300))
	f.m.PointerUp(at(2000, -300))
	if f.m.State().Mode != Idle || f.win.Len() != 0 {
		t.Errorf("stuck gesture: %+v", f.m.State())
	}
	if p, _ := f.layout.Get("a"); p != (geom.Point{X: 740, Y: 40}) {
		t.Errorf("a = %v, want (740,40)", p)
	}
}

func TestDegenerateRectSkipped(t *testing.T) {
	f := newFixture(t)
	flat := PointerEvent{Client: geom.Point{X: 100, Y: 100}, Rect: geom.Rect{Width: 0, Height: 560}}

	f.m.PointerDown(flat)
	if f.m.State().Mode != Idle || f.win.Len() != 0 {
		t.Fatalf("press on degenerate rect started a gesture: %+v", f.m.State())
	}

	f.m.PointerDown(at(100, 100))
	f.m.PointerMove(PointerEvent{Client: geom.Point{X: 400, Y: 400}, Rect: geom.Rect{Width: 800}})
	if p, _ := f.layout.Get("a"); p != (geom.Point{X: 100, Y: 100}) {
		t.Errorf("degenerate move changed position: %v", p)
	}
	if f.m.State().Mode != DraggingNode {
		t.Errorf("degenerate move ended the drag")
	}
}

func TestSecondPressIgnoredDuringGesture(t *testing.T) {
	f := newFixture(t)
	f.m.PointerDown(at(100, 100))
	f.m.PointerDown(at(300, 100))
	if st := f.m.State(); st.NodeID != "a" || st.Selected != "a" {
		t.Errorf("state = %+v", st)
	}
	if f.win.Len() != 1 {
		t.Errorf("listeners = %d, want 1", f.win.Len())
	}
}

func TestWheel(t *testing.T) {
	f := newFixture(t)
	prevented := 0
	prevent := func() { prevented++ }

	f.m.Wheel(WheelEvent{DeltaY: 120, PreventDefault: prevent})
	if math.Abs(f.vp.Zoom-0.9) > 1e-9 {
		t.Errorf("zoom = %v, want 0.9", f.vp.Zoom)
	}
	f.m.Wheel(WheelEvent{DeltaY: -120, PreventDefault: prevent})
	f.m.Wheel(WheelEvent{DeltaY: -120, PreventDefault: prevent})
	if math.Abs(f.vp.Zoom-1.1) > 1e-9 {
		t.Errorf("zoom = %v, want 1.1", f.vp.Zoom)
	}
	if prevented != 3 {
		t.Errorf("PreventDefault called %d times, want 3", prevented)
	}

	for i := 0; i < 30; i++ {
		f.m.Wheel(WheelEvent{DeltaY: -1})
	}
	if f.vp.Zoom != viewport.MaxZoom {
		t.Errorf("zoom = %v, want max", f.vp.Zoom)
	}
	for i := 0; i < 30; i++ {
		f.m.Wheel(WheelEvent{DeltaY: 1})
	}
	if f.vp.Zoom != viewport.MinZoom {
		t.Errorf("zoom = %v, want min", f.vp.Zoom)
	}
}

func TestHoverIndependentOfGesture(t *testing.T) {
	f := newFixture(t)
	f.m.PointerDown(at(100, 100))
	f.m.PointerEnter("b")
	st := f.m.State()
	if st.Mode != DraggingNode || st.Hovered != "b" || st.Selected != "a" {
		t.Errorf("state = %+v", st)
	}
	f.m.LeaveNode("a")
	if f.m.State().Hovered != "b" {
		t.Error("leaving a non-hovered node cleared hover")
	}
	f.m.LeaveNode("b")
	if f.m.State().Hovered != "" {
		t.Error("hover not cleared")
	}
}

func TestTrack(t *testing.T) {
	f := newFixture(t)
	if !f.m.Track(at(300, 110)) || f.m.State().Hovered != "b" {
		t.Fatalf("expected hover b, got %+v", f.m.State())
	}
	if f.m.Track(at(305, 100)) {
		t.Error("staying on b should not report a change")
	}
	if !f.m.Track(at(600, 400)) || f.m.State().Hovered != "" {
		t.Errorf("expected hover cleared, got %+v", f.m.State())
	}
	if f.m.Track(PointerEvent{Client: geom.Point{X: 300, Y: 100}}) {
		t.Error("degenerate rect should not change hover")
	}
}

func TestHitTestTopmostWins(t *testing.T) {
	shapes := []Shape{
		{ID: "under", Center: geom.Point{X: 100, Y: 100}, Radius: 30},
		{ID: "over", Center: geom.Point{X: 110, Y: 100}, Radius: 20},
	}
	vp := viewport.New()
	if id, _ := HitTest(shapes, vp, identity, geom.Point{X: 105, Y: 100}); id != "over" {
		t.Errorf("hit = %q, want over", id)
	}
	if id, _ := HitTest(shapes, vp, identity, geom.Point{X: 75, Y: 100}); id != "under" {
		t.Errorf("hit = %q, want under", id)
	}
	if _, ok := HitTest(shapes, vp, identity, geom.Point{X: 400, Y: 400}); ok {
		t.Error("background should not hit")
	}
}

func TestHitTestScalesWithZoomAndRect(t *testing.T) {
	shapes := []Shape{{ID: "a", Center: geom.Point{X: 100, Y: 100}, Radius: 20}}
	vp := viewport.Viewport{Zoom: 2}
	// Half-size surface: canvas (200,200) is client (100,100); radius 40 canvas = 20 client.
	rect := geom.Rect{Width: 400, Height: 280}
	if _, ok := HitTest(shapes, vp, rect, geom.Point{X: 118, Y: 100}); !ok {
		t.Error("expected hit inside scaled radius")
	}
	if _, ok := HitTest(shapes, vp, rect, geom.Point{X: 122, Y: 100}); ok {
		t.Error("expected miss outside scaled radius")
	}
}
