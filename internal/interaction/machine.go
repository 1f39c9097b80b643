// Package interaction turns pointer and wheel events into node drags,
// background pans, zoom steps and hover/selection changes.
package interaction

import (
	"github.com/ziadkadry99/polgraph/internal/geom"
	"github.com/ziadkadry99/polgraph/internal/layout"
	"github.com/ziadkadry99/polgraph/internal/viewport"
)

// Mode is the active gesture. Exactly one is active at a time.
type Mode int

const (
	Idle Mode = iota
	DraggingNode
	PanningBackground
)

func (m Mode) String() string {
	switch m {
	case DraggingNode:
		return "dragging"
	case PanningBackground:
		return "panning"
	default:
		return "idle"
	}
}

const (
	// ZoomStep is the zoom change per wheel notch.
	ZoomStep = 0.1

	// clickSlop is how far (canvas units) a background press may travel
	// and still count as a click.
	clickSlop = 3.0
)

// PointerEvent is a pointer position in client pixels together with the
// surface's bounding rect at the time of the event.
type PointerEvent struct {
	Client geom.Point `json:"client"`
	Rect   geom.Rect  `json:"rect"`
}

// WheelEvent is a wheel notch. PreventDefault, when set, is invoked
// synchronously before any state changes.
type WheelEvent struct {
	DeltaY         float64
	PreventDefault func()
}

// State is a read-only view of the machine.
type State struct {
	Mode     Mode       `json:"mode"`
	NodeID   string     `json:"nodeId,omitempty"`
	Anchor   geom.Point `json:"anchor"`
	Hovered  string     `json:"hovered,omitempty"`
	Selected string     `json:"selected,omitempty"`
}

// ShapeSource returns the currently hittable nodes in draw order.
type ShapeSource func() []Shape

// Machine is the interaction state machine for one mounted graph.
type Machine struct {
	vp     *viewport.Viewport
	layout *layout.Layout
	win    *Window
	shapes ShapeSource

	state State

	pressAt     geom.Point
	travelled   bool
	unsubscribe func()
}

// New wires a machine to the viewport and layout it mutates and the window
// it registers gesture listeners on.
func New(vp *viewport.Viewport, l *layout.Layout, win *Window, shapes ShapeSource) *Machine {
	return &Machine{vp: vp, layout: l, win: win, shapes: shapes}
}

// State returns a copy of the current state.
func (m *Machine) State() State { return m.state }

// Window returns the listener registry gestures subscribe to.
func (m *Machine) Window() *Window { return m.win }

// PointerDown starts a drag when the press lands on a node, otherwise a
// background pan. A press while a gesture is active is ignored. A
// degenerate rect skips the event.
func (m *Machine) PointerDown(ev PointerEvent) {
	if m.state.Mode != Idle {
		return
	}
	canvas, ok := viewport.ScreenToCanvas(ev.Client, ev.Rect)
	if !ok {
		return
	}

	if id, hit := HitTest(m.shapes(), *m.vp, ev.Rect, ev.Client); hit {
		m.state.Mode = DraggingNode
		m.state.NodeID = id
		m.state.Selected = id
	} else {
		m.state.Mode = PanningBackground
		m.state.Anchor = canvas.Sub(m.vp.Pan)
	}
	m.pressAt = canvas
	m.travelled = false
	m.unsubscribe = m.win.Subscribe(Listener{Move: m.onMove, Up: m.onUp})
}

// PointerMove delivers a pointer move at window level and then refreshes
// hover. Hover never changes the active gesture.
func (m *Machine) PointerMove(ev PointerEvent) {
	m.win.DispatchMove(ev)
	m.Track(ev)
}

// PointerUp delivers a pointer release at window level.
func (m *Machine) PointerUp(ev PointerEvent) {
	m.win.DispatchUp(ev)
}

// PointerLeave handles the pointer leaving the whole surface: any gesture
// ends and hover clears.
func (m *Machine) PointerLeave() {
	m.end()
	m.state.Hovered = ""
}

// PointerEnter sets hover to id.
func (m *Machine) PointerEnter(id string) {
	m.state.Hovered = id
}

// LeaveNode clears hover if it is still on id.
func (m *Machine) LeaveNode(id string) {
	if m.state.Hovered == id {
		m.state.Hovered = ""
	}
}

// Track derives enter/leave transitions from a raw pointer position. It
// reports whether hover changed.
func (m *Machine) Track(ev PointerEvent) bool {
	if ev.Rect.Degenerate() {
		return false
	}
	id, _ := HitTest(m.shapes(), *m.vp, ev.Rect, ev.Client)
	if id == m.state.Hovered {
		return false
	}
	if m.state.Hovered != "" {
		m.LeaveNode(m.state.Hovered)
	}
	if id != "" {
		m.PointerEnter(id)
	}
	return true
}

// Wheel zooms by one step: out when DeltaY is positive, in otherwise.
func (m *Machine) Wheel(ev WheelEvent) {
	if ev.PreventDefault != nil {
		ev.PreventDefault()
	}
	if ev.DeltaY > 0 {
		m.vp.ZoomBy(-ZoomStep)
	} else {
		m.vp.ZoomBy(ZoomStep)
	}
}

// Select marks id as selected.
func (m *Machine) Select(id string) {
	m.state.Selected = id
}

// ClearSelection deselects.
func (m *Machine) ClearSelection() {
	m.state.Selected = ""
}

// ClearHover drops hover, for instance when the hovered node is filtered out.
func (m *Machine) ClearHover() {
	m.state.Hovered = ""
}

func (m *Machine) onMove(ev PointerEvent) {
	switch m.state.Mode {
	case DraggingNode:
		p, ok := m.vp.ScreenToModel(ev.Client, ev.Rect)
		if !ok {
			return
		}
		m.layout.Place(m.state.NodeID, p)
	case PanningBackground:
		c, ok := viewport.ScreenToCanvas(ev.Client, ev.Rect)
		if !ok {
			return
		}
		if c.Dist(m.pressAt) > clickSlop {
			m.travelled = true
		}
		m.vp.SetPan(c.Sub(m.state.Anchor))
	}
}

func (m *Machine) onUp(ev PointerEvent) {
	// A background press released in place is a deselection click.
	if m.state.Mode == PanningBackground && !m.travelled {
		if c, ok := viewport.ScreenToCanvas(ev.Client, ev.Rect); !ok || c.Dist(m.pressAt) <= clickSlop {
			m.state.Selected = ""
		}
	}
	m.end()
}

// end returns to Idle and tears the gesture listeners down.
func (m *Machine) end() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.state.Mode = Idle
	m.state.NodeID = ""
	m.state.Anchor = geom.Point{}
}
