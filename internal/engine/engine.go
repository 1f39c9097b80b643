// Package engine is one mounted graph: the dataset, the per-instance
// positions and viewport, the interaction machine, and the derived view
// recomputed after every state change.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/filter"
	"github.com/ziadkadry99/polgraph/internal/geom"
	"github.com/ziadkadry99/polgraph/internal/highlight"
	"github.com/ziadkadry99/polgraph/internal/interaction"
	"github.com/ziadkadry99/polgraph/internal/layout"
	"github.com/ziadkadry99/polgraph/internal/markets"
	"github.com/ziadkadry99/polgraph/internal/panel"
	"github.com/ziadkadry99/polgraph/internal/render"
	"github.com/ziadkadry99/polgraph/internal/theme"
	"github.com/ziadkadry99/polgraph/internal/viewport"
)

var (
	ErrUnknownGroup = errors.New("unknown group")
	ErrUnknownNode  = errors.New("unknown node")
)

// Route tokens passed to OnNavigate. The engine does not interpret them.
const (
	RouteHome        = "home"
	RouteCollections = "collections"
)

// Options is the host configuration handed over once at construction.
type Options struct {
	Theme      theme.Theme
	OnNavigate func(token string)
	Logger     *slog.Logger
}

// View is the derived state after the most recent change.
type View struct {
	Filter      string            `json:"filter"`
	Groups      []string          `json:"groups"`
	Viewport    viewport.Viewport `json:"viewport"`
	Interaction interaction.State `json:"interaction"`
	Scene       render.Scene      `json:"scene"`
	Panel       panel.Panel       `json:"panel"`
}

// Engine is not safe for concurrent use; hosts drive it from one goroutine.
type Engine struct {
	data   *dataset.Dataset
	opts   Options
	logger *slog.Logger

	vp      viewport.Viewport
	layout  *layout.Layout
	machine *interaction.Machine
	panels  *panel.Builder
	badges  map[string]bool

	filter  string
	tab     panel.Tab
	visible filter.Result
	view    View
}

// New mounts d. The dataset is never modified; positions are copied.
func New(d *dataset.Dataset, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		data:   d,
		opts:   opts,
		logger: logger,
		vp:     viewport.New(),
		layout: layout.New(d.Nodes, geom.CanvasBounds),
		panels: panel.NewBuilder(),
		badges: markets.LinkedNodes(d.Markets),
		filter: filter.All,
		tab:    panel.TabMarkets,
	}
	e.machine = interaction.New(&e.vp, e.layout, interaction.NewWindow(), e.shapes)

	if dangling := d.DanglingEdges(); len(dangling) > 0 {
		logger.Debug("omitting dangling edges", "count", len(dangling))
	}
	e.recompute()
	return e
}

// Dataset returns the mounted dataset.
func (e *Engine) Dataset() *dataset.Dataset { return e.data }

// View returns the derived view.
func (e *Engine) View() View { return e.view }

// State returns the interaction state.
func (e *Engine) State() interaction.State { return e.machine.State() }

// Viewport returns the current pan and zoom.
func (e *Engine) Viewport() viewport.Viewport { return e.vp }

// Listeners is the number of live window-level gesture listeners.
func (e *Engine) Listeners() int { return e.machine.Window().Len() }

// Position returns a node's current position.
func (e *Engine) Position(id string) (geom.Point, bool) { return e.layout.Get(id) }

func (e *Engine) PointerDown(ev interaction.PointerEvent) {
	e.machine.PointerDown(ev)
	e.recompute()
}

func (e *Engine) PointerMove(ev interaction.PointerEvent) {
	e.machine.PointerMove(ev)
	e.recompute()
}

func (e *Engine) PointerUp(ev interaction.PointerEvent) {
	e.machine.PointerUp(ev)
	e.recompute()
}

func (e *Engine) PointerLeave() {
	e.machine.PointerLeave()
	e.recompute()
}

func (e *Engine) PointerEnter(id string) {
	e.machine.PointerEnter(id)
	e.recompute()
}

func (e *Engine) LeaveNode(id string) {
	e.machine.LeaveNode(id)
	e.recompute()
}

func (e *Engine) Wheel(ev interaction.WheelEvent) {
	e.machine.Wheel(ev)
	e.recompute()
}

// SetFilter shows only group, or everything for filter.All.
func (e *Engine) SetFilter(group string) error {
	if group != filter.All {
		if _, ok := e.data.Group(group); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownGroup, group)
		}
	}
	e.filter = group
	e.recompute()
	return nil
}

// Select marks id as selected.
func (e *Engine) Select(id string) error {
	if _, ok := e.data.Node(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	e.machine.Select(id)
	e.recompute()
	return nil
}

// ClearSelection deselects.
func (e *Engine) ClearSelection() {
	e.machine.ClearSelection()
	e.recompute()
}

// ResetView restores pan (0,0) and zoom 1.
func (e *Engine) ResetView() {
	e.vp.Reset()
	e.recompute()
}

// SetViewport replaces pan and zoom, clamping zoom to its range.
func (e *Engine) SetViewport(vp viewport.Viewport) {
	e.vp.SetPan(vp.Pan)
	e.vp.Zoom = 1
	e.vp.ZoomBy(vp.Zoom - 1)
	e.recompute()
}

// ResetLayout puts every node back at its declared position.
func (e *Engine) ResetLayout() {
	e.layout.Reset()
	e.recompute()
}

// SetTab switches the side panel.
func (e *Engine) SetTab(tab panel.Tab) {
	e.tab = tab
	e.recompute()
}

// Navigate hands token to the host. Nothing happens without a callback.
func (e *Engine) Navigate(token string) {
	e.logger.Debug("navigate", "token", token)
	if e.opts.OnNavigate != nil {
		e.opts.OnNavigate(token)
	}
}

// shapes is the hit-test source: visible nodes in draw order.
func (e *Engine) shapes() []interaction.Shape {
	out := make([]interaction.Shape, 0, len(e.visible.Nodes))
	for _, n := range e.visible.Nodes {
		p, ok := e.layout.Get(n.ID)
		if !ok {
			continue
		}
		out = append(out, interaction.Shape{ID: n.ID, Center: p, Radius: render.Radius(n.Influence)})
	}
	return out
}

// recompute runs filter, highlight, market linkage, render and panel.
func (e *Engine) recompute() {
	e.visible = filter.Apply(e.filter, e.data.Nodes, e.data.Edges)

	// A node that is no longer drawn cannot stay hovered.
	st := e.machine.State()
	if st.Hovered != "" && !e.visible.NodeIDs()[st.Hovered] {
		e.machine.ClearHover()
		st = e.machine.State()
	}

	hl := highlight.Compute(st.Hovered, st.Selected, e.visible.Edges)
	scene := render.Build(render.Input{
		Dataset:   e.data,
		Visible:   e.visible,
		Positions: e.layout,
		Highlight: hl,
		Badges:    e.badges,
		Viewport:  e.vp,
		Theme:     e.opts.Theme,
	})

	p, err := e.panels.Build(e.data, e.tab, st.Selected, e.opts.Theme)
	if err != nil {
		e.logger.Warn("building panel", "error", err)
		p = e.view.Panel
	}

	e.view = View{
		Filter:      e.filter,
		Groups:      append([]string{filter.All}, e.data.GroupIDs()...),
		Viewport:    e.vp,
		Interaction: st,
		Scene:       scene,
		Panel:       p,
	}
}
