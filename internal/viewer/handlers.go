package viewer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/diagrams"
	"github.com/ziadkadry99/polgraph/internal/engine"
	"github.com/ziadkadry99/polgraph/internal/filter"
	"github.com/ziadkadry99/polgraph/internal/markets"
	"github.com/ziadkadry99/polgraph/internal/panel"
	"github.com/ziadkadry99/polgraph/internal/theme"
)

// groupResponse is one entry of the groups endpoint.
type groupResponse struct {
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	Palette dataset.Palette `json:"palette"`
	Nodes   int             `json:"nodes"`
}

// entityResponse is the JSON response for the entity endpoint.
type entityResponse struct {
	Node    dataset.Node   `json:"node"`
	Entity  *panel.Entity  `json:"entity"`
	Markets []markets.Card `json:"markets"`
}

func (v *Viewer) handleDataset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, v.data)
}

func (v *Viewer) handleGroups(w http.ResponseWriter, r *http.Request) {
	th := v.themeFor(r)
	out := make([]groupResponse, 0, len(v.data.Groups))
	for _, g := range v.data.Groups {
		label := g.Label
		if label == "" {
			label = g.ID
		}
		n := len(filter.Apply(g.ID, v.data.Nodes, nil).Nodes)
		out = append(out, groupResponse{ID: g.ID, Label: label, Palette: th.Group(g, true), Nodes: n})
	}
	writeJSON(w, http.StatusOK, out)
}

func (v *Viewer) handleEntity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	node, ok := v.data.Node(id)
	if !ok {
		writeError(w, http.StatusNotFound, "entity not found: "+id)
		return
	}
	p, err := panel.NewBuilder().Build(v.data, panel.TabInfo, id, v.themeFor(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entityResponse{
		Node:    node,
		Entity:  p.Entity,
		Markets: markets.Cards(id, v.data.Markets),
	})
}

func (v *Viewer) handleMarkets(w http.ResponseWriter, r *http.Request) {
	node := r.URL.Query().Get("node")
	if node != "" {
		if _, ok := v.data.Node(node); !ok {
			writeError(w, http.StatusNotFound, "entity not found: "+node)
			return
		}
	}
	writeJSON(w, http.StatusOK, markets.Cards(node, v.data.Markets))
}

// handleGraphSVG renders a one-off frame from query parameters without any
// session state.
func (v *Viewer) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	e := engine.New(v.data, engine.Options{Theme: v.themeFor(r), Logger: v.logger})

	group := q.Get("group")
	if group == "" {
		group = v.initialFilter
	}
	if err := e.SetFilter(group); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if sel := q.Get("selected"); sel != "" {
		if err := e.Select(sel); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if hov := q.Get("hovered"); hov != "" {
		if _, ok := v.data.Node(hov); !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: %q", engine.ErrUnknownNode, hov))
			return
		}
		e.PointerEnter(hov)
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := e.View().Scene.WriteSVG(w); err != nil {
		v.logger.Error("writing svg", "error", err)
	}
}

// handleGraphMermaid exports the filtered graph as a Mermaid flowchart.
func (v *Viewer) handleGraphMermaid(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	if group == "" {
		group = v.initialFilter
	}
	if group != filter.All {
		if _, ok := v.data.Group(group); !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: %q", engine.ErrUnknownGroup, group))
			return
		}
	}
	visible := filter.Apply(group, v.data.Nodes, v.data.Edges)
	w.Header().Set("Content-Type", "text/vnd.mermaid; charset=utf-8")
	fmt.Fprint(w, diagrams.Flowchart(v.data, visible, v.themeFor(r)))
}

// themeFor honours a ?theme= override, falling back to the configured one.
func (v *Viewer) themeFor(r *http.Request) theme.Theme {
	if t := r.URL.Query().Get("theme"); t != "" {
		return theme.Parse(t)
	}
	return v.theme
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
