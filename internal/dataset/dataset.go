// Package dataset defines the static graph (nodes, edges, groups, markets)
// that a viewer session renders, and loads it from YAML or SQLite.
package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed iran.yml
var defaultYAML []byte

// ErrNotFound is returned when a named dataset does not exist in the store.
var ErrNotFound = errors.New("dataset not found")

// Parse decodes a YAML dataset. Unknown keys are rejected so typos in
// hand-edited files surface early.
func Parse(data []byte) (*Dataset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Dataset
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if d.EdgeColors == nil {
		d.EdgeColors = map[string]string{}
	}
	return &d, nil
}

// LoadFile reads and parses the YAML dataset at path.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Default returns a fresh copy of the bundled Iran political landscape.
func Default() *Dataset {
	d, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("dataset: embedded iran.yml is invalid: %v", err))
	}
	return d
}

// Validate checks structural invariants. Dangling edges and market links to
// unknown nodes are not errors: the renderer omits them.
func (d *Dataset) Validate() error {
	var errs []error

	groups := make(map[string]bool, len(d.Groups))
	for i, g := range d.Groups {
		if g.ID == "" {
			errs = append(errs, fmt.Errorf("group %d: id is required", i))
			continue
		}
		if groups[g.ID] {
			errs = append(errs, fmt.Errorf("group %q: duplicate id", g.ID))
		}
		groups[g.ID] = true
	}

	seen := make(map[string]bool, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("node %d: id is required", i))
			continue
		}
		if seen[n.ID] {
			errs = append(errs, fmt.Errorf("node %q: duplicate id", n.ID))
		}
		seen[n.ID] = true
		if !groups[n.Group] {
			errs = append(errs, fmt.Errorf("node %q: unknown group %q", n.ID, n.Group))
		}
		if !validInfluences[n.Influence] {
			errs = append(errs, fmt.Errorf("node %q: invalid influence %q: must be one of low, medium, high, critical", n.ID, n.Influence))
		}
	}

	marketIDs := make(map[string]bool, len(d.Markets))
	for i, m := range d.Markets {
		if m.ID == "" {
			errs = append(errs, fmt.Errorf("market %d: id is required", i))
			continue
		}
		if marketIDs[m.ID] {
			errs = append(errs, fmt.Errorf("market %q: duplicate id", m.ID))
		}
		marketIDs[m.ID] = true
		if m.Probability != nil && (*m.Probability < 0 || *m.Probability > 100) {
			errs = append(errs, fmt.Errorf("market %q: probability %.1f outside [0,100]", m.ID, *m.Probability))
		}
		if m.PreviousProb != nil && (*m.PreviousProb < 0 || *m.PreviousProb > 100) {
			errs = append(errs, fmt.Errorf("market %q: previous probability %.1f outside [0,100]", m.ID, *m.PreviousProb))
		}
	}

	return errors.Join(errs...)
}

// NodeIndex maps node ids to their position in d.Nodes.
func (d *Dataset) NodeIndex() map[string]int {
	idx := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// Node looks up a node by id.
func (d *Dataset) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Group looks up a group by id.
func (d *Dataset) Group(id string) (Group, bool) {
	for _, g := range d.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// GroupIDs returns group ids in declared order.
func (d *Dataset) GroupIDs() []string {
	ids := make([]string, 0, len(d.Groups))
	for _, g := range d.Groups {
		ids = append(ids, g.ID)
	}
	return ids
}

// DanglingEdges returns edges with an endpoint missing from d.Nodes.
func (d *Dataset) DanglingEdges() []Edge {
	idx := d.NodeIndex()
	var out []Edge
	for _, e := range d.Edges {
		_, okS := idx[e.Source]
		_, okT := idx[e.Target]
		if !okS || !okT {
			out = append(out, e)
		}
	}
	return out
}

// UnknownMarketLinks returns "market -> node" pairs whose node is missing.
func (d *Dataset) UnknownMarketLinks() []string {
	idx := d.NodeIndex()
	var out []string
	for _, m := range d.Markets {
		for _, id := range m.LinkedEntities {
			if _, ok := idx[id]; !ok {
				out = append(out, m.ID+" -> "+id)
			}
		}
	}
	return out
}
