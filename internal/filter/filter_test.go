package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ziadkadry99/polgraph/internal/dataset"
)

func fixture() ([]dataset.Node, []dataset.Edge) {
	nodes := []dataset.Node{
		{ID: "khamenei", Group: "regime"},
		{ID: "irgc", Group: "regime"},
		{ID: "pahlavi", Group: "opposition"},
		{ID: "mek", Group: "opposition"},
	}
	edges := []dataset.Edge{
		{Source: "khamenei", Target: "irgc", Type: "control"},
		{Source: "pahlavi", Target: "khamenei", Type: "conflict"},
		{Source: "mek", Target: "pahlavi", Type: "conflict"},
		{Source: "irgc", Target: "ghost", Type: "alliance"},
	}
	return nodes, edges
}

func TestApplyByGroup(t *testing.T) {
	nodes, edges := fixture()
	got := Apply("regime", nodes, edges)

	wantNodes := []dataset.Node{nodes[0], nodes[1]}
	if diff := cmp.Diff(wantNodes, got.Nodes); diff != "" {
		t.Errorf("nodes (-want +got):\n%s", diff)
	}
	wantEdges := []dataset.Edge{edges[0]}
	if diff := cmp.Diff(wantEdges, got.Edges); diff != "" {
		t.Errorf("edges (-want +got):\n%s", diff)
	}
}

func TestApplyAll(t *testing.T) {
	nodes, edges := fixture()
	got := Apply(All, nodes, edges)
	if diff := cmp.Diff(nodes, got.Nodes); diff != "" {
		t.Errorf("nodes (-want +got):\n%s", diff)
	}
	// The dangling irgc->ghost edge is omitted.
	if diff := cmp.Diff(edges[:3], got.Edges); diff != "" {
		t.Errorf("edges (-want +got):\n%s", diff)
	}
}

func TestApplyUnknownGroupIsEmpty(t *testing.T) {
	nodes, edges := fixture()
	got := Apply("clergy", nodes, edges)
	if len(got.Nodes) != 0 || len(got.Edges) != 0 {
		t.Errorf("got %d nodes %d edges", len(got.Nodes), len(got.Edges))
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	nodes, edges := fixture()
	got := Apply("opposition", nodes, edges)
	got.Nodes[0].Label = "changed"
	if nodes[2].Label != "" {
		t.Error("input node mutated through result")
	}
	if ids := got.NodeIDs(); !ids["pahlavi"] || !ids["mek"] || len(ids) != 2 {
		t.Errorf("NodeIDs = %v", ids)
	}
}
