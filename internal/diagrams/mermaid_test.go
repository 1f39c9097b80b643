package diagrams

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/filter"
	"github.com/ziadkadry99/polgraph/internal/theme"
)

func sample() *dataset.Dataset {
	return &dataset.Dataset{
		Groups: []dataset.Group{
			{ID: "regime", Label: "Regime", Palette: dataset.Palette{Fill: "#4a1a1a", Border: "#6a2a2a", Text: "#e57373"}},
			{ID: "opposition", Palette: dataset.Palette{Fill: "#1a472a", Border: "#2d5a3d", Text: "#7cb896"}},
			{ID: "external", Palette: dataset.Palette{Fill: "#111", Border: "#222", Text: "#333"}},
		},
		Nodes: []dataset.Node{
			{ID: "supreme-leader", Label: "Supreme Leader", Group: "regime", Influence: dataset.InfluenceCritical},
			{ID: "exile", Label: `The "Exile"`, Group: "opposition", Influence: dataset.InfluenceHigh},
		},
		Edges: []dataset.Edge{
			{Source: "exile", Target: "supreme-leader", Type: dataset.EdgeConflict, Label: "opposes"},
			{Source: "supreme-leader", Target: "exile", Type: dataset.EdgeDiplomatic},
		},
	}
}

func TestFlowchart(t *testing.T) {
	d := sample()
	got := Flowchart(d, filter.Apply(filter.All, d.Nodes, d.Edges), theme.Dark)

	for _, want := range []string{
		"graph LR\n",
		`subgraph group_regime["Regime"]`,
		`subgraph group_opposition["opposition"]`,
		`supreme_leader((("Supreme Leader")))`,
		`exile(["The #quot;Exile#quot;"])`,
		"exile -.->|opposes| supreme_leader",
		"supreme_leader --> exile",
		"classDef g_regime fill:#4a1a1a,stroke:#6a2a2a,color:#e57373",
		"class supreme_leader g_regime",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "group_external") {
		t.Error("empty group should not get a subgraph")
	}
}

func TestFlowchartFiltered(t *testing.T) {
	d := sample()
	got := Flowchart(d, filter.Apply("regime", d.Nodes, d.Edges), theme.Dark)

	if strings.Contains(got, "exile") {
		t.Errorf("filtered-out node or its edges leaked:\n%s", got)
	}
	if !strings.Contains(got, "supreme_leader") {
		t.Error("visible node missing")
	}
}

func TestSanitizeID(t *testing.T) {
	tests := []struct{ in, want string }{
		{"hassan_k", "hassan_k"},
		{"khamenei-out-2026", "khamenei_out_2026"},
		{"a.b c/d:e", "a_b_c_d_e"},
	}
	for _, tt := range tests {
		if got := sanitizeID(tt.in); got != tt.want {
			t.Errorf("sanitizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
