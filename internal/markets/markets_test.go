package markets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ziadkadry99/polgraph/internal/dataset"
)

func prob(v float64) *float64 { return &v }

func ids(ms []dataset.Market) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func TestRelated(t *testing.T) {
	ms := []dataset.Market{
		{ID: "M1", LinkedEntities: []string{"khamenei", "irgc"}},
		{ID: "M2", LinkedEntities: []string{"pahlavi"}},
	}

	if diff := cmp.Diff([]string{"M1"}, ids(Related("khamenei", ms))); diff != "" {
		t.Errorf("selected khamenei (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"M1", "M2"}, ids(Related("", ms))); diff != "" {
		t.Errorf("nothing selected (-want +got):\n%s", diff)
	}
	if got := Related("trump", ms); len(got) != 0 {
		t.Errorf("unlinked node returned %v", ids(got))
	}

	if !Highlighted(ms[0], "irgc") || Highlighted(ms[1], "irgc") || Highlighted(ms[0], "") {
		t.Error("Highlighted wrong")
	}
}

func TestLinkedNodesAndCount(t *testing.T) {
	ms := []dataset.Market{
		{ID: "M1", LinkedEntities: []string{"khamenei", "irgc"}},
		{ID: "M2", LinkedEntities: []string{"khamenei"}},
		{ID: "M3"},
	}
	want := map[string]bool{"khamenei": true, "irgc": true}
	if diff := cmp.Diff(want, LinkedNodes(ms)); diff != "" {
		t.Errorf("LinkedNodes (-want +got):\n%s", diff)
	}
	if Count("khamenei", ms) != 2 || Count("irgc", ms) != 1 || Count("x", ms) != 0 {
		t.Error("Count wrong")
	}
}

func TestToneOf(t *testing.T) {
	tests := []struct {
		p    float64
		want Tone
	}{
		{81, TonePositive},
		{50.1, TonePositive},
		{50, ToneNeutral},
		{31, ToneNeutral},
		{30, ToneNegative},
		{0, ToneNegative},
	}
	for _, tt := range tests {
		if got := ToneOf(tt.p); got != tt.want {
			t.Errorf("ToneOf(%v) = %s, want %s", tt.p, got, tt.want)
		}
	}
}

func TestCards(t *testing.T) {
	ms := []dataset.Market{
		{ID: "up", Probability: prob(61), PreviousProb: prob(58), Trend: dataset.TrendUp, LinkedEntities: []string{"a"}},
		{ID: "flat", Probability: prob(12), PreviousProb: prob(12), Trend: dataset.TrendStable, LinkedEntities: []string{"a"}},
		{ID: "new", Probability: prob(40), Trend: dataset.TrendDown},
		{ID: "multi", Candidates: []dataset.Candidate{{Name: "Mojtaba", Prob: 36}}, LinkedEntities: []string{"a"}},
	}

	all := Cards("", ms)
	if len(all) != 4 {
		t.Fatalf("got %d cards", len(all))
	}
	up := all[0]
	if up.Change != 3 || up.ChangeText != "+3%" || up.Arrow != "↑" || up.Tone != TonePositive {
		t.Errorf("up card = %+v", up)
	}
	if up.Highlighted {
		t.Error("nothing selected, nothing highlighted")
	}
	if flat := all[1]; flat.ChangeText != "" || flat.Arrow != "" || flat.Tone != ToneNegative {
		t.Errorf("flat card = %+v", flat)
	}
	if nw := all[2]; nw.Change != 0 || nw.Tone != ToneNeutral {
		t.Errorf("card without previous = %+v", nw)
	}
	multi := all[3]
	if multi.Probability != nil || multi.Tone != "" || len(multi.Candidates) != 1 {
		t.Errorf("multi card = %+v", multi)
	}

	sel := Cards("a", ms)
	if diff := cmp.Diff([]string{"up", "flat", "multi"}, cardIDs(sel)); diff != "" {
		t.Errorf("selected cards (-want +got):\n%s", diff)
	}
	for _, c := range sel {
		if !c.Highlighted {
			t.Errorf("card %s not highlighted", c.ID)
		}
	}
}

func TestNegativeChange(t *testing.T) {
	c := NewCard(dataset.Market{Probability: prob(33.5), PreviousProb: prob(35.7), Trend: dataset.TrendDown}, false)
	if c.Change != -2.2 || c.ChangeText != "-2.2%" || c.Arrow != "↓" {
		t.Errorf("card = %+v", c)
	}
}

func cardIDs(cs []Card) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}
