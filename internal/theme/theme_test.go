package theme

import (
	"testing"

	"github.com/ziadkadry99/polgraph/internal/dataset"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]Theme{"dark": Dark, "light": Light, "": Dark, "neon": Dark} {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %+v", in, got)
		}
	}
	if Light.Name() != "light" || Dark.Name() != "dark" {
		t.Error("Name wrong")
	}
}

func TestGroupPalette(t *testing.T) {
	dark := dataset.Palette{Fill: "#4a1a1a", Border: "#6a2a2a", Text: "#e57373"}
	light := dataset.Palette{Fill: "#fde8e8", Border: "#e57373", Text: "#a12b2b"}

	withLight := dataset.Group{ID: "regime", Palette: dark, Light: &light}
	if got := Light.Group(withLight, true); got != light {
		t.Errorf("light theme = %+v", got)
	}
	if got := Dark.Group(withLight, true); got != dark {
		t.Errorf("dark theme = %+v", got)
	}

	noLight := dataset.Group{ID: "x", Palette: dark}
	if got := Light.Group(noLight, true); got != dark {
		t.Errorf("missing light variant = %+v", got)
	}
	if got := Dark.Group(dataset.Group{}, false); got != fallback {
		t.Errorf("unknown group = %+v", got)
	}
}

func TestEdgeColor(t *testing.T) {
	colors := map[string]string{"conflict": "#f44336"}
	if got := Dark.EdgeColor(colors, "conflict"); got != "#f44336" {
		t.Errorf("conflict = %s", got)
	}
	if got := Dark.EdgeColor(colors, "trade"); got != "#444" {
		t.Errorf("unknown type = %s", got)
	}
	if Light.Colors().Background == Dark.Colors().Background {
		t.Error("themes share a background")
	}
}
