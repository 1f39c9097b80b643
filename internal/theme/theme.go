// Package theme maps the host's dark/light flag to colours. Nothing here
// changes what is drawn, only how it is coloured.
package theme

import "github.com/ziadkadry99/polgraph/internal/dataset"

// Theme is the palette selector handed to the engine once.
type Theme struct {
	Dark bool
}

// Dark and Light are the two supported themes.
var (
	Dark  = Theme{Dark: true}
	Light = Theme{Dark: false}
)

// Parse maps "dark" or "light" to a Theme. Anything else is dark.
func Parse(name string) Theme {
	if name == "light" {
		return Light
	}
	return Dark
}

// Name returns "dark" or "light".
func (t Theme) Name() string {
	if t.Dark {
		return "dark"
	}
	return "light"
}

// fallback colours nodes whose group has no palette.
var fallback = dataset.Palette{Fill: "#2a2a2a", Border: "#444444", Text: "#9e9e9e"}

// Group returns the palette for g under t. A group without a light variant
// keeps its dark palette.
func (t Theme) Group(g dataset.Group, ok bool) dataset.Palette {
	if !ok {
		return fallback
	}
	if !t.Dark && g.Light != nil {
		return *g.Light
	}
	return g.Palette
}

// Colors are the non-group colours of the canvas.
type Colors struct {
	Background  string
	Border      string
	Grid        string
	Arrow       string
	EdgeDefault string
	EdgeLabel   string
	Badge       string
	BadgeStroke string
	Muted       string
	Text        string
}

var (
	darkColors = Colors{
		Background:  "rgba(10, 10, 15, 0.8)",
		Border:      "#222",
		Grid:        "#1a1a1a",
		Arrow:       "#444",
		EdgeDefault: "#444",
		EdgeLabel:   "#888",
		Badge:       "#ffd54f",
		BadgeStroke: "#000",
		Muted:       "#555",
		Text:        "#e0e0e0",
	}
	lightColors = Colors{
		Background:  "#fbfbf8",
		Border:      "#d8d8d8",
		Grid:        "#ececec",
		Arrow:       "#999",
		EdgeDefault: "#999",
		EdgeLabel:   "#555",
		Badge:       "#f9a825",
		BadgeStroke: "#333",
		Muted:       "#888",
		Text:        "#1f1f1f",
	}
)

// Colors returns the canvas colours for t.
func (t Theme) Colors() Colors {
	if t.Dark {
		return darkColors
	}
	return lightColors
}

// EdgeColor returns the stroke for an edge type, or the theme default.
func (t Theme) EdgeColor(colors map[string]string, typ string) string {
	if c, ok := colors[typ]; ok && c != "" {
		return c
	}
	return t.Colors().EdgeDefault
}
