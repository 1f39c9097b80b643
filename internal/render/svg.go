package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
)

var svgFuncs = template.FuncMap{
	"num":     num,
	"esc":     template.HTMLEscapeString,
	"neg":     func(v float64) float64 { return -v },
	"add":     func(a, b float64) float64 { return a + b },
	"sub":     func(a, b float64) float64 { return a - b },
	"legendX": func(i int) float64 { return 16 + float64(i)*110 },
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

var svgTmpl = template.Must(template.New("scene").Funcs(svgFuncs).Parse(svgTemplate))

// WriteSVG writes the scene as a standalone SVG document.
func (s Scene) WriteSVG(w io.Writer) error {
	if err := svgTmpl.Execute(w, s); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}

// SVG returns the scene as an SVG string.
func (s Scene) SVG() (string, error) {
	var b strings.Builder
	if err := s.WriteSVG(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

const svgTemplate = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 {{num .Width}} {{num .Height}}" data-theme="{{.Theme}}" style="background:{{.Colors.Background}};border:1px solid {{.Colors.Border}}">
<defs>
<marker id="arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto"><polygon points="0 0, 10 3.5, 0 7" fill="{{.Colors.Arrow}}"/></marker>
<filter id="glow"><feGaussianBlur stdDeviation="3" result="coloredBlur"/><feMerge><feMergeNode in="coloredBlur"/><feMergeNode in="SourceGraphic"/></feMerge></filter>
<pattern id="grid" width="40" height="40" patternUnits="userSpaceOnUse"><path d="M 40 0 L 0 0 0 40" fill="none" stroke="{{.Colors.Grid}}" stroke-width="0.5"/></pattern>
</defs>
<rect width="100%" height="100%" fill="url(#grid)"/>
<g id="viewport" transform="translate({{num .Viewport.Pan.X}}, {{num .Viewport.Pan.Y}}) scale({{num .Viewport.Zoom}})">
<g id="edges">
{{- range .Edges}}
<g class="edge" data-source="{{esc .Source}}" data-target="{{esc .Target}}" data-type="{{esc .Type}}">
<path d="M {{num .From.X}} {{num .From.Y}} Q {{num .Control.X}} {{num .Control.Y}} {{num .To.X}} {{num .To.Y}}" fill="none" stroke="{{esc .Color}}" stroke-width="{{num .Width}}" opacity="{{num .Opacity}}"{{if .Dashed}} stroke-dasharray="4,4"{{end}} marker-end="url(#arrowhead)"/>
{{- if .ShowLabel}}
<text x="{{num .LabelAt.X}}" y="{{num .LabelAt.Y}}" text-anchor="middle" fill="{{$.Colors.EdgeLabel}}" font-size="9" font-family="monospace">{{esc .Label}}</text>
{{- end}}
</g>
{{- end}}
</g>
<g id="nodes">
{{- range .Nodes}}
<g class="node{{if .Active}} active{{end}}" data-id="{{esc .ID}}" data-group="{{esc .Group}}" transform="translate({{num .Center.X}}, {{num .Center.Y}}) scale({{num .Scale}})" opacity="{{num .Opacity}}">
{{- if .Active}}
<circle r="{{num (add .Radius 8)}}" fill="none" stroke="{{esc .TextColor}}" stroke-width="2" opacity="0.3" filter="url(#glow)"/>
{{- end}}
<circle r="{{num .Radius}}" fill="{{esc .Fill}}" stroke="{{esc .Border}}" stroke-width="{{num .BorderWidth}}"/>
{{- if .CriticalRing}}
<circle class="ring" r="{{num (sub .Radius 4)}}" fill="none" stroke="{{esc .TextColor}}" stroke-width="1" stroke-dasharray="2,2" opacity="0.5"/>
{{- end}}
{{- if .Badge}}
<circle class="badge" cx="{{num (sub .Radius 4)}}" cy="{{num (add (neg .Radius) 4)}}" r="5" fill="{{$.Colors.Badge}}" stroke="{{$.Colors.BadgeStroke}}" stroke-width="1"/>
{{- end}}
<text y="{{num (add .Radius 14)}}" text-anchor="middle" fill="{{esc .TextColor}}" font-size="10" font-family="monospace" font-weight="500">{{esc .Label}}</text>
</g>
{{- end}}
</g>
</g>
<g id="legend" font-family="monospace" font-size="10">
{{- range $i, $l := .Legend}}
<g transform="translate({{num (legendX $i)}}, 548)"><circle r="4" fill="{{esc $l.Palette.Fill}}" stroke="{{esc $l.Palette.Border}}"/><text x="8" y="3" fill="{{esc $l.Palette.Text}}">{{esc $l.Label}}</text></g>
{{- end}}
{{- if .Legend}}
<g transform="translate({{num (legendX (len .Legend))}}, 548)"><circle r="4" fill="{{.Colors.Badge}}"/><text x="8" y="3" fill="{{.Colors.Muted}}">Has prediction markets</text></g>
{{- end}}
</g>
</svg>
`
