package viewer

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/ziadkadry99/polgraph/internal/engine"
)

// pageData is the data passed to the page template.
type pageData struct {
	Title    string
	Subtitle string
	Theme    string
	SVG      template.HTML
	Groups   []string
	Filter   string
	Sources  []string
}

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// ServeIndex serves the page shell with a server-rendered first frame.
func (v *Viewer) ServeIndex(w http.ResponseWriter, r *http.Request) {
	th := v.themeFor(r)
	e := engine.New(v.data, engine.Options{Theme: th, Logger: v.logger})
	if err := e.SetFilter(v.initialFilter); err != nil {
		v.logger.Warn("initial filter ignored", "filter", v.initialFilter, "error", err)
	}
	view := e.View()
	svg, err := view.Scene.SVG()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	err = pageTmpl.Execute(&buf, pageData{
		Title:    v.data.Title,
		Subtitle: v.data.Subtitle,
		Theme:    th.Name(),
		SVG:      template.HTML(svg),
		Groups:   view.Groups,
		Filter:   view.Filter,
		Sources:  v.data.Sources,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.Theme}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{margin:0;padding:20px;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif}
html[data-theme=dark] body{background:linear-gradient(135deg,#0d0d0d 0%,#1a1a2e 50%,#0d0d0d 100%);color:#e0e0e0}
html[data-theme=light] body{background:#f4f4f0;color:#1f1f1f}
header button,#filters button,#tabs button,#controls button{font-family:monospace;font-size:11px;padding:6px 12px;border:1px solid #333;background:transparent;color:inherit;cursor:pointer;text-transform:uppercase}
#filters button.on,#tabs button.on{background:#fff;color:#000}
main{display:flex;gap:20px;flex-wrap:wrap}
#graph{flex:1 1 600px;min-width:300px}
#graph svg{width:100%;height:auto;touch-action:none;user-select:none}
aside{flex:0 1 360px;font-size:12px}
.card{display:block;padding:10px 12px;border:1px solid #333;margin-bottom:8px;text-decoration:none;color:inherit}
.card.hl{border-color:#ffd54f;background:rgba(255,213,79,.1)}
.positive{color:#4caf50}.neutral{color:#ffd54f}.negative{color:#e57373}
.muted{color:#777;font-family:monospace;font-size:10px}
</style>
</head>
<body>
<header>
<button data-route="home">&larr; Back to Home</button>
<button data-route="collections">Collections</button>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p class="muted">{{.Subtitle}}</p>{{end}}
</header>
<div id="filters">{{range .Groups}}<button data-group="{{.}}"{{if eq . $.Filter}} class="on"{{end}}>{{.}}</button>{{end}}</div>
<div id="controls"><button data-action="reset">Reset view</button><button data-action="reset_layout">Reset layout</button><button data-action="clear">Clear selection</button></div>
<main>
<div id="graph">{{.SVG}}</div>
<aside>
<div id="tabs"><button data-tab="markets" class="on">Markets</button><button data-tab="info">Info</button></div>
<div id="panel"></div>
<div id="insight"></div>
{{if .Sources}}<p class="muted">Sources: {{range $i, $s := .Sources}}{{if $i}}, {{end}}{{$s}}{{end}}</p>{{end}}
</aside>
</main>
<script>
(function(){
var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
var ws = new WebSocket(proto + '//' + location.host + '/ws/session');
var graph = document.getElementById('graph');
var down = false;

function send(m){ if (ws.readyState === 1) ws.send(JSON.stringify(m)); }
function svg(){ return graph.querySelector('svg'); }
function pointer(type, e){
  var r = svg().getBoundingClientRect();
  send({type: type, x: e.clientX, y: e.clientY, rect: {left: r.left, top: r.top, width: r.width, height: r.height}});
}
function esc(s){ var d = document.createElement('div'); d.textContent = s == null ? '' : String(s); return d.innerHTML; }

graph.addEventListener('pointerdown', function(e){ down = true; pointer('pointerdown', e); });
window.addEventListener('pointermove', function(e){ pointer('pointermove', e); });
window.addEventListener('pointerup', function(e){ if (down) { down = false; pointer('pointerup', e); } });
graph.addEventListener('pointerleave', function(){ down = false; send({type: 'pointerleave'}); });
graph.addEventListener('wheel', function(e){ e.preventDefault(); send({type: 'wheel', deltaY: e.deltaY}); }, {passive: false});

document.querySelectorAll('[data-group]').forEach(function(b){
  b.onclick = function(){ send({type: 'filter', group: b.dataset.group}); };
});
document.querySelectorAll('[data-tab]').forEach(function(b){
  b.onclick = function(){ send({type: 'tab', tab: b.dataset.tab}); };
});
document.querySelectorAll('[data-action]').forEach(function(b){
  b.onclick = function(){ send({type: b.dataset.action}); };
});
document.querySelectorAll('[data-route]').forEach(function(b){
  b.onclick = function(){ send({type: 'navigate', route: b.dataset.route}); };
});

function cards(p){
  var h = '<p class="muted">' + esc(p.intro) + '</p>';
  if (p.showingFor) h += '<p><span class="neutral">Showing markets for:</span> ' + esc(p.showingFor) + '</p>';
  if (p.empty) return h + '<p class="muted">' + esc(p.empty) + '</p>';
  (p.cards || []).forEach(function(c){
    h += '<a class="card' + (c.highlighted ? ' hl' : '') + '" href="' + esc(c.url) + '" target="_blank" rel="noopener noreferrer">';
    h += '<div>' + esc(c.title) + '</div>';
    if (c.probability != null) {
      h += '<strong class="' + c.tone + '">' + c.probability + '%</strong>';
      if (c.changeText) h += ' <span class="' + (c.change > 0 ? 'positive' : 'negative') + '">' + esc(c.changeText) + ' ' + esc(c.arrow) + '</span>';
    } else {
      (c.candidates || []).forEach(function(x){ h += '<span class="muted">' + esc(x.name) + ':</span> <span class="neutral">' + x.prob + '%</span> '; });
    }
    h += '<div class="muted">' + esc(c.volume) + ' volume</div></a>';
  });
  return h;
}

function info(p){
  if (!p.entity) return (p.hints || []).map(function(s){ return '<p class="muted">' + esc(s) + '</p>'; }).join('');
  var e = p.entity;
  var h = '<div class="muted" style="color:' + esc(e.palette.text) + '">' + esc(e.groupLabel) + '</div><h2>' + esc(e.label) + '</h2>';
  h += '<div class="muted">' + esc(e.influence) + ' influence</div>' + e.description;
  h += '<div class="muted">Connections</div>';
  (e.connections || []).forEach(function(c){
    h += '<div><span style="color:' + esc(c.color) + '">&#9679;</span> ' + esc(c.label) + ' &rarr; ' + esc(c.otherLabel) + '</div>';
  });
  if (e.marketCount) h += '<p class="neutral">Related markets (' + e.marketCount + ')</p>';
  return h;
}

ws.onmessage = function(ev){
  var m = JSON.parse(ev.data);
  if (m.type === 'navigate') { location.href = m.route === 'home' ? '/' : '/' + encodeURIComponent(m.route); return; }
  if (m.type === 'error') { console.warn('polgraph:', m.error); return; }
  graph.innerHTML = m.svg;
  var p = m.view.panel;
  document.querySelectorAll('[data-group]').forEach(function(b){ b.classList.toggle('on', b.dataset.group === m.view.filter); });
  document.querySelectorAll('[data-tab]').forEach(function(b){ b.classList.toggle('on', b.dataset.tab === p.tab); });
  document.getElementById('panel').innerHTML = p.tab === 'info' ? info(p) : cards(p);
  document.getElementById('insight').innerHTML = p.insight || '';
};
})();
</script>
</body>
</html>
`
