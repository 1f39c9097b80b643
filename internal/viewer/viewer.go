// Package viewer serves the graph to browsers: a page shell with the
// initial SVG, a small JSON API over the dataset, and a WebSocket session
// that drives one engine per connection.
package viewer

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/filter"
	"github.com/ziadkadry99/polgraph/internal/theme"
)

// Options configures a Viewer.
type Options struct {
	Theme         theme.Theme
	InitialFilter string
	Logger        *slog.Logger
}

// Viewer serves one dataset.
type Viewer struct {
	data          *dataset.Dataset
	theme         theme.Theme
	initialFilter string
	logger        *slog.Logger
}

// New creates a Viewer for d.
func New(d *dataset.Dataset, opts Options) *Viewer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	initial := opts.InitialFilter
	if initial == "" {
		initial = filter.All
	}
	return &Viewer{
		data:          d,
		theme:         opts.Theme,
		initialFilter: initial,
		logger:        logger,
	}
}

// RegisterRoutes mounts all viewer routes onto the given router.
func (v *Viewer) RegisterRoutes(r chi.Router) {
	r.Get("/", v.ServeIndex)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.Compress(5, "application/json", "image/svg+xml", "text/vnd.mermaid"))
		r.Get("/dataset", v.handleDataset)
		r.Get("/groups", v.handleGroups)
		r.Get("/entities/{id}", v.handleEntity)
		r.Get("/markets", v.handleMarkets)
		r.Get("/graph.svg", v.handleGraphSVG)
		r.Get("/graph.mmd", v.handleGraphMermaid)
	})
	r.Get("/ws/session", v.handleWebSocket)
}
