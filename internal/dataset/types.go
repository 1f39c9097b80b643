package dataset

import "github.com/ziadkadry99/polgraph/internal/geom"

// Influence is a node's categorical weight. It drives render radius and the
// critical-tier ring.
type Influence string

const (
	InfluenceLow      Influence = "low"
	InfluenceMedium   Influence = "medium"
	InfluenceHigh     Influence = "high"
	InfluenceCritical Influence = "critical"
)

// validInfluences is the set of recognized influence tiers.
var validInfluences = map[Influence]bool{
	InfluenceLow:      true,
	InfluenceMedium:   true,
	InfluenceHigh:     true,
	InfluenceCritical: true,
}

// Edge types used by the bundled dataset. Any string is accepted; these are
// the ones with a declared colour.
const (
	EdgeConflict   = "conflict"
	EdgeAlliance   = "alliance"
	EdgeControl    = "control"
	EdgeFamily     = "family"
	EdgeSuccession = "succession"
	EdgeHierarchy  = "hierarchy"
	EdgeDiplomatic = "diplomatic"
)

// Trend is the direction a market moved since its previous reading.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Node is a political actor or institution.
type Node struct {
	ID          string     `json:"id" yaml:"id"`
	Label       string     `json:"label" yaml:"label"`
	Group       string     `json:"group" yaml:"group"`
	Influence   Influence  `json:"influence" yaml:"influence"`
	Description string     `json:"description" yaml:"description"`
	Position    geom.Point `json:"position" yaml:"position"`
}

// Edge is a typed, labelled relationship. Direction only matters for the
// arrowhead.
type Edge struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Type   string `json:"type" yaml:"type"`
	Label  string `json:"label" yaml:"label"`
}

// Touches reports whether id is either endpoint of e.
func (e Edge) Touches(id string) bool {
	return id != "" && (e.Source == id || e.Target == id)
}

// Other returns the endpoint of e that is not id.
func (e Edge) Other(id string) string {
	if e.Source == id {
		return e.Target
	}
	return e.Source
}

// Palette is the fill/border/text triple used to draw a group's nodes.
type Palette struct {
	Fill   string `json:"fill" yaml:"fill"`
	Border string `json:"border" yaml:"border"`
	Text   string `json:"text" yaml:"text"`
}

// Group is a node category. Light is optional; when absent the dark palette
// is used for both themes.
type Group struct {
	ID      string   `json:"id" yaml:"id"`
	Label   string   `json:"label,omitempty" yaml:"label,omitempty"`
	Palette Palette  `json:"palette" yaml:"palette"`
	Light   *Palette `json:"light,omitempty" yaml:"light,omitempty"`
}

// Candidate is one outcome of a multi-outcome market.
type Candidate struct {
	Name string  `json:"name" yaml:"name"`
	Prob float64 `json:"prob" yaml:"prob"`
}

// Timeframe is a dated probability reading on the same question.
type Timeframe struct {
	Label string  `json:"label" yaml:"label"`
	Prob  float64 `json:"prob" yaml:"prob"`
}

// Market is an external prediction-market record. Probability is nil for
// multi-outcome markets, which carry Candidates instead.
type Market struct {
	ID             string      `json:"id" yaml:"id"`
	Title          string      `json:"title" yaml:"title"`
	Probability    *float64    `json:"probability" yaml:"probability"`
	PreviousProb   *float64    `json:"previousProb,omitempty" yaml:"previous_prob,omitempty"`
	Volume         string      `json:"volume" yaml:"volume"`
	Platform       string      `json:"platform" yaml:"platform"`
	URL            string      `json:"url" yaml:"url"`
	LinkedEntities []string    `json:"linkedEntities" yaml:"linked_entities"`
	Candidates     []Candidate `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	Timeframes     []Timeframe `json:"timeframes,omitempty" yaml:"timeframes,omitempty"`
	Trend          Trend       `json:"trend" yaml:"trend"`
}

// Links reports whether the market is linked to node id.
func (m Market) Links(id string) bool {
	if id == "" {
		return false
	}
	for _, e := range m.LinkedEntities {
		if e == id {
			return true
		}
	}
	return false
}

// Dataset is the immutable input handed to an engine at construction.
type Dataset struct {
	Title      string            `json:"title" yaml:"title"`
	Subtitle   string            `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Groups     []Group           `json:"groups" yaml:"groups"`
	Nodes      []Node            `json:"nodes" yaml:"nodes"`
	Edges      []Edge            `json:"edges" yaml:"edges"`
	EdgeColors map[string]string `json:"edgeColors" yaml:"edge_colors"`
	Markets    []Market          `json:"markets" yaml:"markets"`
	Insight    string            `json:"insight,omitempty" yaml:"insight,omitempty"`
	Sources    []string          `json:"sources,omitempty" yaml:"sources,omitempty"`
}
