// Package panel builds the side panel next to the graph: market cards for
// the current selection and the selected entity's details.
package panel

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ziadkadry99/polgraph/internal/dataset"
	"github.com/ziadkadry99/polgraph/internal/markets"
	"github.com/ziadkadry99/polgraph/internal/theme"
)

// Tab is the visible panel tab.
type Tab string

const (
	TabMarkets Tab = "markets"
	TabInfo    Tab = "info"
)

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabMarkets, TabInfo:
		return Tab(s), nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

const (
	MarketsIntro   = "Live prediction market odds from Polymarket and Kalshi. These represent real-money bets on future events."
	NoMarkets      = "No prediction markets linked to this entity."
	NothingChosen  = "Click on an entity in the graph to view details."
	DragHint       = "Drag nodes to rearrange."
	NoMarketsTotal = "No prediction markets in this dataset."
)

// Connection is one edge touching the selected entity.
type Connection struct {
	Label      string `json:"label"`
	Type       string `json:"type"`
	Color      string `json:"color"`
	OtherID    string `json:"otherId"`
	OtherLabel string `json:"otherLabel"`
	Outgoing   bool   `json:"outgoing"`
}

// Entity is the info tab content for the selected node.
type Entity struct {
	ID          string            `json:"id"`
	Label       string            `json:"label"`
	Group       string            `json:"group"`
	GroupLabel  string            `json:"groupLabel"`
	Influence   dataset.Influence `json:"influence"`
	Palette     dataset.Palette   `json:"palette"`
	Description string            `json:"description"`
	Connections []Connection      `json:"connections"`
	MarketCount int               `json:"marketCount"`
}

// Panel is the side panel view model.
type Panel struct {
	Tab        Tab            `json:"tab"`
	Selected   string         `json:"selected,omitempty"`
	ShowingFor string         `json:"showingFor,omitempty"`
	Intro      string         `json:"intro"`
	Cards      []markets.Card `json:"cards"`
	Empty      string         `json:"empty,omitempty"`
	Entity     *Entity        `json:"entity,omitempty"`
	Hints      []string       `json:"hints,omitempty"`
	Insight    string         `json:"insight,omitempty"`
	Sources    []string       `json:"sources,omitempty"`
}

// Builder renders panels. Markdown output is cached per source string.
type Builder struct {
	md    goldmark.Markdown
	cache map[string]string
}

// NewBuilder returns a Builder with GitHub-flavoured Markdown enabled. Raw
// HTML in descriptions is not passed through.
func NewBuilder() *Builder {
	return &Builder{
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
		cache: make(map[string]string),
	}
}

// Markdown converts src to HTML.
func (b *Builder) Markdown(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	if out, ok := b.cache[src]; ok {
		return out, nil
	}
	var buf bytes.Buffer
	if err := b.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	out := strings.TrimSpace(buf.String())
	b.cache[src] = out
	return out, nil
}

// Build assembles the panel for tab and the current selection.
func (b *Builder) Build(d *dataset.Dataset, tab Tab, selected string, th theme.Theme) (Panel, error) {
	p := Panel{Tab: tab, Selected: selected, Intro: MarketsIntro, Sources: d.Sources}

	insight, err := b.Markdown(d.Insight)
	if err != nil {
		return Panel{}, fmt.Errorf("rendering insight: %w", err)
	}
	p.Insight = insight

	node, found := d.Node(selected)
	if found {
		p.ShowingFor = node.Label
	}

	switch tab {
	case TabInfo:
		if !found {
			p.Hints = []string{NothingChosen, DragHint}
			return p, nil
		}
		ent, err := b.entity(d, node, th)
		if err != nil {
			return Panel{}, err
		}
		p.Entity = ent
	default:
		p.Cards = markets.Cards(selected, d.Markets)
		if len(p.Cards) == 0 {
			if selected != "" {
				p.Empty = NoMarkets
			} else {
				p.Empty = NoMarketsTotal
			}
		}
	}
	return p, nil
}

func (b *Builder) entity(d *dataset.Dataset, n dataset.Node, th theme.Theme) (*Entity, error) {
	desc, err := b.Markdown(n.Description)
	if err != nil {
		return nil, fmt.Errorf("rendering description of %s: %w", n.ID, err)
	}
	g, ok := d.Group(n.Group)
	groupLabel := g.Label
	if groupLabel == "" {
		groupLabel = n.Group
	}
	ent := &Entity{
		ID:          n.ID,
		Label:       n.Label,
		Group:       n.Group,
		GroupLabel:  groupLabel,
		Influence:   n.Influence,
		Palette:     th.Group(g, ok),
		Description: desc,
		MarketCount: markets.Count(n.ID, d.Markets),
	}
	for _, e := range d.Edges {
		if !e.Touches(n.ID) {
			continue
		}
		other, ok := d.Node(e.Other(n.ID))
		if !ok {
			continue
		}
		ent.Connections = append(ent.Connections, Connection{
			Label:      e.Label,
			Type:       e.Type,
			Color:      th.EdgeColor(d.EdgeColors, e.Type),
			OtherID:    other.ID,
			OtherLabel: other.Label,
			Outgoing:   e.Source == n.ID,
		})
	}
	return ent, nil
}
