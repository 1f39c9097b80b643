// Package markets links graph nodes to external prediction-market records
// and shapes those records into display cards.
package markets

import (
	"fmt"
	"math"

	"github.com/ziadkadry99/polgraph/internal/dataset"
)

// Related returns the markets linked to selected, or all markets when
// nothing is selected. Declared order is kept.
func Related(selected string, markets []dataset.Market) []dataset.Market {
	if selected == "" {
		return markets
	}
	var out []dataset.Market
	for _, m := range markets {
		if m.Links(selected) {
			out = append(out, m)
		}
	}
	return out
}

// Highlighted reports whether m is emphasised in a market list.
func Highlighted(m dataset.Market, selected string) bool {
	return selected != "" && m.Links(selected)
}

// LinkedNodes is the set of node ids referenced by any market. Those nodes
// get a badge.
func LinkedNodes(markets []dataset.Market) map[string]bool {
	out := make(map[string]bool)
	for _, m := range markets {
		for _, id := range m.LinkedEntities {
			out[id] = true
		}
	}
	return out
}

// Count returns how many markets link to id.
func Count(id string, markets []dataset.Market) int {
	n := 0
	for _, m := range markets {
		if m.Links(id) {
			n++
		}
	}
	return n
}

// Tone buckets a probability for colouring.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
)

// ToneOf returns positive above 50, neutral above 30 and negative otherwise.
func ToneOf(prob float64) Tone {
	switch {
	case prob > 50:
		return TonePositive
	case prob > 30:
		return ToneNeutral
	default:
		return ToneNegative
	}
}

// Arrow returns the glyph for a trend.
func Arrow(t dataset.Trend) string {
	switch t {
	case dataset.TrendUp:
		return "↑"
	case dataset.TrendDown:
		return "↓"
	default:
		return "→"
	}
}

// Card is a market ready to be displayed.
type Card struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	URL         string              `json:"url"`
	Platform    string              `json:"platform"`
	Volume      string              `json:"volume"`
	Probability *float64            `json:"probability"`
	Tone        Tone                `json:"tone,omitempty"`
	Change      float64             `json:"change"`
	ChangeText  string              `json:"changeText,omitempty"`
	Arrow       string              `json:"arrow,omitempty"`
	Candidates  []dataset.Candidate `json:"candidates,omitempty"`
	Timeframes  []dataset.Timeframe `json:"timeframes,omitempty"`
	Highlighted bool                `json:"highlighted"`
}

// Cards builds the cards for the markets related to selected.
func Cards(selected string, markets []dataset.Market) []Card {
	related := Related(selected, markets)
	out := make([]Card, 0, len(related))
	for _, m := range related {
		out = append(out, NewCard(m, Highlighted(m, selected)))
	}
	return out
}

// NewCard shapes one market. The change is only known when both the current
// and the previous probability are.
func NewCard(m dataset.Market, highlighted bool) Card {
	c := Card{
		ID:          m.ID,
		Title:       m.Title,
		URL:         m.URL,
		Platform:    m.Platform,
		Volume:      m.Volume,
		Probability: m.Probability,
		Timeframes:  m.Timeframes,
		Highlighted: highlighted,
	}
	if m.Probability == nil {
		c.Candidates = m.Candidates
		return c
	}
	c.Tone = ToneOf(*m.Probability)
	if m.PreviousProb != nil {
		c.Change = round1(*m.Probability - *m.PreviousProb)
	}
	if c.Change != 0 {
		c.ChangeText = fmt.Sprintf("%+g%%", c.Change)
		c.Arrow = Arrow(m.Trend)
	}
	return c
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
