package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/polgraph/internal/db"
)

// Summary describes a stored dataset without loading it.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Nodes     int       `json:"nodes"`
	Edges     int       `json:"edges"`
	Markets   int       `json:"markets"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists named datasets in SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a new dataset store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// Save writes d under name, replacing any dataset already stored with that
// name. report, if non-nil, is called after each row with (done, total).
func (s *Store) Save(ctx context.Context, name string, d *Dataset, report func(done, total int)) error {
	if name == "" {
		return fmt.Errorf("dataset name is required")
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("validating dataset: %w", err)
	}

	edgeColors, err := json.Marshal(d.EdgeColors)
	if err != nil {
		return fmt.Errorf("marshaling edge colors: %w", err)
	}
	sources, err := json.Marshal(nonNil(d.Sources))
	if err != nil {
		return fmt.Errorf("marshaling sources: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteByName(ctx, tx, name); err != nil {
		return err
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO datasets (id, name, title, subtitle, edge_colors, insight, sources, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, d.Title, d.Subtitle, string(edgeColors), d.Insight, string(sources), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting dataset: %w", err)
	}

	total := len(d.Groups) + len(d.Nodes) + len(d.Edges) + len(d.Markets)
	done := 0
	tick := func() {
		done++
		if report != nil {
			report(done, total)
		}
	}

	for i, g := range d.Groups {
		palette, err := json.Marshal(g.Palette)
		if err != nil {
			return fmt.Errorf("marshaling palette for group %q: %w", g.ID, err)
		}
		var light sql.NullString
		if g.Light != nil {
			b, err := json.Marshal(g.Light)
			if err != nil {
				return fmt.Errorf("marshaling light palette for group %q: %w", g.ID, err)
			}
			light = sql.NullString{String: string(b), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_groups (dataset_id, ord, id, label, palette, light) VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, g.ID, g.Label, string(palette), light,
		); err != nil {
			return fmt.Errorf("inserting group %q: %w", g.ID, err)
		}
		tick()
	}

	for i, n := range d.Nodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_nodes (dataset_id, ord, id, label, group_id, influence, description, x, y)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, n.ID, n.Label, n.Group, string(n.Influence), n.Description, n.Position.X, n.Position.Y,
		); err != nil {
			return fmt.Errorf("inserting node %q: %w", n.ID, err)
		}
		tick()
	}

	for i, e := range d.Edges {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_edges (dataset_id, ord, source, target, type, label) VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, e.Source, e.Target, e.Type, e.Label,
		); err != nil {
			return fmt.Errorf("inserting edge %s->%s: %w", e.Source, e.Target, err)
		}
		tick()
	}

	for i, m := range d.Markets {
		linked, err := json.Marshal(nonNil(m.LinkedEntities))
		if err != nil {
			return fmt.Errorf("marshaling linked entities for market %q: %w", m.ID, err)
		}
		candidates, err := json.Marshal(nonNil(m.Candidates))
		if err != nil {
			return fmt.Errorf("marshaling candidates for market %q: %w", m.ID, err)
		}
		timeframes, err := json.Marshal(nonNil(m.Timeframes))
		if err != nil {
			return fmt.Errorf("marshaling timeframes for market %q: %w", m.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dataset_markets (dataset_id, ord, id, title, probability, previous_prob, volume, platform, url,
			   linked_entities, candidates, timeframes, trend)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, m.ID, m.Title, nullFloat(m.Probability), nullFloat(m.PreviousProb), m.Volume, m.Platform, m.URL,
			string(linked), string(candidates), string(timeframes), string(m.Trend),
		); err != nil {
			return fmt.Errorf("inserting market %q: %w", m.ID, err)
		}
		tick()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing dataset: %w", err)
	}
	return nil
}

// Load reads the dataset stored under name, preserving declared order.
func (s *Store) Load(ctx context.Context, name string) (*Dataset, error) {
	var (
		id                  string
		edgeColors, sources string
		d                   Dataset
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, subtitle, edge_colors, insight, sources FROM datasets WHERE name = ?`, name,
	).Scan(&id, &d.Title, &d.Subtitle, &edgeColors, &d.Insight, &sources)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("getting dataset: %w", err)
	}
	if err := json.Unmarshal([]byte(edgeColors), &d.EdgeColors); err != nil {
		return nil, fmt.Errorf("unmarshaling edge colors: %w", err)
	}
	if err := json.Unmarshal([]byte(sources), &d.Sources); err != nil {
		return nil, fmt.Errorf("unmarshaling sources: %w", err)
	}
	if len(d.Sources) == 0 {
		d.Sources = nil
	}

	if d.Groups, err = s.loadGroups(ctx, id); err != nil {
		return nil, err
	}
	if d.Nodes, err = s.loadNodes(ctx, id); err != nil {
		return nil, err
	}
	if d.Edges, err = s.loadEdges(ctx, id); err != nil {
		return nil, err
	}
	if d.Markets, err = s.loadMarkets(ctx, id); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns a summary of every stored dataset, ordered by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.name, d.title, d.created_at,
		   (SELECT COUNT(*) FROM dataset_nodes n WHERE n.dataset_id = d.id),
		   (SELECT COUNT(*) FROM dataset_edges e WHERE e.dataset_id = d.id),
		   (SELECT COUNT(*) FROM dataset_markets m WHERE m.dataset_id = d.id)
		 FROM datasets d ORDER BY d.name`)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Name, &sm.Title, &sm.CreatedAt, &sm.Nodes, &sm.Edges, &sm.Markets); err != nil {
			return nil, fmt.Errorf("scanning dataset: %w", err)
		}
		result = append(result, sm)
	}
	return result, rows.Err()
}

// Delete removes the dataset stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM datasets WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("getting dataset: %w", err)
	}
	if err := deleteByName(ctx, tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

// deleteByName removes a dataset and its rows. Child tables are cleared
// explicitly so the result does not depend on the foreign_keys pragma.
func deleteByName(ctx context.Context, tx *sql.Tx, name string) error {
	for _, table := range []string{"dataset_groups", "dataset_nodes", "dataset_edges", "dataset_markets"} {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE dataset_id IN (SELECT id FROM datasets WHERE name = ?)`, name,
		); err != nil {
			return fmt.Errorf("deleting from %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting dataset: %w", err)
	}
	return nil
}

func (s *Store) loadGroups(ctx context.Context, id string) ([]Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, palette, light FROM dataset_groups WHERE dataset_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	defer rows.Close()

	var out []Group
	for rows.Next() {
		var (
			g       Group
			palette string
			light   sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.Label, &palette, &light); err != nil {
			return nil, fmt.Errorf("scanning group: %w", err)
		}
		if err := json.Unmarshal([]byte(palette), &g.Palette); err != nil {
			return nil, fmt.Errorf("unmarshaling palette for group %q: %w", g.ID, err)
		}
		if light.Valid {
			g.Light = &Palette{}
			if err := json.Unmarshal([]byte(light.String), g.Light); err != nil {
				return nil, fmt.Errorf("unmarshaling light palette for group %q: %w", g.ID, err)
			}
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) loadNodes(ctx context.Context, id string) ([]Node, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, group_id, influence, description, x, y FROM dataset_nodes WHERE dataset_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}
	defer rows.Close()

	var out []Node
	for rows.Next() {
		var (
			n         Node
			influence string
		)
		if err := rows.Scan(&n.ID, &n.Label, &n.Group, &influence, &n.Description, &n.Position.X, &n.Position.Y); err != nil {
			return nil, fmt.Errorf("scanning node: %w", err)
		}
		n.Influence = Influence(influence)
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) loadEdges(ctx context.Context, id string) ([]Edge, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, target, type, label FROM dataset_edges WHERE dataset_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("listing edges: %w", err)
	}
	defer rows.Close()

	var out []Edge
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.Source, &e.Target, &e.Type, &e.Label); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) loadMarkets(ctx context.Context, id string) ([]Market, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, probability, previous_prob, volume, platform, url, linked_entities, candidates, timeframes, trend
		 FROM dataset_markets WHERE dataset_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("listing markets: %w", err)
	}
	defer rows.Close()

	var out []Market
	for rows.Next() {
		var (
			m                              Market
			prob, prev                     sql.NullFloat64
			linked, candidates, timeframes string
			trend                          string
		)
		if err := rows.Scan(&m.ID, &m.Title, &prob, &prev, &m.Volume, &m.Platform, &m.URL,
			&linked, &candidates, &timeframes, &trend); err != nil {
			return nil, fmt.Errorf("scanning market: %w", err)
		}
		m.Probability = floatPtr(prob)
		m.PreviousProb = floatPtr(prev)
		m.Trend = Trend(trend)
		if err := json.Unmarshal([]byte(linked), &m.LinkedEntities); err != nil {
			return nil, fmt.Errorf("unmarshaling linked entities for market %q: %w", m.ID, err)
		}
		if err := json.Unmarshal([]byte(candidates), &m.Candidates); err != nil {
			return nil, fmt.Errorf("unmarshaling candidates for market %q: %w", m.ID, err)
		}
		if err := json.Unmarshal([]byte(timeframes), &m.Timeframes); err != nil {
			return nil, fmt.Errorf("unmarshaling timeframes for market %q: %w", m.ID, err)
		}
		if len(m.Candidates) == 0 {
			m.Candidates = nil
		}
		if len(m.Timeframes) == 0 {
			m.Timeframes = nil
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
