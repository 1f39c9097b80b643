package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB with polgraph-specific helpers.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every pooled connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Path returns the file the database was opened from.
func (d *DB) Path() string { return d.path }

// migrate runs all schema migrations.
func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

// schema contains the full database schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS datasets (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    subtitle TEXT NOT NULL DEFAULT '',
    edge_colors TEXT NOT NULL DEFAULT '{}',
    insight TEXT NOT NULL DEFAULT '',
    sources TEXT NOT NULL DEFAULT '[]',
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS dataset_groups (
    dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
    ord INTEGER NOT NULL,
    id TEXT NOT NULL,
    label TEXT NOT NULL DEFAULT '',
    palette TEXT NOT NULL,
    light TEXT,
    PRIMARY KEY(dataset_id, id)
);

CREATE TABLE IF NOT EXISTS dataset_nodes (
    dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
    ord INTEGER NOT NULL,
    id TEXT NOT NULL,
    label TEXT NOT NULL,
    group_id TEXT NOT NULL,
    influence TEXT NOT NULL CHECK(influence IN ('low','medium','high','critical')),
    description TEXT NOT NULL DEFAULT '',
    x REAL NOT NULL,
    y REAL NOT NULL,
    PRIMARY KEY(dataset_id, id)
);

CREATE TABLE IF NOT EXISTS dataset_edges (
    dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
    ord INTEGER NOT NULL,
    source TEXT NOT NULL,
    target TEXT NOT NULL,
    type TEXT NOT NULL,
    label TEXT NOT NULL DEFAULT '',
    PRIMARY KEY(dataset_id, ord)
);

CREATE TABLE IF NOT EXISTS dataset_markets (
    dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
    ord INTEGER NOT NULL,
    id TEXT NOT NULL,
    title TEXT NOT NULL,
    probability REAL,
    previous_prob REAL,
    volume TEXT NOT NULL DEFAULT '',
    platform TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL DEFAULT '',
    linked_entities TEXT NOT NULL DEFAULT '[]',
    candidates TEXT NOT NULL DEFAULT '[]',
    timeframes TEXT NOT NULL DEFAULT '[]',
    trend TEXT NOT NULL DEFAULT 'stable',
    PRIMARY KEY(dataset_id, id)
);

CREATE INDEX IF NOT EXISTS idx_dataset_nodes_ord ON dataset_nodes(dataset_id, ord);
CREATE INDEX IF NOT EXISTS idx_dataset_markets_ord ON dataset_markets(dataset_id, ord);
`
