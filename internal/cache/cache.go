// Package cache implements a SQLite-backed compile cache keyed by a content
// hash the caller computes (internal/cli uses ir.ContentHash over the raw
// bytes of the input files and the magic file, if any). It lives
// outside internal/compile so the core compiler stays free of persistence —
// caching is a CLI-layer convenience (internal/cli), not part of the
// compiler's contract (spec §5: the core has "no hidden global state").
package cache

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS compiles (
	content_hash  TEXT PRIMARY KEY,
	inputs        TEXT NOT NULL,
	ir_json       TEXT NOT NULL,
	created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
`

// Cache provides durable, content-addressed storage of validated compile
// results. Uses SQLite with WAL mode for concurrent read access, the same
// configuration the teacher's internal/store.Open applies.
type Cache struct {
	db *sql.DB
}

// Open creates or opens a SQLite cache database at path, applying pragmas
// and schema. Idempotent — safe to call multiple times against the same
// path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: connect %s: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("cache: pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: apply schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Lookup returns the cached canonical IR JSON for contentHash, or
// ok=false if no entry exists.
func (c *Cache) Lookup(ctx context.Context, contentHash string) (irJSON []byte, ok bool, err error) {
	var blob string
	err = c.db.QueryRowContext(ctx,
		`SELECT ir_json FROM compiles WHERE content_hash = ?`, contentHash,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: lookup %s: %w", contentHash, err)
	}
	return []byte(blob), true, nil
}

// Store records a compile result's canonical IR JSON under contentHash,
// alongside the input paths that produced it. Idempotent — a second Store
// of the same hash is a silent no-op (content-addressed, so the payload
// cannot differ for the same key).
func (c *Cache) Store(ctx context.Context, contentHash string, inputs []string, irJSON []byte) error {
	inputsJoined := joinInputs(inputs)
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO compiles (content_hash, inputs, ir_json)
		VALUES (?, ?, ?)
		ON CONFLICT(content_hash) DO NOTHING
	`, contentHash, inputsJoined, string(irJSON))
	if err != nil {
		return fmt.Errorf("cache: store %s: %w", contentHash, err)
	}
	return nil
}

func joinInputs(inputs []string) string {
	out := ""
	for i, in := range inputs {
		if i > 0 {
			out += ","
		}
		out += in
	}
	return out
}
