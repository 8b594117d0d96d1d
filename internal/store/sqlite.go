// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mercer/internal/adjacency"
	"github.com/pdiddy/mercer/internal/codec"
	"github.com/pdiddy/mercer/pkg/types"
)

const (
	sideLeading  = "leading"
	sideTrailing = "trailing"
)

// SQLiteStore keeps the model in a SQLite database with one row per word
// and one row per (word, side, neighbor) edge.
type SQLiteStore struct {
	db   *sql.DB
	opts []adjacency.Option
}

// NewSQLiteStore opens or creates the database at path and its schema.
func NewSQLiteStore(path string, opts ...adjacency.Option) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db, opts: opts}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS words (
			word TEXT PRIMARY KEY,
			type TEXT NOT NULL DEFAULT 'unknown'
		)`,
		`CREATE TABLE IF NOT EXISTS neighbors (
			word TEXT NOT NULL REFERENCES words(word) ON DELETE CASCADE,
			side TEXT NOT NULL CHECK (side IN ('leading', 'trailing')),
			neighbor TEXT NOT NULL,
			occurrences INTEGER NOT NULL CHECK (occurrences > 0),
			PRIMARY KEY (word, side, neighbor)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load reads every word and edge. An empty database yields an empty model.
func (s *SQLiteStore) Load(ctx context.Context) (*adjacency.Model, error) {
	entries := make(map[string]adjacency.WordEntry)

	rows, err := s.db.QueryContext(ctx, `SELECT word, type FROM words`)
	if err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	for rows.Next() {
		var word, wt string
		if err := rows.Scan(&word, &wt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning word: %w", err)
		}
		entries[word] = adjacency.WordEntry{
			Type:     types.WordType(wt),
			Leading:  make(map[string]int),
			Trailing: make(map[string]int),
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("reading words: %w", err)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `SELECT word, side, neighbor, occurrences FROM neighbors`)
	if err != nil {
		return nil, fmt.Errorf("querying neighbors: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var word, side, neighbor string
		var n int
		if err := rows.Scan(&word, &side, &neighbor, &n); err != nil {
			return nil, fmt.Errorf("scanning neighbor: %w", err)
		}
		e, ok := entries[word]
		if !ok {
			return nil, fmt.Errorf("%w: neighbor row for unknown word %q", codec.ErrMalformed, word)
		}
		switch side {
		case sideLeading:
			e.Leading[neighbor] = n
		case sideTrailing:
			e.Trailing[neighbor] = n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading neighbors: %w", err)
	}

	m, err := adjacency.FromEntries(entries, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary: %w: %v", codec.ErrMalformed, err)
	}
	return m, nil
}

// Save replaces the stored model inside a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, m *adjacency.Model) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM neighbors`); err != nil {
		return fmt.Errorf("clearing neighbors: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return fmt.Errorf("clearing words: %w", err)
	}

	wordStmt, err := tx.PrepareContext(ctx, `INSERT INTO words (word, type) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing word insert: %w", err)
	}
	defer wordStmt.Close()

	edgeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO neighbors (word, side, neighbor, occurrences) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing neighbor insert: %w", err)
	}
	defer edgeStmt.Close()

	for word, e := range m.Snapshot() {
		if _, err := wordStmt.ExecContext(ctx, word, string(e.Type)); err != nil {
			return fmt.Errorf("inserting word %q: %w", word, err)
		}
		for neighbor, n := range e.Leading {
			if _, err := edgeStmt.ExecContext(ctx, word, sideLeading, neighbor, n); err != nil {
				return fmt.Errorf("inserting leading %q of %q: %w", neighbor, word, err)
			}
		}
		for neighbor, n := range e.Trailing {
			if _, err := edgeStmt.ExecContext(ctx, word, sideTrailing, neighbor, n); err != nil {
				return fmt.Errorf("inserting trailing %q of %q: %w", neighbor, word, err)
			}
		}
	}

	return tx.Commit()
}
