// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the whole adjacency model in one unit. The
// default FileStore keeps the JSON dictionary file; SQLiteStore keeps the
// same data in a SQLite database. Both save all-or-nothing.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/mercer/internal/adjacency"
	"github.com/pdiddy/mercer/internal/codec"
	"github.com/pdiddy/mercer/pkg/types"
)

// Store loads and saves a complete model.
type Store interface {
	// Load returns the persisted model, or an empty model when nothing has
	// been saved yet. Corrupt content is an error.
	Load(ctx context.Context) (*adjacency.Model, error)

	// Save replaces the persisted model with m.
	Save(ctx context.Context, m *adjacency.Model) error

	Close() error
}

// Open returns the store selected by cfg.Backend. opts are applied to every
// model the store loads.
func Open(cfg types.DictionaryConfig, opts ...adjacency.Option) (Store, error) {
	switch cfg.Backend {
	case types.BackendJSON, "":
		return NewFileStore(cfg.Path, opts...), nil
	case types.BackendSQLite:
		return NewSQLiteStore(cfg.Path, opts...)
	default:
		return nil, fmt.Errorf("unsupported dictionary backend %q: use json or sqlite", cfg.Backend)
	}
}

// FileStore keeps the model in a JSON dictionary file.
type FileStore struct {
	path string
	opts []adjacency.Option
}

// NewFileStore returns a store for the dictionary file at path.
func NewFileStore(path string, opts ...adjacency.Option) *FileStore {
	return &FileStore{path: path, opts: opts}
}

// Path returns the dictionary file location.
func (s *FileStore) Path() string { return s.path }

// Load reads the dictionary file. A missing file is created with the empty
// dictionary and an empty model is returned.
func (s *FileStore) Load(ctx context.Context) (*adjacency.Model, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.bootstrap(); err != nil {
			return nil, err
		}
		return adjacency.New(s.opts...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dictionary %s: %w", s.path, err)
	}

	m, err := codec.Decode(data, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary %s: %w", s.path, err)
	}
	return m, nil
}

func (s *FileStore) bootstrap() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating dictionary directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, codec.EmptyDictionary, 0o644); err != nil {
		return fmt.Errorf("creating dictionary %s: %w", s.path, err)
	}
	return nil
}

// Save writes the model to a temporary file and renames it over the
// dictionary, so readers see either the old or the new model.
func (s *FileStore) Save(ctx context.Context, m *adjacency.Model) error {
	data, err := codec.Encode(m)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing dictionary: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing dictionary %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; FileStore holds no open handles.
func (s *FileStore) Close() error { return nil }
