// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/mercer/internal/adjacency"
	"github.com/pdiddy/mercer/internal/generate"
	"github.com/pdiddy/mercer/internal/store"
	"github.com/pdiddy/mercer/internal/tokenize"
	"github.com/pdiddy/mercer/pkg/types"
)

// session is one loaded dictionary plus the settings it was loaded with.
type session struct {
	cfg   types.Config
	store store.Store
	model *adjacency.Model
	log   *zap.Logger
}

// openSession loads the configured dictionary, creating it when missing.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing.")

	tok, err := newTokenizer(cfg.Learn)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Dictionary, adjacency.WithTokenizer(tok))
	if err != nil {
		return nil, err
	}
	m, err := st.Load(ctx)
	if err != nil {
		st.Close()
		logger.Error("Could not load dictionary.", zap.String("path", cfg.Dictionary.Path), zap.Error(err))
		return nil, err
	}

	logger.Info("System Loaded.", zap.Int("words", m.Len()))
	return &session{cfg: cfg, store: st, model: m, log: logger}, nil
}

func newTokenizer(cfg types.LearnConfig) (adjacency.Tokenizer, error) {
	switch cfg.Tokenizer {
	case types.TokenizerJapanese:
		j, err := tokenize.NewJapanese(cfg.StripChars)
		if err != nil {
			return nil, fmt.Errorf("loading japanese tokenizer: %w", err)
		}
		return j, nil
	default:
		return adjacency.NewWhitespaceTokenizer(cfg.StripChars), nil
	}
}

// generator returns a Generator over the loaded model.
func (s *session) generator() (*generate.Generator, error) {
	return generate.New(s.model, s.cfg.Generator, generate.WithLogger(s.log))
}

// save writes the model back to the store.
func (s *session) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.model); err != nil {
		s.log.Error("Could not save dictionary.", zap.Error(err))
		return err
	}
	s.log.Debug("Dictionary saved.", zap.String("path", s.cfg.Dictionary.Path), zap.Int("words", s.model.Len()))
	return nil
}

func (s *session) close() error {
	return s.store.Close()
}
