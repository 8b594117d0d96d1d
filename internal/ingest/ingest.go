// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest gathers text for the model to learn. A TextSource yields
// blocks of text (lines, post bodies, feed items, article bodies); Run
// feeds every block from every source to a Learner, reporting failed
// sources without stopping the run.
package ingest

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrSourceMissing is returned when a source's underlying resource does
// not exist (a missing file, an unknown subreddit).
var ErrSourceMissing = errors.New("source not found")

// TextSource yields blocks of text to learn.
type TextSource interface {
	// Name identifies the source in logs and summaries.
	Name() string

	// Fetch returns the source's text blocks in order.
	Fetch(ctx context.Context) ([]string, error)
}

// Learner consumes text. *adjacency.Model satisfies it.
type Learner interface {
	Learn(text string) int
}

// Summary reports the outcome of a Run.
type Summary struct {
	Sources      int
	Blocks       int
	Observations int
	Failed       []SourceError
}

// SourceError records why one source could not be learned.
type SourceError struct {
	Source string
	Err    error
}

func (e SourceError) Error() string { return e.Source + ": " + e.Err.Error() }

func (e SourceError) Unwrap() error { return e.Err }

// Run learns every block of every source in order. A source that fails to
// fetch is logged and skipped. Run stops early only when ctx is done.
func Run(ctx context.Context, learner Learner, sources []TextSource, log *zap.Logger) (Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var sum Summary
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Sources++

		blocks, err := src.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			log.Warn("Could not learn source.", zap.String("source", src.Name()), zap.Error(err))
			sum.Failed = append(sum.Failed, SourceError{Source: src.Name(), Err: err})
			continue
		}

		learned := 0
		for _, b := range blocks {
			learned += learner.Learn(b)
		}
		sum.Blocks += len(blocks)
		sum.Observations += learned
		log.Info("Learned source.",
			zap.String("source", src.Name()),
			zap.Int("blocks", len(blocks)),
			zap.Int("words", learned))
	}
	return sum, nil
}
