// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/mercer/internal/adjacency"
)

type recordingLearner struct {
	texts []string
}

func (r *recordingLearner) Learn(text string) int {
	r.texts = append(r.texts, text)
	return 1
}

type failingSource struct{ err error }

func (f failingSource) Name() string { return "broken" }

func (f failingSource) Fetch(context.Context) ([]string, error) { return nil, f.err }

func TestRun_ContinuesPastFailedSource(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	learner := &recordingLearner{}
	sources := []TextSource{
		TextBlock("first block"),
		failingSource{err: ErrSourceMissing},
		TextBlock("second block"),
	}

	sum, err := Run(context.Background(), learner, sources, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, []string{"first block", "second block"}, learner.texts)
	assert.Equal(t, 3, sum.Sources)
	assert.Equal(t, 2, sum.Blocks)
	assert.Equal(t, 2, sum.Observations)
	require.Len(t, sum.Failed, 1)
	assert.Equal(t, "broken", sum.Failed[0].Source)
	assert.ErrorIs(t, sum.Failed[0], ErrSourceMissing)
	assert.Equal(t, 1, logs.FilterMessage("Could not learn source.").Len())
}

func TestRun_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	learner := &recordingLearner{}
	_, err := Run(ctx, learner, []TextSource{TextBlock("never")}, nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, learner.texts)
}

func TestRun_LearnsIntoModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("The cat sat.\n\nThe dog ran.\n"), 0o644))

	m := adjacency.New()
	sum, err := Run(context.Background(), m, []TextSource{FileSource{Path: path}}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Blocks)
	assert.Equal(t, 6, sum.Observations)
	trailing, ok := m.Trailing("the")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"cat": 1, "dog": 1}, trailing)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.txt")
	require.NoError(t, os.WriteFile(path, []byte("  one line  \n\n\ttwo line\n"), 0o644))

	blocks, err := FileSource{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"one line", "two line"}, blocks)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "nope.txt")}.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrSourceMissing)
}

func TestTextBlock(t *testing.T) {
	blocks, err := TextBlock("   ").Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, blocks)

	blocks, err = TextBlock("Hello there.").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello there."}, blocks)
}
