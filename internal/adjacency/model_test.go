// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adjacency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mercer/pkg/types"
)

func TestLearnWordRelation_NewWordIsUnknown(t *testing.T) {
	m := New()
	m.LearnWordRelation("the", "cat", "sat")

	e, ok := m.Entry("cat")
	require.True(t, ok)
	assert.Equal(t, types.WordUnknown, e.Type)
	assert.Equal(t, map[string]int{"the": 1}, e.Leading)
	assert.Equal(t, map[string]int{"sat": 1}, e.Trailing)
}

func TestLearnWordRelation_RepeatCountsExactly(t *testing.T) {
	m := New()
	for i := 0; i < 7; i++ {
		m.LearnWordRelation("big", "dog", "barks")
	}

	e, ok := m.Entry("dog")
	require.True(t, ok)
	assert.Equal(t, 7, e.Leading["big"])
	assert.Equal(t, 7, e.Trailing["barks"])
	assert.Len(t, e.Leading, 1)
	assert.Len(t, e.Trailing, 1)
}

func TestLearnWordRelation_BoundaryRecordsNoEdge(t *testing.T) {
	m := New()
	m.LearnWordRelation(Boundary, "hello", Boundary)
	m.LearnWordRelation(Boundary, "hello", Boundary)

	e, ok := m.Entry("hello")
	require.True(t, ok)
	assert.Empty(t, e.Leading)
	assert.Empty(t, e.Trailing)
	assert.Equal(t, 1, m.Len())
}

func TestLearnWordRelation_IgnoresBoundaryWord(t *testing.T) {
	m := New()
	m.LearnWordRelation("a", Boundary, "b")
	assert.Equal(t, 0, m.Len())
}

func TestLearn_SingleSentence(t *testing.T) {
	m := New()
	n := m.Learn("The cat sat on the mat.")
	assert.Equal(t, 6, n)

	assert.Equal(t, []string{"cat", "mat", "on", "sat", "the"}, m.Words())

	the, _ := m.Entry("the")
	assert.Equal(t, map[string]int{"on": 1}, the.Leading)
	assert.Equal(t, map[string]int{"cat": 1, "mat": 1}, the.Trailing)

	cat, _ := m.Entry("cat")
	assert.Equal(t, map[string]int{"sat": 1}, cat.Trailing)

	mat, _ := m.Entry("mat")
	assert.Empty(t, mat.Trailing)
}

func TestLearn_SentencesDoNotLinkAcrossTerminators(t *testing.T) {
	m := New()
	m.Learn("Dogs bark. Cats meow!")

	bark, ok := m.Entry("bark")
	require.True(t, ok)
	assert.Empty(t, bark.Trailing)

	cats, ok := m.Entry("cats")
	require.True(t, ok)
	assert.Empty(t, cats.Leading)
}

func TestLearn_StripsPunctuationAndQuotes(t *testing.T) {
	m := New()
	m.Learn(`“Hello,” she said (quietly) to "Bob"`)

	assert.Equal(t, []string{"bob", "hello", "quietly", "said", "she", "to"}, m.Words())
}

func TestLearn_CustomTokenizer(t *testing.T) {
	m := New(WithTokenizer(NewWhitespaceTokenizer("#")))
	m.Learn("#tag, here")

	assert.Equal(t, []string{"here", "tag,"}, m.Words())
}

func TestSetWordType(t *testing.T) {
	m := New()
	m.Learn("run fast")

	require.NoError(t, m.SetWordType("run", types.WordVerb))
	e, _ := m.Entry("run")
	assert.Equal(t, types.WordVerb, e.Type)

	require.NoError(t, m.SetWordType("run", types.WordType(Boundary)))
	e, _ = m.Entry("run")
	assert.Equal(t, types.WordUnknown, e.Type)

	err := m.SetWordType("run", "adverb")
	assert.ErrorIs(t, err, ErrInvalidWordType)

	err = m.SetWordType("walk", types.WordVerb)
	assert.ErrorIs(t, err, ErrUnknownWord)
}

func TestStats(t *testing.T) {
	m := New()
	for _, w := range []string{"cat", "dog", "mat", "run", "sit", "the"} {
		m.LearnWordRelation(Boundary, w, Boundary)
	}
	for _, w := range []string{"cat", "dog", "mat"} {
		require.NoError(t, m.SetWordType(w, types.WordNoun))
	}
	for _, w := range []string{"run", "sit"} {
		require.NoError(t, m.SetWordType(w, types.WordVerb))
	}

	stats := m.Stats()
	assert.Equal(t, 6, stats.TotalWords)
	assert.Equal(t, map[types.WordType]int{
		types.WordNoun:      3,
		types.WordVerb:      2,
		types.WordAdjective: 0,
		types.WordUnknown:   1,
	}, stats.TypeCounts)
	assert.Contains(t, stats.Summary(), "Total words: 6")
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	m := New()
	m.Learn("a b")

	snap := m.Snapshot()
	snap["a"].Trailing["b"] = 99

	e, _ := m.Entry("a")
	assert.Equal(t, 1, e.Trailing["b"])
}

func TestFromEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string]WordEntry
		wantErr bool
	}{
		{
			name: "valid entries",
			entries: map[string]WordEntry{
				"cat": {Type: types.WordNoun, Trailing: map[string]int{"sat": 2}},
				"sat": {Leading: map[string]int{"cat": 2}},
			},
		},
		{
			name:    "empty word key",
			entries: map[string]WordEntry{"": {}},
			wantErr: true,
		},
		{
			name:    "zero count",
			entries: map[string]WordEntry{"cat": {Trailing: map[string]int{"sat": 0}}},
			wantErr: true,
		},
		{
			name:    "boundary neighbor",
			entries: map[string]WordEntry{"cat": {Leading: map[string]int{"": 1}}},
			wantErr: true,
		},
		{
			name:    "bad type",
			entries: map[string]WordEntry{"cat": {Type: "pronoun"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FromEntries(tt.entries)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEntry)
				return
			}
			require.NoError(t, err)
			sat, ok := m.Entry("sat")
			require.True(t, ok)
			assert.Equal(t, types.WordUnknown, sat.Type)
			assert.Equal(t, 2, sat.Leading["cat"])
		})
	}
}

func TestModel_ConcurrentLearnAndRead(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.LearnWordRelation("a", "b", "c")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Trailing("b")
				m.Stats()
			}
		}()
	}
	wg.Wait()

	e, _ := m.Entry("b")
	assert.Equal(t, 800, e.Trailing["c"])
}
