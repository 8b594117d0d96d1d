// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mercer/internal/adjacency"
	"github.com/pdiddy/mercer/pkg/types"
)

func newJapanese(t *testing.T) *Japanese {
	t.Helper()
	j, err := NewJapanese(types.DefaultStripChars)
	require.NoError(t, err)
	return j
}

func TestJapanese_SplitsSentences(t *testing.T) {
	j := newJapanese(t)

	sentences := j.Sentences("猫が座った。犬が走った！\n本当？")
	require.Len(t, sentences, 3)
	assert.Equal(t, "猫", sentences[0][0])
	assert.Equal(t, "が", sentences[0][1])
	assert.Equal(t, "犬", sentences[1][0])
	assert.Equal(t, "本当", sentences[2][0])
}

func TestJapanese_SkipsSymbolsAndSpaces(t *testing.T) {
	j := newJapanese(t)

	for _, s := range j.Sentences("東京、大阪　そして「京都」。") {
		for _, w := range s {
			assert.NotEmpty(t, w)
			assert.NotContains(t, []string{"、", "　", "「", "」", "。"}, w)
		}
	}
}

func TestJapanese_EmptyInput(t *testing.T) {
	j := newJapanese(t)
	assert.Empty(t, j.Sentences(""))
	assert.Empty(t, j.Sentences("。。！？"))
}

func TestJapanese_LowercasesLatin(t *testing.T) {
	j := newJapanese(t)
	sentences := j.Sentences("Hello World。")
	require.Len(t, sentences, 1)
	assert.Contains(t, sentences[0], "hello")
}

func TestJapanese_TeachesModel(t *testing.T) {
	m := adjacency.New(adjacency.WithTokenizer(newJapanese(t)))
	m.Learn("猫が座った。猫が寝た。")

	trailing, ok := m.Trailing("猫")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"が": 2}, trailing)
}
