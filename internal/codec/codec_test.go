// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codec

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mercer/internal/adjacency"
	"github.com/pdiddy/mercer/pkg/types"
)

func learnedModel(t *testing.T) *adjacency.Model {
	t.Helper()
	m := adjacency.New()
	m.Learn("The cat sat on the mat. The dog sat on the cat! Is the cat happy?")
	require.NoError(t, m.SetWordType("cat", types.WordNoun))
	require.NoError(t, m.SetWordType("sat", types.WordVerb))
	require.NoError(t, m.SetWordType("happy", types.WordAdjective))
	return m
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	m := learnedModel(t)

	data, err := Encode(m)
	require.NoError(t, err)

	loaded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, m.Snapshot(), loaded.Snapshot())
}

func TestEncode_WireShape(t *testing.T) {
	m := adjacency.New()
	m.Learn("a b b")

	data, err := Encode(m)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	b := raw["b"]
	assert.Equal(t, "unknown", b["type"])
	assert.Equal(t, []any{
		map[string]any{"word": "a", "occurances": float64(1)},
		map[string]any{"word": "b", "occurances": float64(1)},
	}, b["leading"])
	assert.Equal(t, []any{
		map[string]any{"word": "b", "occurances": float64(1)},
	}, b["trailing"])
}

func TestDecode_EmptyDictionary(t *testing.T) {
	m, err := Decode(EmptyDictionary)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestDecode_AcceptsCapitalizedTypes(t *testing.T) {
	m, err := Decode([]byte(`{"cat": {"type": "Noun", "leading": [], "trailing": []}}`))
	require.NoError(t, err)
	e, ok := m.Entry("cat")
	require.True(t, ok)
	assert.Equal(t, types.WordNoun, e.Type)
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"cat": `},
		{"empty input", ``},
		{"null root", `null`},
		{"array root", `[]`},
		{"bad type", `{"cat": {"type": "pronoun"}}`},
		{"zero count", `{"cat": {"type": "unknown", "trailing": [{"word": "sat", "occurances": 0}]}}`},
		{"duplicate neighbor", `{"cat": {"trailing": [{"word": "sat", "occurances": 1}, {"word": "sat", "occurances": 2}]}}`},
		{"trailing garbage", `{} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestToDictionary_OrdersByCount(t *testing.T) {
	m := adjacency.New()
	m.Learn("x a. x b. x b. x c. x c. x c")

	dict := ToDictionary(m)
	assert.Equal(t, []Neighbor{
		{Word: "c", Occurrences: 3},
		{Word: "b", Occurrences: 2},
		{Word: "a", Occurrences: 1},
	}, dict["x"].Trailing)
}

func TestExport(t *testing.T) {
	m := learnedModel(t)

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, m, FormatYAML))

		var dict Dictionary
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &dict))
		loaded, err := FromDictionary(dict)
		require.NoError(t, err)
		assert.Equal(t, m.Snapshot(), loaded.Snapshot())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, m, FormatJSON))
		loaded, err := Decode(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, m.Len(), loaded.Len())
	})

	t.Run("unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, Export(&buf, m, "xml"))
	})
}
