// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codec converts an adjacency model to and from the dictionary
// interchange format: a JSON object keyed by word whose values carry the
// word's type tag and its leading and trailing neighbor lists.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mercer/internal/adjacency"
	"github.com/pdiddy/mercer/pkg/types"
)

// ErrMalformed is returned when dictionary content cannot be parsed or
// violates the model invariants.
var ErrMalformed = errors.New("malformed dictionary")

// EmptyDictionary is the bootstrap content written for a new dictionary.
var EmptyDictionary = []byte("{\n}")

// Neighbor is one adjacency edge in the interchange format. The
// "occurances" spelling is part of the file format.
type Neighbor struct {
	Word        string `json:"word" yaml:"word"`
	Occurrences int    `json:"occurances" yaml:"occurances"`
}

// Entry is the interchange form of a single word.
type Entry struct {
	Type     string     `json:"type" yaml:"type"`
	Leading  []Neighbor `json:"leading" yaml:"leading"`
	Trailing []Neighbor `json:"trailing" yaml:"trailing"`
}

// Dictionary is the root object of the interchange format.
type Dictionary map[string]Entry

// Format selects the output encoding for Export.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ToDictionary converts the model into its interchange form. Neighbor lists
// are ordered by descending count, then by word.
func ToDictionary(m *adjacency.Model) Dictionary {
	snap := m.Snapshot()
	dict := make(Dictionary, len(snap))
	for word, e := range snap {
		dict[word] = Entry{
			Type:     string(e.Type),
			Leading:  neighbors(e.Leading),
			Trailing: neighbors(e.Trailing),
		}
	}
	return dict
}

func neighbors(counts map[string]int) []Neighbor {
	out := make([]Neighbor, 0, len(counts))
	for w, n := range counts {
		out = append(out, Neighbor{Word: w, Occurrences: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// FromDictionary rebuilds a model. Type tags are matched case-insensitively
// and an empty tag reads as unknown.
func FromDictionary(dict Dictionary, opts ...adjacency.Option) (*adjacency.Model, error) {
	entries := make(map[string]adjacency.WordEntry, len(dict))
	for word, e := range dict {
		wt := types.WordUnknown
		if e.Type != "" {
			parsed, err := types.ParseWordType(e.Type)
			if err != nil {
				return nil, fmt.Errorf("%w: word %q: %v", ErrMalformed, word, err)
			}
			wt = parsed
		}
		leading, err := counts(e.Leading)
		if err != nil {
			return nil, fmt.Errorf("%w: word %q leading: %v", ErrMalformed, word, err)
		}
		trailing, err := counts(e.Trailing)
		if err != nil {
			return nil, fmt.Errorf("%w: word %q trailing: %v", ErrMalformed, word, err)
		}
		entries[word] = adjacency.WordEntry{Type: wt, Leading: leading, Trailing: trailing}
	}

	m, err := adjacency.FromEntries(entries, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return m, nil
}

func counts(list []Neighbor) (map[string]int, error) {
	out := make(map[string]int, len(list))
	for _, n := range list {
		if _, dup := out[n.Word]; dup {
			return nil, fmt.Errorf("duplicate neighbor %q", n.Word)
		}
		out[n.Word] = n.Occurrences
	}
	return out, nil
}

// Encode serializes the whole model as indented JSON.
func Encode(m *adjacency.Model) ([]byte, error) {
	data, err := json.MarshalIndent(ToDictionary(m), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling dictionary: %w", err)
	}
	return data, nil
}

// Decode parses JSON dictionary content into a model.
func Decode(data []byte, opts ...adjacency.Option) (*adjacency.Model, error) {
	var dict Dictionary
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if dict == nil {
		return nil, fmt.Errorf("%w: root must be an object", ErrMalformed)
	}
	return FromDictionary(dict, opts...)
}

// EncodeYAML serializes the model in the same shape as Encode, as YAML.
func EncodeYAML(m *adjacency.Model) ([]byte, error) {
	data, err := yaml.Marshal(ToDictionary(m))
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

// Export writes the model to w in the requested format.
func Export(w io.Writer, m *adjacency.Model, format Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON, "":
		data, err = Encode(m)
	case FormatYAML:
		data, err = EncodeYAML(m)
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
