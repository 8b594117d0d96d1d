// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures and configuration for
// mercer: word classification tags, adjacency statistics, and the settings
// consumed by the learning, generation, storage and ingestion stages.
package types

import (
	"fmt"
	"strings"
)

// WordType is an optional classification tag attached to a learned word.
// Mercer never infers it; it is set through explicit annotation.
type WordType string

const (
	WordNoun      WordType = "noun"
	WordAdjective WordType = "adjective"
	WordVerb      WordType = "verb"
	WordUnknown   WordType = "unknown"
)

// WordTypes lists every valid tag in report order.
var WordTypes = []WordType{WordNoun, WordAdjective, WordVerb, WordUnknown}

// ParseWordType converts s to a WordType, ignoring case and surrounding
// whitespace.
func ParseWordType(s string) (WordType, error) {
	t := WordType(strings.ToLower(strings.TrimSpace(s)))
	if t.Valid() {
		return t, nil
	}
	return "", fmt.Errorf("unknown word type %q: use noun, adjective, verb, or unknown", s)
}

// Valid reports whether t is one of the enumerated tags.
func (t WordType) Valid() bool {
	switch t {
	case WordNoun, WordAdjective, WordVerb, WordUnknown:
		return true
	}
	return false
}

// DictionaryStats tallies the learned words by type tag.
type DictionaryStats struct {
	// TotalWords is the number of distinct words in the model.
	TotalWords int `json:"total_words" yaml:"total_words"`

	// TypeCounts holds one count per tag, including unknown. Tags with no
	// words are present with a zero count.
	TypeCounts map[WordType]int `json:"type_counts" yaml:"type_counts"`
}

// Summary renders the statistics as a human-readable report.
func (s DictionaryStats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total words: %d\n", s.TotalWords)
	for _, t := range WordTypes {
		n := s.TypeCounts[t]
		pct := 0.0
		if s.TotalWords > 0 {
			pct = float64(n) / float64(s.TotalWords) * 100
		}
		fmt.Fprintf(&b, "  %-10s %6d  (%5.1f%%)\n", t, n, pct)
	}
	return b.String()
}
