// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package adjacency learns which words appear next to each other and how
// often. The Model is the only mutable state mercer owns: it is built from
// ingested text, annotated through SetWordType, and read by the generator.
package adjacency

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/pdiddy/mercer/pkg/types"
)

// Boundary marks a missing neighbor at the start or end of a sentence.
// Empty tokens are discarded during tokenization, so it never collides
// with a learned word, and it is never stored as a neighbor key.
const Boundary = ""

var (
	// ErrUnknownWord is returned when an operation names a word the model
	// has never learned.
	ErrUnknownWord = errors.New("word not in model")

	// ErrInvalidEntry is returned by FromEntries for entries that break the
	// model invariants.
	ErrInvalidEntry = errors.New("invalid word entry")

	// ErrInvalidWordType is returned when a type tag is not one of the
	// enumerated values.
	ErrInvalidWordType = errors.New("invalid word type")
)

// WordEntry holds what the model knows about a single word.
type WordEntry struct {
	// Type is the annotation tag; unknown unless set explicitly.
	Type types.WordType

	// Leading maps each word seen immediately before this one to its
	// occurrence count.
	Leading map[string]int

	// Trailing maps each word seen immediately after this one to its
	// occurrence count.
	Trailing map[string]int
}

func newEntry() *WordEntry {
	return &WordEntry{
		Type:     types.WordUnknown,
		Leading:  make(map[string]int),
		Trailing: make(map[string]int),
	}
}

func (e *WordEntry) clone() WordEntry {
	return WordEntry{
		Type:     e.Type,
		Leading:  cloneCounts(e.Leading),
		Trailing: cloneCounts(e.Trailing),
	}
}

func cloneCounts(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Model maps case-folded words to their adjacency entries. All methods are
// safe for concurrent use; one mutex guards the map and every entry.
type Model struct {
	mu        sync.RWMutex
	words     map[string]*WordEntry
	tokenizer Tokenizer
}

// Option configures a Model.
type Option func(*Model)

// WithTokenizer replaces the whitespace tokenizer used by Learn.
func WithTokenizer(t Tokenizer) Option {
	return func(m *Model) {
		if t != nil {
			m.tokenizer = t
		}
	}
}

// New returns an empty model.
func New(opts ...Option) *Model {
	m := &Model{
		words:     make(map[string]*WordEntry),
		tokenizer: NewWhitespaceTokenizer(types.DefaultStripChars),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FromEntries builds a model from previously saved entries. It rejects
// empty words, the boundary as a neighbor, non-positive counts, and
// unknown type tags. An empty Type is read as unknown.
func FromEntries(entries map[string]WordEntry, opts ...Option) (*Model, error) {
	m := New(opts...)
	for word, e := range entries {
		if word == Boundary {
			return nil, fmt.Errorf("%w: empty word key", ErrInvalidEntry)
		}
		entry := newEntry()
		if e.Type != "" {
			if !e.Type.Valid() {
				return nil, fmt.Errorf("%w: %q has type %q", ErrInvalidEntry, word, e.Type)
			}
			entry.Type = e.Type
		}
		if err := copyCounts(entry.Leading, e.Leading); err != nil {
			return nil, fmt.Errorf("%w: %q leading: %v", ErrInvalidEntry, word, err)
		}
		if err := copyCounts(entry.Trailing, e.Trailing); err != nil {
			return nil, fmt.Errorf("%w: %q trailing: %v", ErrInvalidEntry, word, err)
		}
		m.words[word] = entry
	}
	return m, nil
}

func copyCounts(dst, src map[string]int) error {
	for w, n := range src {
		if w == Boundary {
			return fmt.Errorf("boundary stored as neighbor")
		}
		if n < 1 {
			return fmt.Errorf("%q has occurrence count %d", w, n)
		}
		dst[w] = n
	}
	return nil
}

// LearnWordRelation records one observation of word between pred and succ.
// The entry for word is created if needed. A Boundary pred or succ records
// no edge on that side. Tokens are used exactly as given.
func (m *Model) LearnWordRelation(pred, word, succ string) {
	if word == Boundary {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.words[word]
	if !ok {
		entry = newEntry()
		m.words[word] = entry
	}
	if pred != Boundary {
		entry.Leading[pred]++
	}
	if succ != Boundary {
		entry.Trailing[succ]++
	}
}

// Learn tokenizes text into sentences and records every word with its
// neighbors. It returns the number of word observations recorded.
func (m *Model) Learn(text string) int {
	learned := 0
	for _, words := range m.tokenizer.Sentences(text) {
		for i, w := range words {
			pred, succ := Boundary, Boundary
			if i > 0 {
				pred = words[i-1]
			}
			if i < len(words)-1 {
				succ = words[i+1]
			}
			m.LearnWordRelation(pred, w, succ)
			learned++
		}
	}
	return learned
}

// SetWordType annotates word with t. Passing Boundary as the type resets the
// tag to unknown.
func (m *Model) SetWordType(word string, t types.WordType) error {
	if t == types.WordType(Boundary) {
		t = types.WordUnknown
	}
	if !t.Valid() {
		return fmt.Errorf("setting type of %q: %w", word, invalidType(t))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.words[word]
	if !ok {
		return fmt.Errorf("setting type of %q: %w", word, ErrUnknownWord)
	}
	entry.Type = t
	return nil
}

func invalidType(t types.WordType) error {
	return fmt.Errorf("%w %q", ErrInvalidWordType, t)
}

// Entry returns a copy of the entry for word.
func (m *Model) Entry(word string) (WordEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.words[word]
	if !ok {
		return WordEntry{}, false
	}
	return entry.clone(), true
}

// Trailing returns a copy of the successor counts for word.
func (m *Model) Trailing(word string) (map[string]int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.words[word]
	if !ok {
		return nil, false
	}
	return cloneCounts(entry.Trailing), true
}

// Words returns every learned word in sorted order.
func (m *Model) Words() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	words := make([]string, 0, len(m.words))
	for w := range m.words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Len returns the number of distinct words.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.words)
}

// Snapshot returns a deep copy of every entry, keyed by word.
func (m *Model) Snapshot() map[string]WordEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]WordEntry, len(m.words))
	for w, e := range m.words {
		out[w] = e.clone()
	}
	return out
}

// Stats tallies the words per type tag. Every tag appears in the result,
// including those with no words.
func (m *Model) Stats() types.DictionaryStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.DictionaryStats{
		TotalWords: len(m.words),
		TypeCounts: make(map[types.WordType]int, len(types.WordTypes)),
	}
	for _, t := range types.WordTypes {
		stats.TypeCounts[t] = 0
	}
	for _, e := range m.words {
		stats.TypeCounts[e.Type]++
	}
	return stats
}
