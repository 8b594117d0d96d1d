// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate walks a learned adjacency model to produce sentences.
// Each next word is drawn in two stages: first a commonality bucket (all
// successors sharing an occurrence count) uniformly among the buckets that
// fall inside the tolerance band, then a word uniformly within that bucket.
// The generator only reads the model.
package generate

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/pdiddy/mercer/internal/adjacency"
	"github.com/pdiddy/mercer/pkg/types"
)

// ErrEmptyModel is returned when generation is asked of a model with no
// words to seed from.
var ErrEmptyModel = errors.New("dictionary is empty")

// Model is the read-only view of the adjacency model the generator needs.
type Model interface {
	Words() []string
	Trailing(word string) (map[string]int, bool)
}

// Generator produces sentences from a Model.
type Generator struct {
	model Model
	cfg   types.GeneratorConfig
	rng   *rand.Rand
	log   *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source. Tests pass a seeded source for
// reproducible output.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithLogger sets the logger used to report precondition failures.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New returns a generator over model. MaxAttempts and MinWords must be at
// least 1; an out-of-range tolerance is clamped to 1-100 and logged.
func New(model Model, cfg types.GeneratorConfig, opts ...Option) (*Generator, error) {
	g := &Generator{
		model: model,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := cfg.Validate(); err != nil {
		g.log.Warn("rejected generator settings", zap.Error(err))
		return nil, err
	}
	g.cfg = cfg
	g.SetTolerance(cfg.TolerancePercent)
	return g, nil
}

// Config returns the effective settings.
func (g *Generator) Config() types.GeneratorConfig {
	return g.cfg
}

// SetMaxAttempts changes how many times each chain position is retried.
// Values below 1 are rejected and the previous setting is kept.
func (g *Generator) SetMaxAttempts(n int) error {
	if n < 1 {
		err := fmt.Errorf("max attempts must be at least 1, got %d", n)
		g.log.Warn("rejected max attempts", zap.Int("attempts", n))
		return err
	}
	g.cfg.MaxAttempts = n
	return nil
}

// SetTolerance changes the commonality band, clamping p to 1-100. It
// returns the value in effect.
func (g *Generator) SetTolerance(p int) int {
	clamped := types.ClampTolerance(p)
	if clamped != p {
		g.log.Warn("tolerance percent out of range, clamped",
			zap.Int("requested", p), zap.Int("tolerance", clamped))
	}
	g.cfg.TolerancePercent = clamped
	return clamped
}

// Threshold returns the lowest occurrence count still eligible when the
// most common continuation was seen highest times:
// floor(highest - highest*tolerance/100), never below 1.
func Threshold(highest, tolerancePercent int) int {
	t := int(math.Floor(float64(highest) - float64(highest)*float64(tolerancePercent)/100))
	if t < 1 {
		return 1
	}
	return t
}

// ChooseWordToFollow picks a successor of word. It returns Boundary and
// false when word is unknown or has no eligible successor.
func (g *Generator) ChooseWordToFollow(word string) (string, bool) {
	trailing, ok := g.model.Trailing(word)
	if !ok || len(trailing) == 0 {
		return adjacency.Boundary, false
	}

	buckets := make(map[int][]string)
	highest := 0
	for w, n := range trailing {
		buckets[n] = append(buckets[n], w)
		if n > highest {
			highest = n
		}
	}

	threshold := Threshold(highest, g.cfg.TolerancePercent)
	eligible := make([]int, 0, len(buckets))
	for n := range buckets {
		if n >= threshold {
			eligible = append(eligible, n)
		}
	}
	if len(eligible) == 0 {
		return adjacency.Boundary, false
	}

	// Map iteration order is random; sort so a seeded source is reproducible.
	sort.Ints(eligible)
	bucket := buckets[eligible[g.rng.IntN(len(eligible))]]
	sort.Strings(bucket)
	return bucket[g.rng.IntN(len(bucket))], true
}

// CreateSentence seeds with a random word and extends the chain up to
// maxLength words. A position whose attempts all fail is skipped, so the
// sentence may be shorter. Values of maxLength below 1 are treated as 1.
func (g *Generator) CreateSentence(maxLength int) (string, error) {
	words := g.model.Words()
	if len(words) == 0 {
		g.log.Warn("cannot create a sentence: the dictionary is empty")
		return "", ErrEmptyModel
	}
	if maxLength < 1 {
		maxLength = 1
	}

	last := words[g.rng.IntN(len(words))]
	sentence := []string{last}
	for i := 1; i < maxLength; i++ {
		for attempt := 0; attempt < g.cfg.MaxAttempts; attempt++ {
			next, ok := g.ChooseWordToFollow(last)
			if ok {
				sentence = append(sentence, next)
				last = next
				break
			}
		}
	}
	return finish(sentence), nil
}

// WriteText generates count sentences joined by newlines. Each sentence
// length is drawn uniformly from [MinWords, maxSentenceLength]; when
// maxSentenceLength is below MinWords every sentence uses
// maxSentenceLength (at least 1).
func (g *Generator) WriteText(count, maxSentenceLength int) (string, error) {
	if len(g.model.Words()) == 0 {
		g.log.Warn("cannot write text: the dictionary is empty")
		return "", ErrEmptyModel
	}

	sentences := make([]string, 0, max(count, 0))
	for i := 0; i < count; i++ {
		s, err := g.CreateSentence(g.sentenceLength(maxSentenceLength))
		if err != nil {
			return "", err
		}
		sentences = append(sentences, s)
	}
	return strings.Join(sentences, "\n"), nil
}

// WriteTextToFile writes the output of WriteText to path, replacing it.
func (g *Generator) WriteTextToFile(path string, count, maxSentenceLength int) error {
	text, err := g.WriteText(count, maxSentenceLength)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing text to %s: %w", path, err)
	}
	return nil
}

func (g *Generator) sentenceLength(hi int) int {
	lo := g.cfg.MinWords
	if hi < lo {
		if hi < 1 {
			return 1
		}
		return hi
	}
	return lo + g.rng.IntN(hi-lo+1)
}

// finish cleans each word, capitalizes the sentence, and ends it with a
// period. Words that clean down to nothing are dropped.
func finish(words []string) string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = cleanWord(w)
		if w == "" {
			continue
		}
		if w == "i" {
			w = "I"
		}
		out = append(out, w)
	}
	s := strings.Join(out, " ")
	if s != "" {
		s = strings.ToUpper(s[:1]) + s[1:]
	}
	return s + "."
}

// cleanWord drops non-ASCII runes and embedded newlines and tabs.
func cleanWord(w string) string {
	var b strings.Builder
	b.Grow(len(w))
	for _, r := range w {
		if r > unicode.MaxASCII || r == '\n' || r == '\t' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
