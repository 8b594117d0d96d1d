// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adjacency

import (
	"strings"
)

// Tokenizer splits a block of text into sentences of cleaned, case-folded
// words. Implementations must never return empty words.
type Tokenizer interface {
	Sentences(text string) [][]string
}

// WhitespaceTokenizer splits sentences on '.', '?' and '!', words on
// whitespace, and trims a configurable cutset from both ends of each word.
type WhitespaceTokenizer struct {
	strip string
}

// NewWhitespaceTokenizer returns a tokenizer that trims the runes in strip
// from each token.
func NewWhitespaceTokenizer(strip string) *WhitespaceTokenizer {
	return &WhitespaceTokenizer{strip: strip}
}

// Sentences implements Tokenizer. Sentences that clean down to no words are
// dropped.
func (t *WhitespaceTokenizer) Sentences(text string) [][]string {
	var out [][]string
	for _, s := range SplitSentences(text) {
		if words := t.Words(s); len(words) > 0 {
			out = append(out, words)
		}
	}
	return out
}

// Words tokenizes a single sentence.
func (t *WhitespaceTokenizer) Words(sentence string) []string {
	fields := strings.Fields(sentence)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := CleanToken(f, t.strip); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// SplitSentences breaks text at every '.', '?' or '!'. Runs of terminators
// and blank fragments produce no sentence.
func SplitSentences(text string) []string {
	parts := strings.FieldsFunc(text, isSentenceEnd)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}

// CleanToken trims the runes in strip from both ends of tok and folds it to
// lower case.
func CleanToken(tok, strip string) string {
	return strings.ToLower(strings.Trim(tok, strip))
}
