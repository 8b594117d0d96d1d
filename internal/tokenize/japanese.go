// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tokenize provides tokenizers for text that whitespace cannot
// segment. Japanese uses the kagome morphological analyzer with the IPA
// dictionary.
package tokenize

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/pdiddy/mercer/internal/adjacency"
)

// posSymbol is the IPA part-of-speech tag for punctuation and spaces.
const posSymbol = "記号"

// Japanese segments text into morphemes. It implements adjacency.Tokenizer.
type Japanese struct {
	t     *tokenizer.Tokenizer
	strip string
}

var _ adjacency.Tokenizer = (*Japanese)(nil)

// NewJapanese loads the IPA dictionary. Latin tokens in mixed text are
// cleaned with strip the same way the whitespace tokenizer cleans them.
func NewJapanese(strip string) (*Japanese, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Japanese{t: t, strip: strip}, nil
}

// Sentences splits text at Japanese and Latin terminators and line breaks,
// then segments each sentence. Symbols and whitespace are not words.
func (j *Japanese) Sentences(text string) [][]string {
	var out [][]string
	for _, s := range strings.FieldsFunc(text, isTerminator) {
		if words := j.Words(s); len(words) > 0 {
			out = append(out, words)
		}
	}
	return out
}

// Words segments one sentence.
func (j *Japanese) Words(sentence string) []string {
	var words []string
	for _, tok := range j.t.Tokenize(sentence) {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		if pos := tok.POS(); len(pos) > 0 && pos[0] == posSymbol {
			continue
		}
		if w := adjacency.CleanToken(strings.TrimSpace(tok.Surface), j.strip); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func isTerminator(r rune) bool {
	switch r {
	case '。', '！', '？', '.', '!', '?', '\n', '\r':
		return true
	}
	return false
}
