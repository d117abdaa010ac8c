package tokenize

import "strings"

// Tokenizer splits normalized prose into sentences and sentences into words.
// Implementations must be deterministic for a fixed input.
type Tokenizer interface {
	// SplitSentences returns the raw sentence substrings of text in order.
	SplitSentences(text string) []string

	// SplitWords returns the word tokens of a sentence. With math enabled a
	// $...$ span becomes a single token.
	SplitWords(text string, math bool) []string
}

// Tagger assigns a part-of-speech tag to each word. The result has the same
// length as the input.
type Tagger interface {
	Tag(words []string) ([]string, error)
}

// Default is the built-in rule-based tokenizer.
type Default struct {
	abbreviations map[string]bool
}

// New creates the default tokenizer.
func New() *Default {
	abbr := make(map[string]bool, len(defaultAbbreviations))
	for _, a := range defaultAbbreviations {
		abbr[a] = true
	}
	return &Default{abbreviations: abbr}
}

// WithAbbreviations returns a copy of the tokenizer that also treats the
// given words (with trailing period, case-insensitive) as abbreviations.
func (d *Default) WithAbbreviations(words ...string) *Default {
	abbr := make(map[string]bool, len(d.abbreviations)+len(words))
	for k := range d.abbreviations {
		abbr[k] = true
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if !strings.HasSuffix(w, ".") {
			w += "."
		}
		abbr[w] = true
	}
	return &Default{abbreviations: abbr}
}

// SplitWords splits a sentence into words using the lexer rules.
func (d *Default) SplitWords(text string, math bool) []string {
	return splitWords(text, math)
}
