package tokenize

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseTagger tags words with the averaged perceptron model shipped with
// prose. Tags follow the Penn Treebank set.
type ProseTagger struct{}

// NewProseTagger creates a tagger backed by prose.
func NewProseTagger() *ProseTagger {
	return &ProseTagger{}
}

// Tag runs prose over the space-joined words and maps each prose token back
// to the word it starts in. When prose splits a word (e.g. "doesn't"), the
// first piece's tag is used.
func (p *ProseTagger) Tag(words []string) ([]string, error) {
	tags := make([]string, len(words))
	if len(words) == 0 {
		return tags, nil
	}

	text := strings.Join(words, " ")
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("tagging %d words: %w", len(words), err)
	}

	// Word start offsets in the joined text
	starts := make([]int, len(words))
	offset := 0
	for i, w := range words {
		starts[i] = offset
		offset += len(w) + 1
	}

	cursor, w := 0, 0
	for _, tok := range doc.Tokens() {
		idx := strings.Index(text[cursor:], tok.Text)
		if idx < 0 {
			continue
		}
		pos := cursor + idx
		cursor = pos + len(tok.Text)
		for w+1 < len(words) && starts[w+1] <= pos {
			w++
		}
		if tags[w] == "" {
			tags[w] = tok.Tag
		}
	}
	return tags, nil
}

// MapTagger tags words from a fixed lexicon. Lookups are tried with the word
// as given and then lowercased; unknown words get Fallback.
type MapTagger struct {
	Lexicon  map[string]string
	Fallback string
}

// Tag implements Tagger.
func (m MapTagger) Tag(words []string) ([]string, error) {
	tags := make([]string, len(words))
	for i, w := range words {
		if tag, ok := m.Lexicon[w]; ok {
			tags[i] = tag
		} else if tag, ok := m.Lexicon[strings.ToLower(w)]; ok {
			tags[i] = tag
		} else {
			tags[i] = m.Fallback
		}
	}
	return tags, nil
}
