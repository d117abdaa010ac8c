package analyzers

import (
	"bufio"
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Resource names looked up in pipeline.Env.Resources.
const (
	ResourceFrequentWords = "frequent_words"
	ResourceFilterWords   = "filter_words"
	ResourceGuidelines    = "guidelines"
)

var (
	//go:embed data/frequent_words.txt
	defaultFrequentWords []byte

	//go:embed data/filter_words.json
	defaultFilterWords []byte

	//go:embed data/guidelines.html
	defaultGuidelines []byte
)

// DefaultResources returns the embedded dictionaries and guidelines.
func DefaultResources() map[string][]byte {
	return map[string][]byte{
		ResourceFrequentWords: defaultFrequentWords,
		ResourceFilterWords:   defaultFilterWords,
		ResourceGuidelines:    defaultGuidelines,
	}
}

// Wordlist is a read-only set of lowercase words.
type Wordlist map[string]bool

// ParseWordlist reads one word per line. Blank lines and lines starting
// with '#' are ignored.
func ParseWordlist(data []byte) (Wordlist, error) {
	words := Wordlist{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words[strings.ToLower(line)] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return words, nil
}

// Contains reports whether the lowercased word is in the list.
func (w Wordlist) Contains(word string) bool {
	return w[strings.ToLower(word)]
}

// FilterDictionary lists filter words and phrases with advice for each
// phrase.
type FilterDictionary struct {
	Words   []string          `json:"words"`
	Phrases map[string]string `json:"phrases"`

	words Wordlist
}

// ParseFilterDictionary decodes {"words": [...], "phrases": {phrase: advice}}.
func ParseFilterDictionary(data []byte) (*FilterDictionary, error) {
	var d FilterDictionary
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing filter dictionary: %w", err)
	}
	d.words = Wordlist{}
	for _, w := range d.Words {
		d.words[strings.ToLower(w)] = true
	}
	phrases := make(map[string]string, len(d.Phrases))
	for p, advice := range d.Phrases {
		phrases[strings.ToLower(p)] = advice
	}
	d.Phrases = phrases
	return &d, nil
}

// IsWord reports whether word is a filter word.
func (d *FilterDictionary) IsWord(word string) bool {
	return d.words.Contains(word)
}

// PhraseList returns the phrases in sorted order.
func (d *FilterDictionary) PhraseList() []string {
	phrases := make([]string, 0, len(d.Phrases))
	for p := range d.Phrases {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)
	return phrases
}
