package analyzers

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/pipeline"
	"github.com/tsawler/swtk/report"
	"github.com/tsawler/swtk/tokenize"
)

// FilterWords marks vague and colloquial words and phrases. The advice
// for a phrase is attached to its first token as an alternative.
type FilterWords struct {
	pipeline.Base
	dictionary *FilterDictionary
	phrases    []string
	patterns   map[string][]string

	words map[string]bool
	found map[string]bool
	count int
}

// NewFilterWords creates the filter words analyzer.
func NewFilterWords(env pipeline.Env) (pipeline.Analyzer, error) {
	data := env.Resource(ResourceFilterWords)
	if data == nil {
		data = defaultFilterWords
	}
	dictionary, err := ParseFilterDictionary(data)
	if err != nil {
		return nil, err
	}
	tok := env.Tokenizer
	if tok == nil {
		tok = tokenize.New()
	}

	a := &FilterWords{
		Base:       pipeline.NewBase(IDFilterWords, 150, pipeline.SentenceLevel),
		dictionary: dictionary,
		phrases:    dictionary.PhraseList(),
		patterns:   map[string][]string{},
		words:      map[string]bool{},
		found:      map[string]bool{},
	}
	for _, p := range a.phrases {
		a.patterns[p] = tok.SplitWords(p, false)
	}
	return a, nil
}

func (a *FilterWords) ProcessSentence(s *model.Sentence) error {
	tokens := s.Tokens()
	lower := make([]string, len(tokens))
	for i, t := range tokens {
		w := t.Text()
		lower[i] = strings.ToLower(w)
		if utf8.RuneCountInString(w) > 1 && a.dictionary.IsWord(w) && plainWord(w) {
			a.words[lower[i]] = true
			t.Annotate(report.Hidden("filterWord"))
			a.count++
		}
	}

	text := strings.Join(lower, " ")
	for _, phrase := range a.phrases {
		if !strings.Contains(text, phrase) {
			continue
		}
		pattern := a.patterns[phrase]
		for _, start := range findSequence(lower, pattern) {
			a.found[phrase] = true
			tokens[start].AddAlternative(a.dictionary.Phrases[phrase])
			for _, t := range tokens[start : start+len(pattern)] {
				t.Annotate(report.Hidden("filterPhrase"))
			}
		}
	}
	return nil
}

// findSequence returns every index where pattern occurs in words.
func findSequence(words, pattern []string) []int {
	if len(pattern) == 0 {
		return nil
	}
	var starts []int
	for i := 0; i+len(pattern) <= len(words); i++ {
		if slices.Equal(words[i:i+len(pattern)], pattern) {
			starts = append(starts, i)
		}
	}
	return starts
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func (a *FilterWords) Finalize(doc *model.Document) error {
	var parts []string
	if len(a.words) > 0 {
		parts = append(parts, plural(len(a.words), "word"))
	}
	if len(a.found) > 0 {
		parts = append(parts, plural(len(a.found), "phrase"))
	}
	summary := strings.Join(parts, " and ")
	if summary == "" {
		summary = "No filter words"
	}

	r := model.NewReport("Filter words & phrases",
		"Finds vague and colloquial words and phrases typical for spoken language. If possible, offers an explanation or a substitute.",
		summary)
	for _, phrase := range a.phrases {
		if a.found[phrase] {
			r.AddDetail(fmt.Sprintf("%s - %s", phrase, a.dictionary.Phrases[phrase]), "")
		}
	}
	r.AddDetail(fmt.Sprintf("%d filter words", a.count), "")
	r.AddStyle(model.HexStyle("filterWord", "FF9494"))
	r.AddStyle(model.HexStyle("filterPhrase", "FF9494"))
	doc.AddReport(r)
	return nil
}
