package analyzers

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/pipeline"
	"github.com/tsawler/swtk/report"
)

// NGrams finds word sequences of a fixed length that occur often. Only
// sequences whose every word is at least minChars long are counted, so
// punctuation and short function words never form an n-gram.
type NGrams struct {
	pipeline.Base
	n        int
	label    string
	noun     string
	prefix   string
	minFreq  int
	minChars int
	palette  *report.Palette

	ranked []report.Classed
}

// NewBigrams creates the bigram analyzer.
func NewBigrams(env pipeline.Env) (pipeline.Analyzer, error) {
	return &NGrams{
		Base:     pipeline.NewBase(IDBigrams, 101, pipeline.DocumentLevel),
		n:        2,
		label:    "Bigrams",
		noun:     "bigrams",
		prefix:   "bigram",
		minFreq:  env.Options.Int("min_frequency", 5),
		minChars: env.Options.Int("min_chars", 4),
		palette:  &report.BigramPalette,
	}, nil
}

// NewTrigrams creates the trigram analyzer.
func NewTrigrams(env pipeline.Env) (pipeline.Analyzer, error) {
	return &NGrams{
		Base:     pipeline.NewBase(IDTrigrams, 101, pipeline.DocumentLevel),
		n:        3,
		label:    "Trigrams",
		noun:     "trigrams",
		prefix:   "trigram",
		minFreq:  env.Options.Int("min_frequency", 3),
		minChars: env.Options.Int("min_chars", 4),
		palette:  &report.TrigramPalette,
	}, nil
}

// key returns the lowercased n-gram starting at i, or "" when one of its
// words is too short.
func (g *NGrams) key(tokens []*model.Token, i int) string {
	words := make([]string, g.n)
	for j := 0; j < g.n; j++ {
		w := strings.ToLower(tokens[i+j].Text())
		if utf8.RuneCountInString(w) < g.minChars {
			return ""
		}
		words[j] = w
	}
	return strings.Join(words, " ")
}

func (g *NGrams) ProcessDocument(doc *model.Document) error {
	counts := map[string]int{}
	sentences := doc.Sentences()
	for _, s := range sentences {
		tokens := s.Tokens()
		for i := 0; i+g.n <= len(tokens); i++ {
			if k := g.key(tokens, i); k != "" {
				counts[k]++
			}
		}
	}

	g.ranked = report.Classify(report.Rank(counts, g.minFreq), g.prefix, g.palette)
	classes := make(map[string]string, len(g.ranked))
	for _, c := range g.ranked {
		classes[c.Key] = report.Hidden(c.Class)
	}

	for _, s := range sentences {
		tokens := s.Tokens()
		for i := 0; i+g.n <= len(tokens); i++ {
			class, ok := classes[g.key(tokens, i)]
			if !ok {
				continue
			}
			for j := 0; j < g.n; j++ {
				tokens[i+j].Annotate(class)
			}
		}
	}
	return nil
}

func (g *NGrams) Finalize(doc *model.Document) error {
	help := fmt.Sprintf("Frequently occurring (at least %d times) %s of words.", g.minFreq, map[int]string{2: "pairs", 3: "triples"}[g.n])
	if len(g.ranked) == 0 {
		doc.AddReport(model.NewReport(g.label, help, "No frequent "+g.noun))
		return nil
	}

	summary := fmt.Sprintf("%d popular %s: %s, ...", len(g.ranked), g.noun, g.ranked[0].Key)
	r := model.NewReport(g.label, help, summary)
	for _, c := range g.ranked {
		r.Details = append(r.Details, report.Toggle(c.Entry.String(), c.Class))
		r.AddStyle(c.Style)
	}
	doc.AddReport(r)
	return nil
}
