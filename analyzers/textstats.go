package analyzers

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/pipeline"
	"github.com/tsawler/swtk/report"
	"github.com/tsawler/swtk/tokenize"
)

// Statistic names written to the document.
const (
	StatCharacters         = "characters"
	StatPages              = "begun pages (1,500 chars)"
	StatNonSpace           = "non-space characters"
	StatParagraphs         = "paragraphs"
	StatSentences          = "sentences"
	StatWords              = "words"
	StatUniqueWords        = "unique words"
	StatAbstractWords      = "words (abstract)"
	StatAbstractCharacters = "non-space characters (abstract)"
)

const charsPerPage = 1500

// TextStats counts characters, words, sentences and paragraphs.
type TextStats struct {
	pipeline.Base
	tok      tokenize.Tokenizer
	counters map[string]int
}

// NewTextStats creates the text statistics analyzer.
func NewTextStats(env pipeline.Env) (pipeline.Analyzer, error) {
	tok := env.Tokenizer
	if tok == nil {
		tok = tokenize.New()
	}
	return &TextStats{
		Base: pipeline.NewBase(IDTextStats, 1, pipeline.DocumentLevel),
		tok:  tok,
	}, nil
}

func (s *TextStats) ProcessDocument(doc *model.Document) error {
	c := map[string]int{}
	text := doc.PlainText()
	c[StatCharacters] = utf8.RuneCountInString(text)
	c[StatPages] = int(math.Ceil(float64(c[StatCharacters]) / charsPerPage))
	c[StatNonSpace] = nonSpace(text)
	c[StatParagraphs] = doc.ParagraphCount()

	unique := map[string]bool{}
	for _, sentence := range doc.Sentences() {
		c[StatSentences]++
		for _, t := range sentence.Tokens() {
			if pipeline.IsPunctuation(t.Text()) {
				continue
			}
			c[StatWords]++
			unique[t.Text()] = true
		}
	}
	c[StatUniqueWords] = len(unique)

	abstract := doc.Abstract()
	for _, w := range s.tok.SplitWords(abstract, false) {
		if !pipeline.IsPunctuation(w) {
			c[StatAbstractWords]++
		}
	}
	c[StatAbstractCharacters] = nonSpace(abstract)

	for name, v := range c {
		doc.SetStat(name, float64(v))
	}
	s.counters = c
	return nil
}

func nonSpace(text string) int {
	return utf8.RuneCountInString(text) - strings.Count(text, " ")
}

func (s *TextStats) Finalize(doc *model.Document) error {
	names := make([]string, 0, len(s.counters))
	for name := range s.counters {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := s.counters[names[i]], s.counters[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})

	r := model.NewReport("Statistics", "", report.Sprintf("%d chars, %d words", s.counters[StatCharacters], s.counters[StatWords]))
	for _, name := range names {
		r.AddDetail(report.Entry{Key: name, Count: s.counters[name]}.String(), "")
	}
	doc.AddReport(r)
	return nil
}
