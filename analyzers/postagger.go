package analyzers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/pipeline"
	"github.com/tsawler/swtk/report"
	"github.com/tsawler/swtk/tokenize"
)

const posHelp = `Part of speech (POS) tagger. <ul><li>Counts occurrences of specific tags</li>` +
	`<li>Highlights verbs, modals, and adverbs.</li></ul>` +
	`POS tagging is not 100% accurate; the statistics and tags should be considered estimates.`

// Counter names written to the document.
const (
	StatVerbs = "verbs"
	StatNouns = "nouns"
)

var (
	posHighlight = map[string]string{
		"MD": "pos_modals", "VB": "pos_verb", "VBD": "pos_verb", "VBG": "pos_verb",
		"VBN": "pos_verb", "VBP": "pos_verb", "VBZ": "pos_verb", "RB": "pos_adverb",
	}

	posCounters = map[string]string{
		"VBG": "gerunds", "VBD": "verbs, past tense", "VBN": "verbs, past participle",
		"JJ": "adjectives", "IN": "preposition", "RB": "adverbs", "PRP": "personal pronoun",
		"MD": "modals", "JJR": "adjectives, comparative", "JJS": "adjectives, superlative",
	}

	posToggles = map[string]string{
		"modals": "pos_modals", StatVerbs: "pos_verb", "adverbs": "pos_adverb",
	}

	posStyles = []model.Style{
		model.HexStyle("pos_modals", "C5E9FF"),
		model.HexStyle("pos_verb", "F5E679"),
		model.HexStyle("pos_adverb", "F1C5FF"),
	}
)

// POSTagger tags every token of paragraph-counting blocks and counts
// verbs, nouns and a few other tag groups.
type POSTagger struct {
	pipeline.Base
	tagger   tokenize.Tagger
	counters map[string]int
}

// NewPOSTagger creates the part-of-speech analyzer. It uses the prose
// tagger unless the environment supplies another one.
func NewPOSTagger(env pipeline.Env) (pipeline.Analyzer, error) {
	tagger := env.Tagger
	if tagger == nil {
		tagger = tokenize.NewProseTagger()
	}
	return &POSTagger{
		Base:   pipeline.NewBase(IDPOSTagger, 2, pipeline.DocumentLevel),
		tagger: tagger,
	}, nil
}

// ProcessDocument tags all eligible tokens with a single tagger call.
func (p *POSTagger) ProcessDocument(doc *model.Document) error {
	var tokens []*model.Token
	for _, b := range doc.Blocks() {
		if !b.CountsAsParagraph() {
			continue
		}
		for _, s := range b.Sentences() {
			tokens = append(tokens, s.Tokens()...)
		}
	}

	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Text()
	}
	tags, err := p.tagger.Tag(words)
	if err != nil {
		return err
	}
	if len(tags) != len(tokens) {
		return fmt.Errorf("tagger returned %d tags for %d words", len(tags), len(tokens))
	}

	c := map[string]int{}
	for i, t := range tokens {
		tag := tags[i]
		t.SetTag(tag)
		if strings.HasPrefix(tag, "V") {
			c[StatVerbs]++
		}
		if strings.HasPrefix(tag, "N") {
			c[StatNouns]++
		}
		if name, ok := posCounters[tag]; ok {
			c[name]++
		}
		if class, ok := posHighlight[tag]; ok {
			t.Annotate(report.Hidden(class))
		}
	}

	for name, v := range c {
		doc.SetStat(name, float64(v))
	}
	p.counters = c
	return nil
}

func (p *POSTagger) Finalize(doc *model.Document) error {
	names := make([]string, 0, len(p.counters))
	for name := range p.counters {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := p.counters[names[i]], p.counters[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})

	summary := report.Sprintf("%d verbs, %d nouns", p.counters[StatVerbs], p.counters[StatNouns])
	r := model.NewReport("Part of Speech Tagger", posHelp, summary)
	r.Details = []model.Detail{}
	for _, name := range names {
		r.Details = append(r.Details, report.Toggle(report.Entry{Key: name, Count: p.counters[name]}.String(), posToggles[name]))
	}
	for _, s := range posStyles {
		r.AddStyle(s)
	}
	doc.AddReport(r)
	return nil
}
