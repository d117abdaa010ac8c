package analyzers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/pipeline"
	"github.com/tsawler/swtk/report"
)

var numeric = regexp.MustCompile(`^[0-9.,]+$`)

// plainWord reports whether a token looks like prose: not a number and
// free of '_' and '$'.
func plainWord(text string) bool {
	return !numeric.MatchString(text) && !strings.ContainsAny(text, "_$")
}

// occurrences collects the tokens of each counted key.
type occurrences struct {
	counts map[string]int
	tokens map[string][]*model.Token
}

func newOccurrences() occurrences {
	return occurrences{counts: map[string]int{}, tokens: map[string][]*model.Token{}}
}

func (o occurrences) add(key string, t *model.Token) {
	o.counts[key]++
	o.tokens[key] = append(o.tokens[key], t)
}

// highlight ranks the keys, annotates their tokens with the hidden class of
// their rank and returns the ranking.
func (o occurrences) highlight(atLeast int, prefix string, p *report.Palette) []report.Classed {
	ranked := report.Classify(report.Rank(o.counts, atLeast), prefix, p)
	for _, c := range ranked {
		for _, t := range o.tokens[c.Key] {
			t.Annotate(report.Hidden(c.Class))
		}
	}
	return ranked
}

// rankedReport builds the report shared by the frequency analyzers. detail
// formats each entry's text.
func rankedReport(label, help, empty string, ranked []report.Classed, detail func(report.Classed) string) *model.Report {
	if len(ranked) == 0 {
		return model.NewReport(label, help, empty)
	}
	entries := make([]report.Entry, len(ranked))
	for i, c := range ranked {
		entries[i] = c.Entry
	}
	r := model.NewReport(label, help, report.Top(entries, 3))
	for _, c := range ranked {
		r.Details = append(r.Details, report.Toggle(detail(c), c.Class))
		r.AddStyle(c.Style)
	}
	return r
}

func entryText(c report.Classed) string { return c.Entry.String() }

// RareWords finds words outside the frequent-word dictionary that the text
// nevertheless uses often.
type RareWords struct {
	pipeline.Base
	dictionary Wordlist
	minLength  int
	minCount   int
	found      occurrences
}

// NewRareWords creates the rare words analyzer.
func NewRareWords(env pipeline.Env) (pipeline.Analyzer, error) {
	data := env.Resource(ResourceFrequentWords)
	if data == nil {
		data = defaultFrequentWords
	}
	dictionary, err := ParseWordlist(data)
	if err != nil {
		return nil, err
	}
	return &RareWords{
		Base:       pipeline.NewBase(IDRareWords, 100, pipeline.TokenLevel),
		dictionary: dictionary,
		minLength:  env.Options.Int("min_length", 5),
		minCount:   env.Options.Int("min_count", 6),
		found:      newOccurrences(),
	}, nil
}

func (a *RareWords) ProcessToken(t *model.Token) error {
	w := t.Text()
	if utf8.RuneCountInString(w) >= a.minLength && !a.dictionary.Contains(w) && plainWord(w) {
		a.found.add(w, t)
	}
	return nil
}

func (a *RareWords) Finalize(doc *model.Document) error {
	ranked := a.found.highlight(a.minCount, "rareWord", nil)
	doc.AddReport(rankedReport("Rare words",
		"Finds rare words that are frequently used in the manuscript. Rare words make the text harder to read; consider a more common synonym.",
		"No rare words found", ranked, entryText))
	return nil
}

var abbreviation = regexp.MustCompile(`^[A-Z]{2,5}$`)

// Abbreviations counts short all-capital words.
type Abbreviations struct {
	pipeline.Base
	minCount int
	found    occurrences
}

// NewAbbreviations creates the abbreviations analyzer.
func NewAbbreviations(env pipeline.Env) (pipeline.Analyzer, error) {
	return &Abbreviations{
		Base:     pipeline.NewBase(IDAbbreviations, 110, pipeline.TokenLevel),
		minCount: env.Options.Int("min_count", 2),
		found:    newOccurrences(),
	}, nil
}

func (a *Abbreviations) ProcessToken(t *model.Token) error {
	if abbreviation.MatchString(t.Text()) {
		a.found.add(t.Text(), t)
	}
	return nil
}

func (a *Abbreviations) Finalize(doc *model.Document) error {
	ranked := a.found.highlight(a.minCount, "abbrev", &report.AbbreviationPalette)
	doc.AddReport(rankedReport("Abbreviations", "Finds frequently used abbreviations, e.g., DCT, DWT.",
		"No abbreviations found", ranked, entryText))
	return nil
}

// Acronyms counts capital-letter acronyms and checks whether each one
// appears right after the words it abbreviates, as in "discrete cosine
// transform (DCT)".
type Acronyms struct {
	pipeline.Base
	maxLength int
	minCount  int
	pattern   *regexp.Regexp
	found     occurrences
	defined   map[string]bool
}

// NewAcronyms creates the acronyms analyzer.
func NewAcronyms(env pipeline.Env) (pipeline.Analyzer, error) {
	maxLength := env.Options.Int("max_length", 6)
	if maxLength < 2 {
		return nil, fmt.Errorf("acronym max_length %d is below 2", maxLength)
	}
	return &Acronyms{
		Base:      pipeline.NewBase(IDAcronyms, 110, pipeline.SentenceLevel),
		maxLength: maxLength,
		minCount:  env.Options.Int("min_count", 2),
		pattern:   regexp.MustCompile(fmt.Sprintf(`^[A-Z]{2,%d}$`, maxLength)),
		found:     newOccurrences(),
		defined:   map[string]bool{},
	}, nil
}

// acronymSkip lists joining words left out of an expansion.
var acronymSkip = map[string]bool{"and": true, "the": true, "for": true}

func (a *Acronyms) ProcessSentence(s *model.Sentence) error {
	var recent []string
	for _, t := range s.Tokens() {
		w := t.Text()
		if a.pattern.MatchString(w) {
			a.found.add(w, t)
			if len(recent) >= len(w) && initials(recent[len(recent)-len(w):]) == w {
				a.defined[w] = true
			}
		}
		lower := strings.ToLower(w)
		if utf8.RuneCountInString(w) > 2 && !acronymSkip[lower] {
			recent = append(recent, lower)
			if len(recent) > a.maxLength {
				recent = recent[1:]
			}
		}
	}
	return nil
}

func initials(words []string) string {
	var sb strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		sb.WriteString(strings.ToUpper(string(r)))
	}
	return sb.String()
}

func (a *Acronyms) Finalize(doc *model.Document) error {
	ranked := a.found.highlight(a.minCount, "acronym", &report.AbbreviationPalette)
	doc.AddReport(rankedReport("Acronyms",
		"Finds frequently used capital-letter acronyms (e.g., IEEE) and checks if they are explained in the text.",
		"No acronyms found", ranked, func(c report.Classed) string {
			if a.defined[c.Key] {
				return c.Entry.String()
			}
			return c.Entry.String() + " (possibly undefined)"
		}))
	return nil
}

var defaultWeakVerbs = []string{
	"am", "is", "are", "do", "does", "did", "didn't", "isn't", "don't",
	"doesn't", "have", "has", "been", "were", "weren't", "had",
}

// WeakVerbs marks overused verbs such as "to be", "to do" and "to have".
type WeakVerbs struct {
	pipeline.Base
	verbs Wordlist
	count int
}

// NewWeakVerbs creates the weak verbs analyzer.
func NewWeakVerbs(env pipeline.Env) (pipeline.Analyzer, error) {
	verbs := Wordlist{}
	for _, v := range env.Options.Strings("verbs", defaultWeakVerbs) {
		verbs[strings.ToLower(v)] = true
	}
	return &WeakVerbs{
		Base:  pipeline.NewBase(IDWeakVerbs, 110, pipeline.TokenLevel),
		verbs: verbs,
	}, nil
}

func (a *WeakVerbs) ProcessToken(t *model.Token) error {
	w := strings.ReplaceAll(t.Text(), "’", "'")
	if utf8.RuneCountInString(w) > 1 && a.verbs.Contains(w) && plainWord(w) {
		t.Annotate(report.Hidden("weakVerb"))
		a.count++
	}
	return nil
}

func (a *WeakVerbs) Finalize(doc *model.Document) error {
	summary := report.Sprintf("%d verbs", a.count)
	if verbs, _ := doc.Stat(StatVerbs); verbs > 0 {
		p, _ := report.Percent(float64(a.count), verbs)
		summary = report.Sprintf("%d of %d verbs (%s)", a.count, int(verbs), p)
	}
	r := model.NewReport("Weak verbs", "Finds weak, overused verbs like: to be, to do, to have.", summary)
	r.AddStyle(model.HexStyle("weakVerb", "FFFCA0"))
	doc.AddReport(r)
	return nil
}
