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

var simpleWord = regexp.MustCompile(`^\w+$`)

// percentOfSentences appends " (x%)" relative to the sentence count, when
// one is known.
func percentOfSentences(doc *model.Document, n int) string {
	total, _ := doc.Stat(StatSentences)
	if p, ok := report.Percent(float64(n), total); ok {
		return " (" + p + ")"
	}
	return ""
}

// SentenceLength marks sentences that are unusually long or short. Only
// sentences ending in '.', '?' or '!' are judged, which keeps headings and
// list fragments out.
type SentenceLength struct {
	pipeline.Base
	long, short int
	nLong       int
	nShort      int
}

// NewSentenceLength creates the sentence length analyzer.
func NewSentenceLength(env pipeline.Env) (pipeline.Analyzer, error) {
	return &SentenceLength{
		Base:  pipeline.NewBase(IDSentenceLength, 50, pipeline.SentenceLevel),
		long:  env.Options.Int("long", 35),
		short: env.Options.Int("short", 5),
	}, nil
}

// Words counts tokens longer than one character made of word characters.
func Words(s *model.Sentence) int {
	n := 0
	for _, t := range s.Tokens() {
		if utf8.RuneCountInString(t.Text()) > 1 && simpleWord.MatchString(t.Text()) {
			n++
		}
	}
	return n
}

func (a *SentenceLength) ProcessSentence(s *model.Sentence) error {
	last := s.Last()
	if last == nil {
		return nil
	}
	switch last.Text() {
	case ".", "?", "!":
	default:
		return nil
	}

	n := Words(s)
	switch {
	case n > a.long:
		s.Annotate(report.Hidden("longSentence"))
		a.nLong++
	case n < a.short:
		s.Annotate(report.Hidden("shortSentence"))
		a.nShort++
	}
	return nil
}

func (a *SentenceLength) Finalize(doc *model.Document) error {
	summary := fmt.Sprintf("%d long sentences%s", a.nLong, percentOfSentences(doc, a.nLong))
	r := model.NewReport("Sentence length", "", summary)
	r.Details = []model.Detail{}
	entries := report.Rank(map[string]int{
		"extra long sentences":  a.nLong,
		"extra short sentences": a.nShort,
	}, 1)
	for _, e := range entries {
		class := "longSentence"
		if strings.Contains(e.Key, "short") {
			class = "shortSentence"
		}
		r.Details = append(r.Details, report.Toggle(e.String(), class))
	}
	r.AddStyle(model.HexStyle("longSentence", "C7E1F7"))
	r.AddStyle(model.HexStyle("shortSentence", "D7FFD9"))
	doc.AddReport(r)
	return nil
}

// BuriedVerbs flags sentences whose first verb is far from the subject
// before it. Subjects are nouns longer than one character and personal
// pronouns; single-character tokens in between do not count toward the
// distance.
type BuriedVerbs struct {
	pipeline.Base
	threshold int
	count     int
}

// NewBuriedVerbs creates the buried verbs analyzer.
func NewBuriedVerbs(env pipeline.Env) (pipeline.Analyzer, error) {
	return &BuriedVerbs{
		Base:      pipeline.NewBase(IDBuriedVerbs, 75, pipeline.SentenceLevel),
		threshold: env.Options.Int("distance", 3),
	}, nil
}

func isSubject(t *model.Token) bool {
	tag := t.Tag()
	return (strings.HasPrefix(tag, "N") && utf8.RuneCountInString(t.Text()) > 1) || tag == "PRP"
}

func (a *BuriedVerbs) ProcessSentence(s *model.Sentence) error {
	tokens := s.Tokens()
	verb := -1
	for i, t := range tokens {
		if strings.HasPrefix(t.Tag(), "V") {
			verb = i
			break
		}
	}
	if verb < 0 {
		return nil
	}
	subject := -1
	for i := verb - 1; i >= 0; i-- {
		if isSubject(tokens[i]) {
			subject = i
			break
		}
	}
	if subject < 0 {
		return nil
	}

	distance := verb - subject
	for _, t := range tokens[subject+1 : verb] {
		if utf8.RuneCountInString(t.Text()) == 1 {
			distance--
		}
	}
	if distance <= a.threshold {
		return nil
	}

	tokens[subject].Annotate(report.Hidden("buriedVerbsSubject"))
	tokens[verb].Annotate(report.Hidden("buriedVerb"))
	s.Annotate(report.Hidden("buriedVerbSentence"))
	a.count++
	return nil
}

func (a *BuriedVerbs) Finalize(doc *model.Document) error {
	summary := fmt.Sprintf("%d difficult sentences%s", a.count, percentOfSentences(doc, a.count))
	r := model.NewReport("Buried verbs", "Finds sentences with potentially buried verbs (far away from the subject).", summary)
	r.AddDetail(fmt.Sprintf("Sentences with buried verbs: %d", a.count), "")
	r.AddStyle(model.PlainStyle("buriedVerbSentence"))
	r.AddStyle(model.PlainStyle("buriedVerb"))
	r.AddStyle(model.PlainStyle("buriedVerbsSubject"))
	doc.AddReport(r)
	return nil
}

var beForms = map[string]bool{"is": true, "are": true, "were": true, "was": true, "been": true, "be": true}

// PassiveVoice finds a form of "to be" directly followed by a past
// participle.
type PassiveVoice struct {
	pipeline.Base
	count int
}

// NewPassiveVoice creates the passive voice analyzer.
func NewPassiveVoice(env pipeline.Env) (pipeline.Analyzer, error) {
	return &PassiveVoice{Base: pipeline.NewBase(IDPassiveVoice, 160, pipeline.SentenceLevel)}, nil
}

func (a *PassiveVoice) ProcessSentence(s *model.Sentence) error {
	tokens := s.Tokens()
	var hits []int
	for i := 0; i+1 < len(tokens); i++ {
		if beForms[strings.ToLower(tokens[i].Text())] && tokens[i+1].Tag() == "VBN" {
			hits = append(hits, i)
		}
	}
	if len(hits) == 0 {
		return nil
	}
	s.Annotate(report.Hidden("passiveVoice"))
	a.count++
	for _, i := range hits {
		tokens[i].Annotate(report.Hidden("passiveVerb"))
		tokens[i+1].Annotate(report.Hidden("passiveVerb"))
	}
	return nil
}

// StatPassive is the statistic holding the passive sentence count.
const StatPassive = "passive voice sentences"

func (a *PassiveVoice) Finalize(doc *model.Document) error {
	summary := "1 sentence"
	if a.count != 1 {
		summary = fmt.Sprintf("%d sentences%s", a.count, percentOfSentences(doc, a.count))
	}
	r := model.NewReport("Passive voice sentences", "Finds sentences in passive voice.", summary)
	r.AddStyle(model.HexStyle("passiveVoice", "D0DEFF"))
	r.AddStyle(model.HexStyle("passiveVerb", "ECBFEC"))
	doc.AddReport(r)
	doc.SetStat(StatPassive, float64(a.count))
	return nil
}
