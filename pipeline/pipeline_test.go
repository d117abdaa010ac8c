package pipeline

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/swtk/model"
)

// recorder records every call it receives in a shared log.
type recorder struct {
	Base
	log       *[]string
	finalized int
	failAt    string
	panicAt   string
}

func newRecorder(id string, prio int, caps Capability, log *[]string) *recorder {
	return &recorder{Base: NewBase(id, prio, caps), log: log}
}

func (p *recorder) record(event string) error {
	*p.log = append(*p.log, p.ID+":"+event)
	if p.panicAt == event {
		panic("boom")
	}
	if p.failAt == event {
		return errors.New("failed at " + event)
	}
	return nil
}

func (p *recorder) ProcessDocument(doc *model.Document) error {
	doc.SetStat(p.ID, 1)
	return p.record("document")
}

func (p *recorder) ProcessSentence(s *model.Sentence) error {
	s.Annotate("_" + p.ID)
	return p.record("sentence")
}

func (p *recorder) ProcessToken(t *model.Token) error {
	t.Annotate("_" + p.ID)
	return p.record("token")
}

func (p *recorder) Finalize(doc *model.Document) error {
	p.finalized++
	doc.AddReport(model.NewReport(p.ID, "", ""))
	return p.record("finalize")
}

func testDocument(sentences ...[]string) *model.Document {
	doc := model.NewDocument()
	var ss []*model.Sentence
	for _, words := range sentences {
		ss = append(ss, model.NewSentence(strings.Join(words, " "), words))
	}
	doc.AddBlock(model.NewParagraph("", ss))
	return doc
}

func TestCapability(t *testing.T) {
	c := DocumentLevel | TokenLevel
	if !c.Has(DocumentLevel) || c.Has(SentenceLevel) {
		t.Errorf("Has() wrong for %v", c)
	}
	if c.String() != "document|token" {
		t.Errorf("String() = %q, want %q", c.String(), "document|token")
	}
	if c.last() != TokenLevel {
		t.Errorf("last() = %v, want token", c.last())
	}
	if Capability(0).String() != "none" {
		t.Errorf("String() = %q, want none", Capability(0).String())
	}
}

type docOnly struct{ Base }

func (d *docOnly) ProcessDocument(*model.Document) error { return nil }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		a       Analyzer
		wantErr bool
	}{
		{"ok", &docOnly{NewBase("d", 0, DocumentLevel)}, false},
		{"none declared", &docOnly{NewBase("d", 0, 0)}, true},
		{"missing sentence method", &docOnly{NewBase("d", 0, DocumentLevel|SentenceLevel)}, true},
		{"all three", newRecorder("p", 0, DocumentLevel|SentenceLevel|TokenLevel, new([]string)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.a)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrCapability) {
				t.Errorf("Validate() error = %v, want ErrCapability", err)
			}
		})
	}
}

func TestFinalizeOnce(t *testing.T) {
	tests := []struct {
		name string
		doc  *model.Document
	}{
		{"zero sentences", model.NewDocument()},
		{"one sentence", testDocument([]string{"One", "sentence", "."})},
		{"many sentences", testDocument([]string{"A", "b", "."}, []string{"C", "d", "."}, []string{"E", "."})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			recorders := []*recorder{
				newRecorder("doc", 0, DocumentLevel, &log),
				newRecorder("sent", 0, SentenceLevel, &log),
				newRecorder("tok", 0, TokenLevel, &log),
				newRecorder("multi", 0, DocumentLevel|SentenceLevel|TokenLevel, &log),
			}
			var analyzers []Analyzer
			for _, p := range recorders {
				analyzers = append(analyzers, p)
			}
			NewRunner(analyzers...).Run(tt.doc)
			for _, p := range recorders {
				if p.finalized != 1 {
					t.Errorf("%s finalized %d times, want 1", p.ID, p.finalized)
				}
			}
		})
	}
}

func TestPhaseAndPriorityOrder(t *testing.T) {
	var log []string
	late := newRecorder("late", 10, DocumentLevel, &log)
	early := newRecorder("early", 1, DocumentLevel, &log)
	tieA := newRecorder("tieA", 5, SentenceLevel, &log)
	tieB := newRecorder("tieB", 5, SentenceLevel, &log)
	tok := newRecorder("tok", 0, TokenLevel, &log)

	doc := testDocument([]string{"Hello", "."})
	result := NewRunner(tok, late, tieA, early, tieB).Run(doc)

	want := []string{
		"early:document", "early:finalize",
		"late:document", "late:finalize",
		"tieA:sentence", "tieA:finalize",
		"tieB:sentence", "tieB:finalize",
		"tok:token", "tok:finalize",
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("call order = %v, want %v", log, want)
	}
	if got := result.Ran; !reflect.DeepEqual(got, []string{"early", "late", "tieA", "tieB", "tok"}) {
		t.Errorf("Ran = %v", got)
	}

	var reports []string
	for _, r := range doc.Reports() {
		reports = append(reports, r.Label)
	}
	if !reflect.DeepEqual(reports, result.Ran) {
		t.Errorf("reports = %v, want finalize order %v", reports, result.Ran)
	}
}

func TestMultiPhaseFinalizeAfterLastPhase(t *testing.T) {
	var log []string
	p := newRecorder("multi", 0, DocumentLevel|SentenceLevel, &log)
	NewRunner(p).Run(testDocument([]string{"A", "."}))

	want := []string{"multi:document", "multi:sentence", "multi:finalize"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("call order = %v, want %v", log, want)
	}
}

func TestTokenStoplist(t *testing.T) {
	var log []string
	p := newRecorder("tok", 0, TokenLevel, &log)
	doc := testDocument([]string{"Let", "$x$", "(", "grow", ")", "-", "fast", "!"})
	NewRunner(p).Run(doc)

	tokens := 0
	for _, e := range log {
		if e == "tok:token" {
			tokens++
		}
	}
	if tokens != 3 {
		t.Errorf("token calls = %d, want 3 (Let, grow, fast)", tokens)
	}
}

func TestFailureIsolation(t *testing.T) {
	tests := []struct {
		name    string
		caps    Capability
		setup   func(*recorder)
		phase   string
		isPanic bool
	}{
		{"error in sentence", DocumentLevel | SentenceLevel | TokenLevel, func(p *recorder) { p.failAt = "sentence" }, PhaseSentence, false},
		{"panic in sentence", DocumentLevel | SentenceLevel | TokenLevel, func(p *recorder) { p.panicAt = "sentence" }, PhaseSentence, true},
		{"error in finalize", TokenLevel, func(p *recorder) { p.failAt = "finalize" }, PhaseFinalize, false},
		{"panic in document", DocumentLevel | SentenceLevel | TokenLevel, func(p *recorder) { p.panicAt = "document" }, PhaseDocument, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []string
			bad := newRecorder("bad", 1, tt.caps, &log)
			tt.setup(bad)
			good := newRecorder("good", 2, DocumentLevel|SentenceLevel|TokenLevel, &log)

			doc := testDocument([]string{"One", "."}, []string{"Two", "."})
			result := NewRunner(bad, good).Run(doc)

			if len(result.Failures) != 1 {
				t.Fatalf("len(Failures) = %d, want 1", len(result.Failures))
			}
			f := result.Failures[0]
			if f.Analyzer != "bad" || f.Phase != tt.phase {
				t.Errorf("failure = %s/%s, want bad/%s", f.Analyzer, f.Phase, tt.phase)
			}
			if errors.Is(f.Err, ErrPanic) != tt.isPanic {
				t.Errorf("errors.Is(ErrPanic) = %v, want %v", !tt.isPanic, tt.isPanic)
			}
			if _, ok := doc.Stat("bad"); ok && tt.phase == PhaseDocument {
				t.Error("stat from failed document pass survived")
			}
			if !result.Failed("bad") || result.Failed("good") {
				t.Error("Failed() mismatch")
			}
			if good.finalized != 1 {
				t.Errorf("good finalized %d times, want 1", good.finalized)
			}
			for _, s := range doc.Sentences() {
				if s.HasAnnotation("_bad") {
					t.Errorf("sentence %q keeps annotation from failed analyzer", s.Text())
				}
				if !s.HasAnnotation("_good") {
					t.Errorf("sentence %q lost annotation from healthy analyzer", s.Text())
				}
				for _, tok := range s.Tokens() {
					if tok.HasAnnotation("_bad") {
						t.Errorf("token %q annotated after failure", tok.Text())
					}
				}
			}
			for _, r := range doc.Reports() {
				if r.Label == "bad" {
					t.Error("failed analyzer left a report")
				}
			}

			var ae *AnalyzerError
			if !errors.As(result.Err(), &ae) || ae.Analyzer != "bad" {
				t.Errorf("Err() = %v, want *AnalyzerError for bad", result.Err())
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	var log []string
	mk := func(id string, prio int) Factory {
		return func(env Env) (Analyzer, error) {
			return newRecorder(id, env.Options.Int("prio", prio), SentenceLevel, &log), nil
		}
	}
	r.MustRegister("b", mk("b", 1))
	r.MustRegister("a", mk("a", 2))
	r.MustRegister("c", mk("c", 3))

	if err := r.Register("a", mk("a", 0)); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Register() duplicate error = %v, want ErrDuplicate", err)
	}
	if got := r.IDs(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("IDs() = %v, want registration order", got)
	}

	ten := 10
	analyzers, err := r.Build(Env{Settings: map[string]Settings{
		"a": {Options: Options{"prio": 7}},
		"b": {Priority: &ten},
		"c": {Disabled: true},
	}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	var got []string
	for _, a := range analyzers {
		got = append(got, a.Name()+":"+strings.Repeat("*", a.Priority()))
	}
	want := []string{"b:" + strings.Repeat("*", 10), "a:" + strings.Repeat("*", 7)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
}

func TestRegistryBuildValidates(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("broken", func(Env) (Analyzer, error) {
		return &docOnly{NewBase("broken", 0, SentenceLevel)}, nil
	})
	if _, err := r.Build(Env{}); !errors.Is(err, ErrCapability) {
		t.Errorf("Build() error = %v, want ErrCapability", err)
	}
}

func TestOptions(t *testing.T) {
	o := Options{"n": 3, "f": 2.0, "s": "4", "bad": "x", "list": []any{"a", 1}}
	tests := []struct {
		key  string
		want int
	}{
		{"n", 3}, {"f", 2}, {"s", 4}, {"bad", 9}, {"missing", 9},
	}
	for _, tt := range tests {
		if got := o.Int(tt.key, 9); got != tt.want {
			t.Errorf("Int(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
	if got := o.Strings("list", nil); !reflect.DeepEqual(got, []string{"a", "1"}) {
		t.Errorf("Strings() = %v", got)
	}
}
