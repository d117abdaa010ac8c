package pipeline

import (
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"time"

	"github.com/tsawler/swtk/internal/logging"
	"github.com/tsawler/swtk/model"
)

// ErrPanic marks a failure caused by a recovered panic.
var ErrPanic = errors.New("analyzer panicked")

// Phase names used in failures and logs.
const (
	PhaseDocument = "document"
	PhaseSentence = "sentence"
	PhaseToken    = "token"
	PhaseFinalize = "finalize"
)

// AnalyzerError is the error form of a Failure.
type AnalyzerError struct {
	Analyzer string
	Phase    string
	Err      error
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("analyzer %s failed in %s phase: %v", e.Analyzer, e.Phase, e.Err)
}

func (e *AnalyzerError) Unwrap() error { return e.Err }

// Failure records an analyzer that was isolated after an error or panic.
type Failure struct {
	Analyzer string
	Phase    string
	Err      error
}

// Result summarizes a pipeline run.
type Result struct {
	// Ran lists the analyzers that completed, in execution order.
	Ran      []string
	Failures []Failure
}

// Failed reports whether the named analyzer failed.
func (r *Result) Failed(name string) bool {
	for _, f := range r.Failures {
		if f.Analyzer == name {
			return true
		}
	}
	return false
}

// Err joins every failure into one error, or returns nil.
func (r *Result) Err() error {
	var errs []error
	for _, f := range r.Failures {
		errs = append(errs, &AnalyzerError{Analyzer: f.Analyzer, Phase: f.Phase, Err: f.Err})
	}
	return errors.Join(errs...)
}

// Runner executes analyzers in three phases: document, sentence, token.
// Within a phase analyzers run one after another, ordered by ascending
// priority with ties kept in the order they were given.
type Runner struct {
	analyzers []Analyzer
}

// NewRunner creates a runner. The argument order is the discovery order.
func NewRunner(analyzers ...Analyzer) *Runner {
	ordered := append([]Analyzer(nil), analyzers...)
	slices.SortStableFunc(ordered, func(a, b Analyzer) int {
		return a.Priority() - b.Priority()
	})
	return &Runner{analyzers: ordered}
}

// Analyzers returns the analyzers in execution order.
func (r *Runner) Analyzers() []Analyzer {
	return append([]Analyzer(nil), r.analyzers...)
}

// Run executes the pipeline over doc. A failing analyzer is rolled back to
// the state before its pass, its remaining phases are skipped, and the
// failure is recorded; the other analyzers are not affected.
func (r *Runner) Run(doc *model.Document) *Result {
	run := &state{doc: doc, failed: map[Analyzer]bool{}, result: &Result{}}

	for _, a := range r.analyzers {
		if !a.Capabilities().Has(DocumentLevel) {
			continue
		}
		p, ok := a.(DocumentProcessor)
		if !ok {
			run.fail(a, PhaseDocument, fmt.Errorf("missing DocumentProcessor: %w", ErrCapability))
			continue
		}
		run.pass(a, DocumentLevel, PhaseDocument, func() error {
			return p.ProcessDocument(doc)
		})
	}

	sentences := doc.Sentences()
	for _, a := range r.analyzers {
		if !a.Capabilities().Has(SentenceLevel) || run.failed[a] {
			continue
		}
		p, ok := a.(SentenceProcessor)
		if !ok {
			run.fail(a, PhaseSentence, fmt.Errorf("missing SentenceProcessor: %w", ErrCapability))
			continue
		}
		run.pass(a, SentenceLevel, PhaseSentence, func() error {
			for _, s := range sentences {
				if err := p.ProcessSentence(s); err != nil {
					return err
				}
			}
			return nil
		})
	}

	tokens := eligibleTokens(sentences)
	for _, a := range r.analyzers {
		if !a.Capabilities().Has(TokenLevel) || run.failed[a] {
			continue
		}
		p, ok := a.(TokenProcessor)
		if !ok {
			run.fail(a, PhaseToken, fmt.Errorf("missing TokenProcessor: %w", ErrCapability))
			continue
		}
		run.pass(a, TokenLevel, PhaseToken, func() error {
			for _, t := range tokens {
				if err := p.ProcessToken(t); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return run.result
}

func eligibleTokens(sentences []*model.Sentence) []*model.Token {
	var tokens []*model.Token
	for _, s := range sentences {
		for _, t := range s.Tokens() {
			if !IsStopToken(t) {
				tokens = append(tokens, t)
			}
		}
	}
	return tokens
}

type state struct {
	doc    *model.Document
	failed map[Analyzer]bool
	result *Result
}

// pass runs one phase of an analyzer, followed by Finalize when it is the
// analyzer's last phase. The document is checkpointed first and restored if
// anything fails.
func (r *state) pass(a Analyzer, level Capability, phase string, process func() error) {
	cp := r.doc.Checkpoint()
	start := time.Now()
	last := a.Capabilities().last() == level

	current := phase
	err := safeCall(func() error {
		if err := process(); err != nil {
			return err
		}
		if last {
			current = PhaseFinalize
			return a.Finalize(r.doc)
		}
		return nil
	})

	if err != nil {
		cp.Restore()
		r.fail(a, current, err)
		return
	}

	logging.AnalyzerRun(a.Name(), phase, time.Since(start))
	if last {
		r.result.Ran = append(r.result.Ran, a.Name())
	}
}

func (r *state) fail(a Analyzer, phase string, err error) {
	r.failed[a] = true
	r.result.Failures = append(r.result.Failures, Failure{Analyzer: a.Name(), Phase: phase, Err: err})
	logging.AnalyzerFailure(a.Name(), phase, err)
}

func safeCall(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Debug("analyzer panic stack", "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()
	return fn()
}
