package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/swtk/model"
)

// ErrCapability is returned by Validate when an analyzer's declared
// capabilities do not match the processor interfaces it implements.
var ErrCapability = errors.New("capability mismatch")

// Capability is the set of granularities an analyzer processes.
type Capability uint8

const (
	DocumentLevel Capability = 1 << iota
	SentenceLevel
	TokenLevel
)

// Has reports whether every flag in f is set.
func (c Capability) Has(f Capability) bool { return c&f == f && f != 0 }

// last returns the final phase the capability set participates in.
func (c Capability) last() Capability {
	switch {
	case c.Has(TokenLevel):
		return TokenLevel
	case c.Has(SentenceLevel):
		return SentenceLevel
	case c.Has(DocumentLevel):
		return DocumentLevel
	}
	return 0
}

func (c Capability) String() string {
	var parts []string
	if c.Has(DocumentLevel) {
		parts = append(parts, "document")
	}
	if c.Has(SentenceLevel) {
		parts = append(parts, "sentence")
	}
	if c.Has(TokenLevel) {
		parts = append(parts, "token")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Analyzer is the contract every analyzer fulfils. Processing methods are
// declared by the separate processor interfaces below, selected through
// Capabilities.
type Analyzer interface {
	Name() string
	Priority() int
	Capabilities() Capability
	// Finalize runs exactly once, after the last phase the analyzer takes
	// part in. It is where reports are added.
	Finalize(doc *model.Document) error
}

// DocumentProcessor is called once with the whole document.
type DocumentProcessor interface {
	ProcessDocument(doc *model.Document) error
}

// SentenceProcessor is called for every sentence in document order.
type SentenceProcessor interface {
	ProcessSentence(s *model.Sentence) error
}

// TokenProcessor is called for every token outside the stoplist.
type TokenProcessor interface {
	ProcessToken(t *model.Token) error
}

// Base implements the bookkeeping half of Analyzer. Embed it and add the
// processor methods.
type Base struct {
	ID   string
	Prio int
	Caps Capability
}

// NewBase returns a Base with the given identity.
func NewBase(id string, priority int, caps Capability) Base {
	return Base{ID: id, Prio: priority, Caps: caps}
}

func (b *Base) Name() string                       { return b.ID }
func (b *Base) Priority() int                      { return b.Prio }
func (b *Base) Capabilities() Capability           { return b.Caps }
func (b *Base) Finalize(doc *model.Document) error { return nil }

// SetPriority overrides the declared priority.
func (b *Base) SetPriority(p int) { b.Prio = p }

// Validate checks that an analyzer declares at least one capability and
// implements the processor interface behind each declared flag.
func Validate(a Analyzer) error {
	caps := a.Capabilities()
	if caps == 0 {
		return fmt.Errorf("%s: no capabilities declared: %w", a.Name(), ErrCapability)
	}
	if caps.Has(DocumentLevel) {
		if _, ok := a.(DocumentProcessor); !ok {
			return fmt.Errorf("%s: declares document level without ProcessDocument: %w", a.Name(), ErrCapability)
		}
	}
	if caps.Has(SentenceLevel) {
		if _, ok := a.(SentenceProcessor); !ok {
			return fmt.Errorf("%s: declares sentence level without ProcessSentence: %w", a.Name(), ErrCapability)
		}
	}
	if caps.Has(TokenLevel) {
		if _, ok := a.(TokenProcessor); !ok {
			return fmt.Errorf("%s: declares token level without ProcessToken: %w", a.Name(), ErrCapability)
		}
	}
	return nil
}

// stoplist holds the punctuation tokens skipped by the token phase.
var stoplist = map[string]bool{
	".": true, ",": true, ";": true, "[": true, "]": true,
	"(": true, ")": true, "-": true, "$": true, "!": true, "?": true,
}

// IsStopToken reports whether the token phase skips a token: stoplisted
// punctuation and inline math.
func IsStopToken(t *model.Token) bool {
	return stoplist[t.Text()] || t.IsMath()
}

// IsPunctuation reports whether text is one of the stoplisted punctuation
// marks.
func IsPunctuation(text string) bool { return stoplist[text] }
