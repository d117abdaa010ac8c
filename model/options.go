package model

import (
	"fmt"
	"strings"

	"github.com/tsawler/swtk/tokenize"
)

// MathMode controls how inline and standalone math is handled. The modes
// escalate: display implies inline.
type MathMode int

const (
	// MathOff masks inline math with a placeholder and drops equations.
	MathOff MathMode = iota
	// MathInline keeps $...$ spans as single tokens typeset by MathJax.
	MathInline
	// MathDisplay additionally keeps standalone equation environments.
	MathDisplay
)

func (m MathMode) String() string {
	switch m {
	case MathInline:
		return "inline"
	case MathDisplay:
		return "display"
	default:
		return "off"
	}
}

// Inline reports whether inline math spans are kept.
func (m MathMode) Inline() bool { return m >= MathInline }

// Display reports whether standalone equations are kept.
func (m MathMode) Display() bool { return m >= MathDisplay }

// ParseMathMode converts "off", "inline" or "display" to a MathMode.
func ParseMathMode(s string) (MathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none":
		return MathOff, nil
	case "inline":
		return MathInline, nil
	case "display":
		return MathDisplay, nil
	default:
		return MathOff, fmt.Errorf("unknown math mode %q", s)
	}
}

// ParseOptions is the configuration threaded through every format parser.
type ParseOptions struct {
	Math MathMode

	// IncludeFloats keeps figure and table captions as Float blocks.
	IncludeFloats bool

	// Tokenizer splits sentences and words. Nil means tokenize.New().
	Tokenizer tokenize.Tokenizer
}

// DefaultParseOptions returns options with math off, floats excluded and the
// default tokenizer.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Math:      MathOff,
		Tokenizer: tokenize.New(),
	}
}

// Tok returns the configured tokenizer or the default one.
func (o ParseOptions) Tok() tokenize.Tokenizer {
	if o.Tokenizer == nil {
		return tokenize.New()
	}
	return o.Tokenizer
}

// RenderOptions controls per-block HTML rendering.
type RenderOptions struct {
	Math MathMode
}

// Warning is a non-fatal problem found while parsing.
type Warning struct {
	Line    int // 1-indexed source line, 0 if unknown
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
