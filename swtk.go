// Package swtk provides a fluent API for analyzing scientific writing in
// LaTeX, Markdown and plain text files.
//
// Basic usage:
//
//	analysis, err := swtk.Open("paper.tex").Render(w)
//	if err != nil {
//	    // handle error
//	}
//	if len(analysis.Warnings) > 0 {
//	    log.Println("Warnings:", swtk.FormatWarnings(analysis.Warnings))
//	}
//
// With options:
//
//	doc, _, err := swtk.Open("paper.md").
//	    IncludeFloats().
//	    Math(model.MathInline).
//	    Document()
//
// The parser, pipeline and render packages are available for lower-level use.
package swtk

import (
	"io"

	"github.com/tsawler/swtk/format"
	"github.com/tsawler/swtk/model"
)

// Warning is a non-fatal problem found while parsing.
type Warning = model.Warning

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	return model.FormatWarnings(warnings)
}

// Open returns a Paper for the named file. The format follows the file
// extension.
//
// Example:
//
//	doc, warnings, err := swtk.Open("paper.tex").Document()
func Open(filename string) *Paper {
	a := &Paper{
		filename: filename,
		options:  defaultOptions(),
	}
	a.format, a.err = format.DetectInput(filename)
	return a
}

// FromReader returns a Paper reading from r. When f is format.Unknown
// the format is guessed from the content.
//
// Example:
//
//	doc, _, err := swtk.FromReader(os.Stdin, format.Markdown).Document()
func FromReader(r io.Reader, f format.Format) *Paper {
	return &Paper{
		reader:  r,
		format:  f,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	analysis := swtk.Must(swtk.Open("paper.md").Analyze())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDocument is a helper that wraps a call to Document() and panics if
// the error is non-nil. It discards warnings and returns just the document.
//
// Example:
//
//	doc := swtk.MustDocument(swtk.Open("paper.md").Document())
func MustDocument(doc *model.Document, _ []Warning, err error) *model.Document {
	if err != nil {
		panic(err)
	}
	return doc
}
