// Package format provides input and output format detection for swtk.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned when a file extension maps to no known format.
var ErrUnsupported = errors.New("unsupported format")

// Stdout is the output path that means "write to standard output".
const Stdout = "-"

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// Tex indicates a LaTeX source file.
	Tex
	// Markdown indicates a Markdown document.
	Markdown
	// Plaintext indicates a plain text document.
	Plaintext
	// HTML indicates an HTML report (output only).
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case Tex:
		return "LaTeX"
	case Markdown:
		return "Markdown"
	case Plaintext:
		return "Plaintext"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Tex:
		return ".tex"
	case Markdown:
		return ".md"
	case Plaintext:
		return ".txt"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// IsInput reports whether the format can be parsed.
func (f Format) IsInput() bool {
	return f == Tex || f == Markdown || f == Plaintext
}

// Detect determines the input format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".tex", ".ltx":
		return Tex
	case ".md", ".markdown":
		return Markdown
	case ".txt", ".text":
		return Plaintext
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// DetectInput is like Detect but fails with ErrUnsupported for anything the
// parsers cannot read.
func DetectInput(filename string) (Format, error) {
	f := Detect(filename)
	if !f.IsInput() {
		return Unknown, fmt.Errorf("input %q: %w", filename, ErrUnsupported)
	}
	return f, nil
}

// DetectOutput validates an output path. Only HTML files and Stdout are
// accepted.
func DetectOutput(filename string) (Format, error) {
	if filename == Stdout {
		return HTML, nil
	}
	if Detect(filename) != HTML {
		return Unknown, fmt.Errorf("output %q: %w", filename, ErrUnsupported)
	}
	return HTML, nil
}

// DefaultOutput returns the input path with its extension replaced by .html.
func DefaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + HTML.Extension()
}

// DetectFromContent guesses the format of text whose extension is missing
// or unknown. LaTeX is recognized by its preamble or sectioning commands,
// Markdown by ATX headings or fenced code. Everything else is Plaintext.
func DetectFromContent(data []byte) Format {
	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	if len(bytes.TrimSpace(head)) == 0 {
		return Unknown
	}

	for _, marker := range []string{`\documentclass`, `\begin{`, `\section{`, `\title{`} {
		if bytes.Contains(head, []byte(marker)) {
			return Tex
		}
	}

	for _, line := range bytes.Split(head, []byte("\n")) {
		line = bytes.TrimRight(line, "\r")
		if bytes.HasPrefix(line, []byte("```")) || bytes.HasPrefix(line, []byte("~~~")) {
			return Markdown
		}
		trimmed := bytes.TrimLeft(line, "#")
		if n := len(line) - len(trimmed); n >= 1 && n <= 5 && bytes.HasPrefix(trimmed, []byte(" ")) {
			return Markdown
		}
	}

	return Plaintext
}
