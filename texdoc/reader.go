// Package texdoc parses LaTeX sources into a model.Document.
//
// Only the subset of LaTeX found in the body of a typical paper is
// understood: sectioning commands, the abstract, list environments, equation
// and float environments, and inline text macros. Everything else is either
// normalized away or the paragraph containing it is dropped.
package texdoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/tsawler/swtk/internal/blocks"
	"github.com/tsawler/swtk/internal/logging"
	"github.com/tsawler/swtk/model"
)

// replacements normalizes inline macros before sentence splitting. Order
// matters: placeholders first, then text styles, then escapes.
var replacements = []blocks.Replacement{
	blocks.R(`\\cite\w*(?:\[[^\]]*\])*\{[^}]+\}`, "[1]"),
	blocks.R(`\\ref\{[^}]+\}`, "2"),
	blocks.R(`\\eqref\{[^}]+\}`, "(3)"),
	blocks.R(`\\(?:emph|textbf|textit|mbox|paragraph)\{([^}]+)\}`, "${1}"),
	blocks.R(`\\label\{[^}]*\}`, ""),
	blocks.R(`\\proof`, ""),
	blocks.R(`\\qed`, ""),
	blocks.R(`\\noindent\s*`, ""),
	blocks.R(`\\begin\{equation\*?\}`, " $$"),
	blocks.R(`\\end\{equation\*?\}`, "$$. "),
	blocks.R(`\\(?:begin|end)\{(?:itemize|enumerate|description|center)\}`, ""),
}

// maskMath replaces inline math with a placeholder when math is off.
var maskMath = blocks.R(`(^|[^\\])\$[^$]*[^$\\]\$`, "${1}[Eq]")

var escapes = []blocks.Replacement{
	blocks.R(`\\%`, "%"),
	blocks.R(`\\\$`, "$$"),
	blocks.R(`\\([&#_])`, "${1}"),
}

var (
	acceptedCommand = regexp.MustCompile(`^\\(noindent|emph|textbf|textit|paragraph|cite|ref|eqref)`)
	itemSplit       = regexp.MustCompile(`\\item\b\s*(?:\[[^\]]*\]\s*)?`)
	sectioning      = regexp.MustCompile(`^\\(?:sub)*section\b`)
)

// Open parses a LaTeX file.
func Open(filename string, opts model.ParseOptions) (*model.Document, []model.Warning, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f, opts)
}

// OpenReader parses LaTeX from an io.Reader.
func OpenReader(r io.Reader, opts model.ParseOptions) (*model.Document, []model.Warning, error) {
	lines, err := blocks.ReadLines(r)
	if err != nil {
		return nil, nil, err
	}
	return Parse(lines, opts)
}

// Parse builds a document from LaTeX source lines. Unbalanced braces are
// fatal and reported as a *SyntaxError; problems with environments produce
// warnings and drop the affected block.
func Parse(lines []string, opts model.ParseOptions) (*model.Document, []model.Warning, error) {
	p := newParser(opts)
	if err := p.run(lines); err != nil {
		return nil, p.warnings, err
	}
	return p.doc, p.warnings, nil
}

// ReplacementTable returns the normalization table for the given math mode.
func ReplacementTable(math model.MathMode) []blocks.Replacement {
	table := append([]blocks.Replacement(nil), replacements...)
	if !math.Inline() {
		table = append(table, maskMath)
	}
	return append(table, escapes...)
}

type parser struct {
	doc      *model.Document
	build    *blocks.Builder
	opts     model.ParseOptions
	warnings []model.Warning

	pending  blocks.Pending
	line     int
	envEnd   string
	envLine  int
	hasTitle bool
	hasAuth  bool
}

func newParser(opts model.ParseOptions) *parser {
	return &parser{
		doc:   model.NewDocument(),
		build: blocks.New(opts, ReplacementTable(opts.Math)),
		opts:  opts,
	}
}

func (p *parser) warn(line int, format string, args ...any) {
	p.warnings = append(p.warnings, model.Warning{Line: line, Message: fmt.Sprintf(format, args...)})
}

func (p *parser) run(lines []string) error {
	for i, line := range lines {
		n := i + 1
		line = strings.TrimSpace(line)

		// Full-line comments are not blank lines
		if strings.HasPrefix(line, "%") {
			continue
		}
		if idx := findUnescapedPercent(line); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
			if line == "" {
				continue
			}
		}

		if line == "" {
			if p.envEnd == "" {
				if err := p.flush(); err != nil {
					return err
				}
			}
			continue
		}

		if p.envEnd == "" && isDocumentMarker(line) {
			if err := p.flush(); err != nil {
				return err
			}
			continue
		}

		if p.envEnd == "" && strings.HasPrefix(line, `\begin`) {
			if name := EnvironmentName(line); name != "" && name != "document" {
				// The environment starts a new paragraph
				if err := p.flush(); err != nil {
					return err
				}
				p.envEnd = `\end{` + name + `}`
				p.envLine = n
			}
		}

		// A complete sectioning command stands alone even without blank lines
		// around it.
		heading := p.envEnd == "" && sectioning.MatchString(line) && balanced(line)
		if heading {
			if err := p.flush(); err != nil {
				return err
			}
		}

		p.pending.Add(line, n)

		if heading {
			if err := p.flush(); err != nil {
				return err
			}
			continue
		}

		if p.envEnd != "" && strings.Contains(line, p.envEnd) {
			p.envEnd = ""
			if err := p.flush(); err != nil {
				return err
			}
		}
	}

	if p.envEnd != "" {
		p.warn(p.envLine, "%s never closed, block dropped: %v", strings.Replace(p.envEnd, `\end`, `\begin`, 1), ErrUnmatchedEnvironment)
		p.pending.Reset()
		return nil
	}
	return p.flush()
}

func balanced(line string) bool {
	return strings.Count(line, "{") == strings.Count(line, "}")
}

func isDocumentMarker(line string) bool {
	return strings.HasPrefix(line, `\begin{document}`) || strings.HasPrefix(line, `\end{document}`)
}

func (p *parser) flush() error {
	if p.pending.Empty() {
		return nil
	}
	body := p.pending.Text()
	line := p.pending.Line()
	p.line = line
	p.pending.Reset()

	if err := p.classify(body); err != nil {
		var envErr *envError
		if errors.As(err, &envErr) {
			p.warn(line, "%v, block dropped", envErr.err)
			return nil
		}
		return &SyntaxError{Line: line, Err: err}
	}
	return nil
}

// envError marks a recoverable environment problem.
type envError struct{ err error }

func (e *envError) Error() string { return e.err.Error() }
func (e *envError) Unwrap() error { return e.err }

func environment(body string) (string, error) {
	content, err := ExtractEnvironment(body)
	if err != nil {
		return "", &envError{err}
	}
	return content, nil
}

func (p *parser) classify(body string) error {
	if idx := strings.Index(body, `\title{`); !p.hasTitle && idx >= 0 {
		title, err := ParseCommand(body[idx:], true)
		if err != nil {
			return err
		}
		if title != "" {
			p.doc.Metadata.Title = title
			p.hasTitle = true
		}
	}
	if idx := authorIndex(body); !p.hasAuth && idx >= 0 {
		author, err := ParseCommand(body[idx:], true)
		if err != nil {
			return err
		}
		if author != "" {
			p.doc.Metadata.Author = author
			p.hasAuth = true
		}
	}

	switch {
	case strings.HasPrefix(body, `\section`):
		heading, err := ParseCommand(body, true)
		if err != nil {
			return err
		}
		if heading == "" {
			heading = "Appendix"
		}
		p.doc.AddBlock(p.build.Section(1, heading))

	case strings.HasPrefix(body, `\subsection`):
		return p.heading(2, body)

	case strings.HasPrefix(body, `\subsubsection`):
		return p.heading(3, body)

	case strings.HasPrefix(body, `\abstract`):
		text, err := ParseCommand(body, false)
		if err != nil {
			return err
		}
		if text == "" {
			return &envError{fmt.Errorf("empty abstract %q", preview(body))}
		}
		p.add(p.build.Paragraph("abstract", text))

	case strings.HasPrefix(body, `\begin{abstract}`):
		text, err := environment(body)
		if err != nil {
			return err
		}
		p.add(p.build.Paragraph("abstract", text))

	case strings.HasPrefix(body, `\begin{equation`):
		if !p.opts.Math.Display() {
			return nil
		}
		tex, err := environment(body)
		if err != nil {
			return err
		}
		p.doc.AddBlock(model.NewEquation(tex))

	case strings.HasPrefix(body, `\begin{figure`), strings.HasPrefix(body, `\begin{table`):
		if !p.opts.IncludeFloats {
			return nil
		}
		if _, err := environment(body); err != nil {
			return err
		}
		idx := strings.Index(body, `\caption{`)
		if idx < 0 {
			logging.Debug("float without caption skipped", "body", preview(body))
			return nil
		}
		caption, err := ParseCommand(body[idx:], false)
		if err != nil {
			return err
		}
		p.add(p.build.Float(caption))

	case strings.HasPrefix(body, `\begin{enumerate`), strings.HasPrefix(body, `\begin{itemize`):
		content, err := environment(body)
		if err != nil {
			return err
		}
		ordered := strings.HasPrefix(body, `\begin{enumerate`)
		p.add(p.build.Enumeration(ordered, itemSplit.Split(content, -1)))

	case !strings.HasPrefix(body, `\`) || acceptedCommand.MatchString(body):
		p.add(p.build.Paragraph("", p.dropStrayEnds(body)))

	case strings.HasPrefix(body, `\end{`):
		p.dropStrayEnds(body)

	default:
		logging.Debug("latex paragraph dropped", "body", preview(body))
	}
	return nil
}

var endCommand = regexp.MustCompile(`\\end\{([A-Za-z*]+)\}`)

// dropStrayEnds removes every \end{name} that has no \begin{name} in body,
// warning once for each. \end{document} is removed silently.
func (p *parser) dropStrayEnds(body string) string {
	return endCommand.ReplaceAllStringFunc(body, func(m string) string {
		name := endCommand.FindStringSubmatch(m)[1]
		switch {
		case name == "document":
			return ""
		case strings.Contains(body, `\begin{`+name+`}`):
			return m
		}
		p.warn(p.line, "stray %s dropped: %v", m, ErrUnmatchedEnvironment)
		return ""
	})
}

func authorIndex(body string) int {
	if idx := strings.Index(body, `\author{`); idx >= 0 {
		return idx
	}
	return strings.Index(body, `\name{`)
}

func (p *parser) heading(level int, body string) error {
	heading, err := ParseCommand(body, true)
	if err != nil {
		return err
	}
	if heading != "" {
		p.doc.AddBlock(p.build.Section(level, heading))
	}
	return nil
}

// add appends a block built by the builder, which returns typed nils for
// empty text.
func (p *parser) add(b model.Block) {
	switch v := b.(type) {
	case *model.Paragraph:
		if v == nil {
			return
		}
	case *model.Enumeration:
		if v == nil {
			return
		}
	case *model.Float:
		if v == nil {
			return
		}
	}
	p.doc.AddBlock(b)
}
