package swtk

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/swtk/analyzers"
	"github.com/tsawler/swtk/config"
	"github.com/tsawler/swtk/format"
	"github.com/tsawler/swtk/internal/logging"
	"github.com/tsawler/swtk/mddoc"
	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/pipeline"
	"github.com/tsawler/swtk/render"
	"github.com/tsawler/swtk/texdoc"
	"github.com/tsawler/swtk/tokenize"
	"github.com/tsawler/swtk/txtdoc"
)

// Paper provides a fluent interface for parsing, analyzing and rendering a
// document. Each configuration method returns a new Paper, so a
// partially configured Paper can be reused.
type Paper struct {
	// Source
	filename string
	reader   io.Reader
	format   format.Format

	// Configuration
	options AnalyzeOptions

	// Accumulated error (fail-fast)
	err error
}

// Analysis is the outcome of a pipeline run.
type Analysis struct {
	Document *model.Document
	Warnings []Warning
	Result   *pipeline.Result
}

// clone creates a shallow copy of the Paper with a deep copy of options.
func (p *Paper) clone() *Paper {
	return &Paper{
		filename: p.filename,
		reader:   p.reader,
		format:   p.format,
		options:  p.options.clone(),
		err:      p.err,
	}
}

// IncludeFloats keeps figure and table captions as float blocks.
func (p *Paper) IncludeFloats() *Paper {
	newP := p.clone()
	newP.options.includeFloats = true
	return newP
}

// Math selects how math is parsed and rendered.
func (p *Paper) Math(mode model.MathMode) *Paper {
	newP := p.clone()
	newP.options.math = mode
	newP.options.mathSet = true
	return newP
}

// Tokenizer replaces the default sentence and word splitter.
func (p *Paper) Tokenizer(t tokenize.Tokenizer) *Paper {
	newP := p.clone()
	newP.options.tokenizer = t
	return newP
}

// Tagger replaces the part-of-speech tagger.
func (p *Paper) Tagger(t tokenize.Tagger) *Paper {
	newP := p.clone()
	newP.options.tagger = t
	return newP
}

// Disable turns off the named analyzers.
func (p *Paper) Disable(ids ...string) *Paper {
	newP := p.clone()
	for _, id := range ids {
		s := newP.options.settings[id]
		s.Disabled = true
		newP.options.settings[id] = s
	}
	return newP
}

// Only runs just the named analyzers.
func (p *Paper) Only(ids ...string) *Paper {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	var off []string
	for _, id := range analyzers.Default().IDs() {
		if !keep[id] {
			off = append(off, id)
		}
	}
	return p.Disable(off...)
}

// Config applies a loaded configuration: floats, math, analyzer settings,
// dictionaries and rendering. A math mode chosen with Math is kept whether it
// is set before or after Config. An invalid configuration fails every
// terminal operation.
func (p *Paper) Config(c *config.Config) *Paper {
	newP := p.clone()
	if newP.err != nil {
		return newP
	}
	if err := c.Validate(); err != nil {
		newP.err = err
		return newP
	}
	resources, err := c.LoadResources()
	if err != nil {
		newP.err = err
		return newP
	}
	renderOpts, err := c.RenderOptions()
	if err != nil {
		newP.err = err
		return newP
	}

	newP.options.includeFloats = newP.options.includeFloats || c.Floats
	if !newP.options.mathSet {
		newP.options.math = renderOpts.Math
	}
	newP.options.render = renderOpts
	newP.options.resources = resources
	for id, s := range c.AnalyzerSettings() {
		newP.options.settings[id] = s
	}
	return newP
}

// Document parses the source without running any analyzer.
//
// Example:
//
//	doc, warnings, err := swtk.Open("paper.tex").IncludeFloats().Document()
func (p *Paper) Document() (*model.Document, []Warning, error) {
	if p.err != nil {
		return nil, nil, p.err
	}

	data, name, err := p.read()
	if err != nil {
		return nil, nil, err
	}

	f := p.format
	if f == format.Unknown {
		f = format.DetectFromContent(data)
	}

	opts := p.options.parseOptions()
	r := bytes.NewReader(data)
	var (
		doc      *model.Document
		warnings []Warning
	)
	switch f {
	case format.Tex:
		doc, warnings, err = texdoc.OpenReader(r, opts)
	case format.Markdown:
		doc, warnings, err = mddoc.OpenReader(r, opts)
	case format.Plaintext:
		doc, warnings, err = txtdoc.OpenReader(r, opts)
	default:
		return nil, nil, fmt.Errorf("input %q: %w", name, format.ErrUnsupported)
	}
	if err != nil {
		return nil, warnings, fmt.Errorf("parsing %s: %w", name, err)
	}

	for _, w := range warnings {
		logging.ParseWarning(name, w.Line, w.Message)
	}
	return doc, warnings, nil
}

func (p *Paper) read() ([]byte, string, error) {
	if p.reader != nil {
		data, err := io.ReadAll(p.reader)
		if err != nil {
			return nil, "", fmt.Errorf("reading input: %w", err)
		}
		return data, "input", nil
	}
	if p.filename == "" {
		return nil, "", fmt.Errorf("no filename specified")
	}
	data, err := os.ReadFile(p.filename)
	if err != nil {
		return nil, "", fmt.Errorf("opening file: %w", err)
	}
	return data, p.filename, nil
}

// Analyze parses the source and runs the analyzer pipeline over it.
// Analyzer failures are contained and listed in Result; only parse and
// setup errors are returned.
func (p *Paper) Analyze() (*Analysis, error) {
	doc, warnings, err := p.Document()
	if err != nil {
		return nil, err
	}

	resources := p.options.resources
	if resources == nil {
		resources = analyzers.DefaultResources()
	}
	env := pipeline.Env{
		Tokenizer: p.options.parseOptions().Tok(),
		Tagger:    p.options.tagger,
		Resources: resources,
		Settings:  p.options.settings,
	}
	built, err := analyzers.Default().Build(env)
	if err != nil {
		return nil, err
	}

	result := pipeline.NewRunner(built...).Run(doc)
	return &Analysis{Document: doc, Warnings: warnings, Result: result}, nil
}

// Render analyzes the source and writes the HTML report to w.
//
// Example:
//
//	f, _ := os.Create("paper.html")
//	defer f.Close()
//	analysis, err := swtk.Open("paper.tex").Render(f)
func (p *Paper) Render(w io.Writer) (*Analysis, error) {
	analysis, err := p.Analyze()
	if err != nil {
		return nil, err
	}
	if err := render.New(p.options.renderOptions()).Render(w, analysis.Document); err != nil {
		return analysis, err
	}
	return analysis, nil
}
