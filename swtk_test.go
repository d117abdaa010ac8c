package swtk

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/tsawler/swtk/analyzers"
	"github.com/tsawler/swtk/config"
	"github.com/tsawler/swtk/format"
	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/render"
	"github.com/tsawler/swtk/tokenize"
)

var testTagger = tokenize.MapTagger{
	Lexicon:  map[string]string{"were": "VBD", "obtained": "VBN", "is": "VBZ"},
	Fallback: "NN",
}

const latexPaper = `\documentclass{article}
\title{Writing Study}
\begin{document}
\maketitle

\section{Introduction}
The IEEE standard is used. We follow IEEE rules here.
The IEEE group agrees and the results were obtained.

\begin{itemize}
\item first point
\item second point
\end{itemize}
\end{document}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	// Unsupported extension
	_, _, err := Open("paper.docx").Document()
	if !errors.Is(err, format.ErrUnsupported) {
		t.Errorf("Open(docx) error = %v, want ErrUnsupported", err)
	}

	// Non-existent file
	_, _, err = Open(filepath.Join(t.TempDir(), "missing.tex")).Document()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestDocumentFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"latex", "a.tex", "\\section{Intro}\nSome text here.\n", "Intro\n\nSome text here."},
		{"markdown", "a.md", "# Intro\n\nSome *text* here.\n", "Intro\n\nSome text here."},
		{"plaintext", "a.txt", "Intro\n\nSome text here.\n", "Intro\n\nSome text here."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _, err := Open(writeFile(t, tt.file, tt.content)).Document()
			if err != nil {
				t.Fatalf("Document() error = %v", err)
			}
			if got := doc.PlainText(); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromReaderDetectsFormat(t *testing.T) {
	doc, _, err := FromReader(strings.NewReader(latexPaper), format.Unknown).Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.Metadata.Title != "Writing Study" {
		t.Errorf("Title = %q, want Writing Study", doc.Metadata.Title)
	}

	_, _, err = FromReader(strings.NewReader("  \n"), format.Unknown).Document()
	if !errors.Is(err, format.ErrUnsupported) {
		t.Errorf("empty input error = %v, want ErrUnsupported", err)
	}
}

func TestOptionsImmutable(t *testing.T) {
	base := Open("paper.tex")
	floats := base.IncludeFloats().Math(model.MathInline).Disable(analyzers.IDBigrams)

	if base.options.includeFloats || base.options.math != model.MathOff {
		t.Error("configuring a derived Paper changed the base")
	}
	if len(base.options.settings) != 0 {
		t.Errorf("base settings = %v", base.options.settings)
	}
	if !floats.options.includeFloats || !floats.options.settings[analyzers.IDBigrams].Disabled {
		t.Error("derived Paper lost its options")
	}
}

func TestAnalyze(t *testing.T) {
	analysis, err := FromReader(strings.NewReader(latexPaper), format.Tex).Tagger(testTagger).Analyze()
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if err := analysis.Result.Err(); err != nil {
		t.Fatalf("pipeline failures: %v", err)
	}

	var abbrev *model.Report
	for _, r := range analysis.Document.Reports() {
		if r.Label == "Abbreviations" {
			abbrev = r
		}
	}
	if abbrev == nil || len(abbrev.Details) != 1 || abbrev.Details[0].Text != "IEEE : 3" {
		t.Fatalf("Abbreviations report = %v", abbrev)
	}

	if n, _ := analysis.Document.Stat(analyzers.StatPassive); n != 1 {
		t.Errorf("passive sentences = %v, want 1", n)
	}
}

func TestOnly(t *testing.T) {
	analysis, err := FromReader(strings.NewReader("Some text here."), format.Plaintext).
		Only(analyzers.IDTextStats, analyzers.IDWeakVerbs).
		Analyze()
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, r := range analysis.Document.Reports() {
		labels = append(labels, r.Label)
	}
	if strings.Join(labels, ",") != "Statistics,Weak verbs" {
		t.Errorf("reports = %v", labels)
	}
}

func TestConfig(t *testing.T) {
	c := config.Default()
	c.Math = "inline"
	c.Analyzers[analyzers.IDBigrams] = config.AnalyzerConfig{Disabled: true}
	c.Styles["weakVerb"] = "gold"

	p := FromReader(strings.NewReader("It is what it is."), format.Plaintext).Tagger(testTagger).Config(c)
	if p.options.math != model.MathInline {
		t.Errorf("math = %v, want inline", p.options.math)
	}

	var buf bytes.Buffer
	analysis, err := p.Render(&buf)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, r := range analysis.Document.Reports() {
		if r.Label == "Bigrams" {
			t.Error("disabled analyzer ran")
		}
	}
	if !strings.Contains(buf.String(), ".weakVerb { background-color: #ffd700; }") {
		t.Error("style override not rendered")
	}
	if !strings.Contains(buf.String(), render.DefaultMathJax) {
		t.Error("math mode from config not applied to rendering")
	}

	bad := config.Default()
	bad.Dictionaries.FilterWords = filepath.Join(t.TempDir(), "absent.json")
	_, err = FromReader(strings.NewReader("Text."), format.Plaintext).Config(bad).Analyze()
	var missing *config.MissingResourceError
	if !errors.As(err, &missing) {
		t.Errorf("error = %v, want *config.MissingResourceError", err)
	}
}

func TestMathWinsOverConfig(t *testing.T) {
	c := config.Default()
	c.Math = "display"

	tests := []struct {
		name string
		p    *Paper
		want model.MathMode
	}{
		{"config only", FromReader(strings.NewReader("Text."), format.Plaintext).Config(c), model.MathDisplay},
		{"math before config", FromReader(strings.NewReader("Text."), format.Plaintext).Math(model.MathInline).Config(c), model.MathInline},
		{"math after config", FromReader(strings.NewReader("Text."), format.Plaintext).Config(c).Math(model.MathOff), model.MathOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.err != nil {
				t.Fatalf("Config() error = %v", tt.p.err)
			}
			if tt.p.options.math != tt.want {
				t.Errorf("math = %v, want %v", tt.p.options.math, tt.want)
			}
			if got := tt.p.options.renderOptions().Math; got != tt.want {
				t.Errorf("renderOptions().Math = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	path := writeFile(t, "paper.tex", latexPaper)

	var outputs []string
	var prints []string
	for n := 0; n < 2; n++ {
		var buf bytes.Buffer
		analysis, err := Open(path).Tagger(testTagger).Render(&buf)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		outputs = append(outputs, buf.String())
		prints = append(prints, analysis.Document.Fingerprint())
	}
	if prints[0] != prints[1] {
		t.Errorf("fingerprints differ")
	}
	if outputs[0] != outputs[1] {
		t.Errorf("rendered reports differ")
	}
}

func TestRenderLossless(t *testing.T) {
	var buf bytes.Buffer
	analysis, err := FromReader(strings.NewReader(latexPaper), format.Tex).Tagger(testTagger).Render(&buf)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	page, err := html.Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := render.ContentText(page), analysis.Document.PlainText(); got != want {
		t.Errorf("rendered text = %q, want %q", got, want)
	}
}
