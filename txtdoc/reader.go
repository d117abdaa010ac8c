// Package txtdoc parses plaintext documents into a model.Document.
//
// Paragraphs are separated by blank lines. A single line without a period is
// taken as a heading, and a paragraph whose lines all start with "- " is a
// list.
package txtdoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/swtk/internal/blocks"
	"github.com/tsawler/swtk/model"
)

var maskMath = blocks.R(`(^|[^\\])\$[^$]*[^$\\]\$`, "${1}[Eq]")

const bullet = "- "

// ReplacementTable returns the normalization table for the given math mode.
// Plaintext carries no markup, so only inline math is masked when it is off.
func ReplacementTable(math model.MathMode) []blocks.Replacement {
	if math.Inline() {
		return nil
	}
	return []blocks.Replacement{maskMath}
}

// Open parses a plaintext file.
func Open(filename string, opts model.ParseOptions) (*model.Document, []model.Warning, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f, opts)
}

// OpenReader parses plaintext from an io.Reader.
func OpenReader(r io.Reader, opts model.ParseOptions) (*model.Document, []model.Warning, error) {
	lines, err := blocks.ReadLines(r)
	if err != nil {
		return nil, nil, err
	}
	return Parse(lines, opts)
}

// Parse builds a document from plaintext lines. It never fails and never
// produces warnings; the signature matches the other format parsers.
func Parse(lines []string, opts model.ParseOptions) (*model.Document, []model.Warning, error) {
	doc := model.NewDocument()
	build := blocks.New(opts, ReplacementTable(opts.Math))

	var pending blocks.Pending
	flush := func() {
		if pending.Empty() {
			return
		}
		classify(doc, build, pending.Lines())
		pending.Reset()
	}

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		pending.Add(line, i+1)
	}
	flush()

	return doc, nil, nil
}

func classify(doc *model.Document, build *blocks.Builder, lines []string) {
	if len(lines) == 1 && !strings.Contains(lines[0], ".") {
		doc.AddBlock(build.Section(1, lines[0]))
		return
	}

	items := make([]string, 0, len(lines))
	for _, l := range lines {
		item, ok := strings.CutPrefix(l, bullet)
		if !ok {
			items = nil
			break
		}
		items = append(items, item)
	}
	if items != nil {
		if e := build.Enumeration(false, items); e != nil {
			doc.AddBlock(e)
		}
		return
	}

	if p := build.Paragraph("", strings.Join(lines, " ")); p != nil {
		doc.AddBlock(p)
	}
}
