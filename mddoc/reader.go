// Package mddoc parses Markdown documents into a model.Document.
//
// Supported syntax is what papers and notes written in Markdown actually
// use: ATX headings, bullet and numbered lists, fenced code (dropped), YAML
// front matter for the title and author, and inline links, images,
// emphasis and code spans.
package mddoc

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/swtk/internal/blocks"
	"github.com/tsawler/swtk/model"
)

// Escaped emphasis markers are parked on private-use runes so the emphasis
// rules below cannot see them, then restored.
var replacements = []blocks.Replacement{
	blocks.R(`\\\*`, "\uE000"),
	blocks.R(`\\_`, "\uE001"),
	blocks.R(`!\[[^\]]*\]\([^)]*\)`, ""),
	blocks.R(`\[([^\]]+)\]\([^)]+\)`, "${1}"),
	blocks.R("`[^`]+`", "[code]"),
	blocks.R(`\*\*([^*]+)\*\*`, "${1}"),
	blocks.R(`__([^_]+)__`, "${1}"),
	blocks.R(`\*([^*\s][^*]*)\*`, "${1}"),
	blocks.R(`(^|\W)_([^_]+)_(\W|$)`, "${1}${2}${3}"),
}

var maskMath = blocks.R(`(^|[^\\])\$[^$]*[^$\\]\$`, "${1}[Eq]")

var escapes = []blocks.Replacement{
	blocks.R("\\\\([\\\\`{}\\[\\]()#+\\-.!%$])", "${1}"),
	blocks.R("\uE000", "*"),
	blocks.R("\uE001", "_"),
}

var (
	bulletDash = regexp.MustCompile(`^- `)
	bulletStar = regexp.MustCompile(`^\* `)
	numbered   = regexp.MustCompile(`^[0-9]+\. `)

	thematicBreak = regexp.MustCompile(`^(?:(?:- *){3,}|(?:\* *){3,}|(?:_ *){3,})$`)
)

// ReplacementTable returns the inline normalization table for the given math
// mode.
func ReplacementTable(math model.MathMode) []blocks.Replacement {
	table := append([]blocks.Replacement(nil), replacements...)
	if !math.Inline() {
		table = append(table, maskMath)
	}
	return append(table, escapes...)
}

// Open parses a Markdown file.
func Open(filename string, opts model.ParseOptions) (*model.Document, []model.Warning, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f, opts)
}

// OpenReader parses Markdown from an io.Reader.
func OpenReader(r io.Reader, opts model.ParseOptions) (*model.Document, []model.Warning, error) {
	lines, err := blocks.ReadLines(r)
	if err != nil {
		return nil, nil, err
	}
	return Parse(lines, opts)
}

// Parse builds a document from Markdown lines. Markdown parsing never fails;
// a malformed front matter block is reported as a warning.
func Parse(lines []string, opts model.ParseOptions) (*model.Document, []model.Warning, error) {
	p := &parser{
		doc:   model.NewDocument(),
		build: blocks.New(opts, ReplacementTable(opts.Math)),
	}
	lines = p.frontMatter(lines)
	p.run(lines)
	return p.doc, p.warnings, nil
}

type parser struct {
	doc      *model.Document
	build    *blocks.Builder
	warnings []model.Warning
	pending  blocks.Pending
	offset   int
}

// frontMatter consumes a leading "---" delimited YAML mapping and returns the
// remaining lines. A block that is not a YAML mapping is left in place and
// read as text.
func (p *parser) frontMatter(lines []string) []string {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return lines
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if t := strings.TrimSpace(lines[i]); t == "---" || t == "..." {
			end = i
			break
		}
	}
	if end < 0 {
		return lines
	}

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &meta); err != nil {
		msg := fmt.Sprintf("front matter is not a YAML mapping, read as text: %v", err)
		p.warnings = append(p.warnings, model.Warning{Line: 1, Message: msg})
		p.offset = 0
		return lines
	}
	for k, v := range meta {
		value := metaString(v)
		switch strings.ToLower(k) {
		case "title":
			p.doc.Metadata.Title = value
		case "author", "authors":
			p.doc.Metadata.Author = value
		default:
			p.doc.Metadata.Custom[k] = value
		}
	}

	p.offset = end + 1
	return lines[end+1:]
}

func metaString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, metaString(item))
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if name, ok := val["name"]; ok {
			return metaString(name)
		}
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func (p *parser) run(lines []string) {
	inFence := false
	fenceLine := 0
	for i, line := range lines {
		n := p.offset + i + 1
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~") {
			if !inFence {
				p.flush()
				fenceLine = n
			}
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		if line == "" || thematicBreak.MatchString(line) {
			p.flush()
			continue
		}

		if headingLevel(line) > 0 {
			p.flush()
			p.pending.Add(line, n)
			p.flush()
			continue
		}

		p.pending.Add(line, n)
	}
	if inFence {
		p.warnings = append(p.warnings, model.Warning{Line: fenceLine, Message: "code fence never closed, rest of document dropped"})
		return
	}
	p.flush()
}

// headingLevel returns 1-5 for an ATX heading line and 0 otherwise.
func headingLevel(line string) int {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 5 || level >= len(line) || line[level] != ' ' {
		return 0
	}
	return level
}

func (p *parser) flush() {
	if p.pending.Empty() {
		return
	}
	lines := append([]string(nil), p.pending.Lines()...)
	body := p.pending.Text()
	p.pending.Reset()

	if level := headingLevel(body); level > 0 {
		text := strings.TrimSpace(strings.TrimRight(body[level+1:], "# "))
		if text != "" {
			p.doc.AddBlock(p.build.Section(level, text))
		}
		return
	}

	for _, marker := range []*regexp.Regexp{bulletDash, bulletStar, numbered} {
		if !allMatch(lines, marker) {
			continue
		}
		items := make([]string, 0, len(lines))
		for _, l := range lines {
			items = append(items, marker.ReplaceAllString(strings.TrimSpace(l), ""))
		}
		if e := p.build.Enumeration(marker == numbered, items); e != nil {
			p.doc.AddBlock(e)
		}
		return
	}

	if para := p.build.Paragraph("", body); para != nil {
		p.doc.AddBlock(para)
	}
}

func allMatch(lines []string, marker *regexp.Regexp) bool {
	seen := false
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if !marker.MatchString(l) {
			return false
		}
		seen = true
	}
	return seen
}
