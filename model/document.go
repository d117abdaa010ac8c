package model

import (
	"fmt"
	"sort"
	"strings"
)

// Document represents a parsed paper together with the statistics and
// reports accumulated by analyzers.
type Document struct {
	Metadata Metadata

	blocks  []Block
	stats   map[string]float64
	reports []*Report
}

// Metadata contains document-level information
type Metadata struct {
	Title  string
	Author string
	// Custom metadata
	Custom map[string]string
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Metadata: Metadata{
			Custom: make(map[string]string),
		},
		blocks: make([]Block, 0),
		stats:  make(map[string]float64),
	}
}

// AddBlock appends a block. Only parsers call this; analyzers never add or
// reorder blocks.
func (d *Document) AddBlock(b Block) {
	if b != nil {
		d.blocks = append(d.blocks, b)
	}
}

// Blocks returns the blocks in source order.
func (d *Document) Blocks() []Block {
	return d.blocks
}

// BlockCount returns the total number of blocks
func (d *Document) BlockCount() int {
	return len(d.blocks)
}

// Sentences returns every sentence in document order: block order, then
// sentence order within each block.
func (d *Document) Sentences() []*Sentence {
	var sentences []*Sentence
	for _, b := range d.blocks {
		sentences = append(sentences, b.Sentences()...)
	}
	return sentences
}

// ParagraphCount returns the number of blocks counted as paragraphs.
func (d *Document) ParagraphCount() int {
	n := 0
	for _, b := range d.blocks {
		if b.CountsAsParagraph() {
			n++
		}
	}
	return n
}

// PlainText returns the prose of all blocks separated by blank lines.
func (d *Document) PlainText() string {
	parts := make([]string, 0, len(d.blocks))
	for _, b := range d.blocks {
		if text := b.PlainText(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Abstract returns the text of all paragraphs marked as abstract.
func (d *Document) Abstract() string {
	var parts []string
	for _, b := range d.blocks {
		if p, ok := b.(*Paragraph); ok && p.Class == "abstract" {
			parts = append(parts, p.PlainText())
		}
	}
	return strings.Join(parts, "\n\n")
}

// SetStat records a named statistic, replacing any previous value.
func (d *Document) SetStat(name string, value float64) {
	d.stats[name] = value
}

// Stat returns a named statistic and whether it has been set.
func (d *Document) Stat(name string) (float64, bool) {
	v, ok := d.stats[name]
	return v, ok
}

// StatNames returns the names of all statistics, sorted.
func (d *Document) StatNames() []string {
	names := make([]string, 0, len(d.stats))
	for name := range d.stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddReport appends a report. Reports keep the order in which analyzers
// finalized.
func (d *Document) AddReport(r *Report) {
	if r != nil {
		d.reports = append(d.reports, r)
	}
}

// Reports returns the accumulated reports in order.
func (d *Document) Reports() []*Report {
	return d.reports
}

func (d *Document) String() string {
	return fmt.Sprintf("<Paper %q by %s : %d blocks>", d.Metadata.Title, d.Metadata.Author, len(d.blocks))
}

// Summary returns a multi-line outline of the metadata and blocks with the
// annotations of each sentence.
func (d *Document) Summary() string {
	var sb strings.Builder
	sb.WriteString("Paper:\n")
	if d.Metadata.Title != "" {
		fmt.Fprintf(&sb, "  title = %s\n", d.Metadata.Title)
	}
	if d.Metadata.Author != "" {
		fmt.Fprintf(&sb, "  author = %s\n", d.Metadata.Author)
	}
	keys := make([]string, 0, len(d.Metadata.Custom))
	for k := range d.Metadata.Custom {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %s = %s\n", k, d.Metadata.Custom[k])
	}
	sb.WriteString("Content:\n")
	for _, b := range d.blocks {
		sentences := b.Sentences()
		fmt.Fprintf(&sb, "  %s : ", b.Kind())
		indent := ""
		if len(sentences) > 1 {
			fmt.Fprintf(&sb, "[%d sentences]\n", len(sentences))
			indent = "      "
		}
		for _, s := range sentences {
			fmt.Fprintf(&sb, "%s%s [%s]\n", indent, truncate(s.Text(), 50), strings.Join(s.Annotations(), ", "))
		}
		if len(sentences) == 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
