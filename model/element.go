package model

import (
	"strings"

	"golang.org/x/net/html"
)

// BlockKind represents the variant of a text block
type BlockKind int

const (
	BlockUnknown BlockKind = iota
	BlockSection
	BlockParagraph
	BlockEnumeration
	BlockEquation
	BlockFloat
)

func (k BlockKind) String() string {
	switch k {
	case BlockSection:
		return "Section"
	case BlockParagraph:
		return "Paragraph"
	case BlockEnumeration:
		return "Enumeration"
	case BlockEquation:
		return "Equation"
	case BlockFloat:
		return "Float"
	default:
		return "Unknown"
	}
}

// Block is the interface for all structural document units
type Block interface {
	Kind() BlockKind
	// Sentences returns the block's sentences in order. Equations have none.
	Sentences() []*Sentence
	// CountsAsParagraph reports whether the block contributes to paragraph
	// statistics.
	CountsAsParagraph() bool
	Annotate(class string)
	Annotations() []string
	PlainText() string
	// Node renders the block as an HTML node.
	Node(opts RenderOptions) *html.Node
}

// blockBase carries the annotation list shared by all block variants.
type blockBase struct {
	notes annotationList
}

// Annotate appends an annotation class to the block.
func (b *blockBase) Annotate(class string) { b.notes.add(class) }

// Annotations returns a copy of the block annotation classes.
func (b *blockBase) Annotations() []string { return b.notes.list() }

func (b *blockBase) annotations() *annotationList { return &b.notes }

// Section represents a heading
type Section struct {
	blockBase
	Level   int // 1-5
	heading *Sentence
}

// NewSection creates a heading of the given level.
func NewSection(level int, heading *Sentence) *Section {
	if level < 1 {
		level = 1
	}
	if heading == nil {
		heading = NewSentence("", nil)
	}
	return &Section{Level: level, heading: heading}
}

func (s *Section) Kind() BlockKind         { return BlockSection }
func (s *Section) Sentences() []*Sentence  { return []*Sentence{s.heading} }
func (s *Section) CountsAsParagraph() bool { return false }
func (s *Section) PlainText() string       { return s.heading.Text() }

// Text returns the heading text.
func (s *Section) Text() string { return s.heading.Text() }

// Paragraph represents a paragraph of prose
type Paragraph struct {
	blockBase
	// Class is an optional HTML class, e.g. "abstract" or "float".
	Class     string
	sentences []*Sentence
}

// NewParagraph creates a paragraph from already-built sentences.
func NewParagraph(class string, sentences []*Sentence) *Paragraph {
	return &Paragraph{Class: class, sentences: sentences}
}

func (p *Paragraph) Kind() BlockKind         { return BlockParagraph }
func (p *Paragraph) Sentences() []*Sentence  { return p.sentences }
func (p *Paragraph) CountsAsParagraph() bool { return true }
func (p *Paragraph) PlainText() string       { return joinSentences(p.sentences) }

// Enumeration represents an ordered or unordered list of paragraphs
type Enumeration struct {
	blockBase
	Ordered bool
	Items   []*Paragraph
}

// NewEnumeration creates a list block from its item paragraphs.
func NewEnumeration(ordered bool, items []*Paragraph) *Enumeration {
	return &Enumeration{Ordered: ordered, Items: items}
}

func (e *Enumeration) Kind() BlockKind         { return BlockEnumeration }
func (e *Enumeration) CountsAsParagraph() bool { return true }

func (e *Enumeration) Sentences() []*Sentence {
	var sentences []*Sentence
	for _, item := range e.Items {
		sentences = append(sentences, item.sentences...)
	}
	return sentences
}

func (e *Enumeration) PlainText() string { return joinSentences(e.Sentences()) }

// Equation represents a standalone typeset equation
type Equation struct {
	blockBase
	TeX string
}

// NewEquation creates an equation block from its TeX source.
func NewEquation(tex string) *Equation {
	return &Equation{TeX: strings.TrimSpace(tex)}
}

func (e *Equation) Kind() BlockKind         { return BlockEquation }
func (e *Equation) Sentences() []*Sentence  { return nil }
func (e *Equation) CountsAsParagraph() bool { return false }
func (e *Equation) PlainText() string       { return "" }

// Float represents a figure or table; only its caption is kept.
type Float struct {
	blockBase
	Caption *Paragraph
}

// NewFloat creates a float block around its caption paragraph.
func NewFloat(caption *Paragraph) *Float {
	return &Float{Caption: caption}
}

func (f *Float) Kind() BlockKind         { return BlockFloat }
func (f *Float) CountsAsParagraph() bool { return false }

func (f *Float) Sentences() []*Sentence {
	if f.Caption == nil {
		return nil
	}
	return f.Caption.Sentences()
}

func (f *Float) PlainText() string {
	if f.Caption == nil {
		return ""
	}
	return f.Caption.PlainText()
}

func joinSentences(sentences []*Sentence) string {
	parts := make([]string, 0, len(sentences))
	for _, s := range sentences {
		parts = append(parts, s.Text())
	}
	return strings.Join(parts, " ")
}

// annotated exposes the block-level annotation list to checkpoints.
type annotated interface {
	annotations() *annotationList
}
