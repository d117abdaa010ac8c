package model

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element creates an HTML element node with the given attributes, given as
// alternating key/value pairs.
func Element(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

// TextNode creates an HTML text node. Escaping happens at render time.
func TextNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Node renders the token as a text node, or as a span carrying its
// annotation classes and alternatives.
func (t *Token) Node(opts RenderOptions) *html.Node {
	text := t.text
	if opts.Math.Inline() && t.IsMath() {
		text = `\(` + strings.Trim(text, "$ ") + `\)`
	}
	if len(t.notes.classes) == 0 {
		return TextNode(text)
	}
	span := Element(atom.Span,
		"class", strings.Join(t.notes.classes, " "),
		"data-alt", strings.Join(t.alternatives, ", "))
	span.AppendChild(TextNode(text))
	return span
}

// appendInline writes the sentence tokens into parent. Annotated sentences
// get their own span so sentence-level classes apply to the whole run.
func (s *Sentence) appendInline(parent *html.Node, opts RenderOptions) {
	target := parent
	if len(s.notes.classes) > 0 {
		target = Element(atom.Span, "class", strings.Join(s.notes.classes, " "))
		parent.AppendChild(target)
	}
	for i, t := range s.tokens {
		if i > 0 && SpaceBetween(s.tokens[i-1].text, t.text) {
			target.AppendChild(TextNode(" "))
		}
		target.AppendChild(t.Node(opts))
	}
}

func appendSentences(parent *html.Node, sentences []*Sentence, opts RenderOptions) {
	for i, s := range sentences {
		if i > 0 {
			parent.AppendChild(TextNode(" "))
		}
		s.appendInline(parent, opts)
	}
}

func classAttr(base string, notes []string) string {
	parts := make([]string, 0, len(notes)+1)
	if base != "" {
		parts = append(parts, base)
	}
	parts = append(parts, notes...)
	return strings.Join(parts, " ")
}

var headingAtoms = []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// Node renders the section as an h1..h6 heading.
func (s *Section) Node(opts RenderOptions) *html.Node {
	level := min(max(s.Level, 1), len(headingAtoms))
	h := Element(headingAtoms[level-1], "class", classAttr("", s.notes.classes))
	if s.heading != nil {
		s.heading.appendInline(h, opts)
	}
	return h
}

// Node renders the paragraph as a p element.
func (p *Paragraph) Node(opts RenderOptions) *html.Node {
	n := Element(atom.P, "class", classAttr(p.Class, p.notes.classes))
	appendSentences(n, p.sentences, opts)
	return n
}

// Node renders the enumeration as ol or ul with one li per item.
func (e *Enumeration) Node(opts RenderOptions) *html.Node {
	a := atom.Ul
	if e.Ordered {
		a = atom.Ol
	}
	list := Element(a, "class", classAttr("", e.notes.classes))
	for _, item := range e.Items {
		li := Element(atom.Li)
		li.AppendChild(item.Node(opts))
		list.AppendChild(li)
	}
	return list
}

// Node renders the equation as a display-math paragraph.
func (e *Equation) Node(opts RenderOptions) *html.Node {
	p := Element(atom.P, "class", classAttr("equation", e.notes.classes))
	p.AppendChild(TextNode(fmt.Sprintf("$$%s$$", e.TeX)))
	return p
}

// Node renders only the caption of the float.
func (f *Float) Node(opts RenderOptions) *html.Node {
	if f.Caption == nil {
		return Element(atom.P, "class", "float")
	}
	return f.Caption.Node(opts)
}

// RenderBlock serializes a single block to an HTML string.
func RenderBlock(b Block, opts RenderOptions) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, b.Node(opts)); err != nil {
		return "", fmt.Errorf("render %s: %w", b.Kind(), err)
	}
	return sb.String(), nil
}
