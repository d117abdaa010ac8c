// Package blocks turns normalized paragraph text into model blocks. It is
// shared by the format parsers so every format builds sentences the same way.
package blocks

import (
	"regexp"
	"strings"

	"github.com/tsawler/swtk/model"
	"github.com/tsawler/swtk/tokenize"
)

// Replacement is one entry of a format's macro normalization table.
type Replacement struct {
	Pattern *regexp.Regexp
	With    string
}

// R compiles a replacement table entry. It panics on a bad pattern, so it is
// only meant for package-level tables.
func R(pattern, with string) Replacement {
	return Replacement{Pattern: regexp.MustCompile(pattern), With: with}
}

var multiSpace = regexp.MustCompile(`[ \t]{2,}`)

// Builder creates blocks from text using a tokenizer and a replacement table.
type Builder struct {
	opts         model.ParseOptions
	tok          tokenize.Tokenizer
	replacements []Replacement
}

// New creates a builder. The replacement table is applied in order to every
// piece of text before it is split into sentences.
func New(opts model.ParseOptions, replacements []Replacement) *Builder {
	return &Builder{
		opts:         opts,
		tok:          opts.Tok(),
		replacements: replacements,
	}
}

// Normalize applies the replacement table, maps '~' to a space and collapses
// runs of spaces.
func (b *Builder) Normalize(text string) string {
	for _, r := range b.replacements {
		text = r.Pattern.ReplaceAllString(text, r.With)
	}
	text = strings.ReplaceAll(text, "~", " ")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Sentences normalizes text and splits it into sentences of tokens.
func (b *Builder) Sentences(text string) []*model.Sentence {
	text = b.Normalize(text)
	if text == "" {
		return nil
	}
	var sentences []*model.Sentence
	for _, raw := range b.tok.SplitSentences(text) {
		words := b.tok.SplitWords(raw, b.opts.Math.Inline())
		if len(words) == 0 {
			continue
		}
		sentences = append(sentences, model.NewSentence(raw, words))
	}
	return sentences
}

// Paragraph builds a paragraph, or returns nil when text holds no words.
func (b *Builder) Paragraph(class, text string) *model.Paragraph {
	sentences := b.Sentences(text)
	if len(sentences) == 0 {
		return nil
	}
	return model.NewParagraph(class, sentences)
}

// Section builds a heading. The whole heading is one sentence even when it
// contains terminal punctuation.
func (b *Builder) Section(level int, text string) *model.Section {
	text = b.Normalize(text)
	return model.NewSection(level, model.NewSentence(text, b.tok.SplitWords(text, b.opts.Math.Inline())))
}

// Enumeration builds a list from item texts, skipping empty items. It
// returns nil when no item has words.
func (b *Builder) Enumeration(ordered bool, items []string) *model.Enumeration {
	var paragraphs []*model.Paragraph
	for _, item := range items {
		if p := b.Paragraph("", item); p != nil {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		return nil
	}
	return model.NewEnumeration(ordered, paragraphs)
}

// Float builds a float around its caption text, or returns nil for an empty
// caption.
func (b *Builder) Float(caption string) *model.Float {
	p := b.Paragraph("float", caption)
	if p == nil {
		return nil
	}
	return model.NewFloat(p)
}
