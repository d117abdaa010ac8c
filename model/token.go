package model

import (
	"strings"
	"unicode/utf8"
)

// HiddenPrefix marks an annotation class whose style is defined but hidden
// until the reader toggles it on. The class "_passiveVoice" is rendered, but
// only highlighted once the "passiveVoice" style is switched on.
const HiddenPrefix = "_"

// annotationList is an append-only ordered list of annotation classes.
// Duplicates are kept; the order is the order in which analyzers appended.
type annotationList struct {
	classes []string
}

func (a *annotationList) add(class string) {
	if class == "" {
		return
	}
	a.classes = append(a.classes, class)
}

func (a *annotationList) list() []string {
	if len(a.classes) == 0 {
		return nil
	}
	out := make([]string, len(a.classes))
	copy(out, a.classes)
	return out
}

func (a *annotationList) has(class string) bool {
	for _, c := range a.classes {
		if c == class {
			return true
		}
	}
	return false
}

func (a *annotationList) truncate(n int) {
	if n < len(a.classes) {
		a.classes = a.classes[:n]
	}
}

// Token is a single word, punctuation mark, or inline math unit.
type Token struct {
	text         string
	tag          string
	notes        annotationList
	alternatives []string
}

// NewToken creates a token with the given surface text.
func NewToken(text string) *Token {
	return &Token{text: text}
}

// Text returns the surface text of the token.
func (t *Token) Text() string { return t.text }

// Tag returns the part-of-speech tag, or "" if the token was never tagged.
func (t *Token) Tag() string { return t.tag }

// SetTag records the part-of-speech tag for the token.
func (t *Token) SetTag(tag string) { t.tag = tag }

// Annotate appends an annotation class to the token.
func (t *Token) Annotate(class string) { t.notes.add(class) }

// Annotations returns a copy of the token's annotation classes in the order
// they were appended.
func (t *Token) Annotations() []string { return t.notes.list() }

// HasAnnotation reports whether the class was appended at least once.
func (t *Token) HasAnnotation(class string) bool { return t.notes.has(class) }

// AddAlternative appends a suggested replacement for the token.
func (t *Token) AddAlternative(alt string) {
	if alt != "" {
		t.alternatives = append(t.alternatives, alt)
	}
}

// Alternatives returns a copy of the suggested replacements.
func (t *Token) Alternatives() []string {
	return append([]string(nil), t.alternatives...)
}

// IsMath reports whether the token is an inline math span ($...$).
func (t *Token) IsMath() bool {
	return strings.HasPrefix(t.text, "$") && utf8.RuneCountInString(t.text) > 1
}

func (t *Token) String() string { return t.text }

// Sentence is a fixed sequence of tokens plus its own annotations.
type Sentence struct {
	raw    string
	tokens []*Token
	notes  annotationList
}

// NewSentence builds a sentence from its raw text and the words produced by
// the tokenizer. The number of tokens never changes afterwards.
func NewSentence(raw string, words []string) *Sentence {
	s := &Sentence{
		raw:    raw,
		tokens: make([]*Token, 0, len(words)),
	}
	for _, w := range words {
		s.tokens = append(s.tokens, NewToken(w))
	}
	return s
}

// Raw returns the sentence substring the tokens were built from.
func (s *Sentence) Raw() string { return s.raw }

// Tokens returns the sentence tokens. The slice is shared; the token
// pointers are stable for the lifetime of the document.
func (s *Sentence) Tokens() []*Token { return s.tokens }

// Len returns the number of tokens.
func (s *Sentence) Len() int { return len(s.tokens) }

// Last returns the final token, or nil for an empty sentence.
func (s *Sentence) Last() *Token {
	if len(s.tokens) == 0 {
		return nil
	}
	return s.tokens[len(s.tokens)-1]
}

// Annotate appends an annotation class to the sentence.
func (s *Sentence) Annotate(class string) { s.notes.add(class) }

// Annotations returns a copy of the sentence annotation classes.
func (s *Sentence) Annotations() []string { return s.notes.list() }

// HasAnnotation reports whether the class was appended to the sentence.
func (s *Sentence) HasAnnotation(class string) bool { return s.notes.has(class) }

// Words returns the token texts in order.
func (s *Sentence) Words() []string {
	words := make([]string, len(s.tokens))
	for i, t := range s.tokens {
		words[i] = t.text
	}
	return words
}

// Text reconstructs readable text from the tokens, re-attaching punctuation
// that the tokenizer split off.
func (s *Sentence) Text() string {
	var sb strings.Builder
	for i, t := range s.tokens {
		if i > 0 && SpaceBetween(s.tokens[i-1].text, t.text) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.text)
	}
	return sb.String()
}

func (s *Sentence) String() string { return strings.Join(s.Words(), " ") }

var (
	noSpaceBefore = map[string]bool{
		".": true, ",": true, "?": true, "!": true, ":": true, ";": true,
		"]": true, ")": true, "'s": true, "n't": true,
	}
	noSpaceAfter = map[string]bool{"[": true, "(": true}
)

// SpaceBetween reports whether a space separates two adjacent tokens when the
// sentence is printed.
func SpaceBetween(prev, next string) bool {
	return !noSpaceBefore[next] && !noSpaceAfter[prev]
}
