package tokenize

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// wordLexer splits a sentence into words, numbers and punctuation. Rules are
// tried in order, so the catch-all Punct rule comes last.
var wordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Number", Pattern: `[0-9]+(?:[.,][0-9]+)+%?|[0-9]+%`},
	{Name: "Word", Pattern: `[\p{L}\p{N}]+(?:['’\-][\p{L}\p{N}]+)*`},
	{Name: "Dollar", Pattern: `\$`},
	{Name: "Punct", Pattern: `[^\s\p{L}\p{N}]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	whitespaceType = wordLexer.Symbols()["Whitespace"]
	dollarType     = wordLexer.Symbols()["Dollar"]
)

type span struct {
	text       string
	start, end int
	dollar     bool
}

func lexSpans(text string) []span {
	lex, err := wordLexer.LexString("", text)
	if err != nil {
		return fieldSpans(text)
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return fieldSpans(text)
	}
	spans := make([]span, 0, len(tokens))
	for _, tok := range tokens {
		if tok.EOF() || tok.Type == whitespaceType {
			continue
		}
		spans = append(spans, span{
			text:   tok.Value,
			start:  tok.Pos.Offset,
			end:    tok.Pos.Offset + len(tok.Value),
			dollar: tok.Type == dollarType,
		})
	}
	return spans
}

// fieldSpans is the fallback when the lexer rejects the input.
func fieldSpans(text string) []span {
	var spans []span
	offset := 0
	for _, f := range strings.Fields(text) {
		i := strings.Index(text[offset:], f) + offset
		spans = append(spans, span{text: f, start: i, end: i + len(f), dollar: f == "$"})
		offset = i + len(f)
	}
	return spans
}

// splitWords lexes text into words. With math enabled everything from a
// '$' up to the next '$' becomes one token holding the source text of the
// span. An unclosed '$' is left as a plain token.
func splitWords(text string, math bool) []string {
	spans := lexSpans(text)
	words := make([]string, 0, len(spans))
	for i := 0; i < len(spans); i++ {
		s := spans[i]
		if math && s.dollar {
			if j := nextDollar(spans, i+1); j > 0 {
				words = append(words, text[s.start:spans[j].end])
				i = j
				continue
			}
		}
		words = append(words, s.text)
	}
	return words
}

func nextDollar(spans []span, from int) int {
	for j := from; j < len(spans); j++ {
		if spans[j].dollar {
			return j
		}
	}
	return -1
}
