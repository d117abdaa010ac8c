package tokenize

import (
	"slices"
	"strings"
	"unicode"
)

// Common abbreviations that end with a period, including the ones that show
// up in scientific writing.
var defaultAbbreviations = []string{
	"mr.", "mrs.", "ms.", "dr.", "prof.",
	"sr.", "jr.", "vs.", "etc.", "e.g.", "i.e.", "cf.", "al.",
	"inc.", "ltd.", "co.", "corp.",
	"jan.", "feb.", "mar.", "apr.", "jun.", "jul.", "aug.", "sep.", "oct.", "nov.", "dec.",
	"no.", "vol.", "pp.", "pg.", "ch.", "ed.", "eds.",
	"fig.", "figs.", "eq.", "eqs.", "sec.", "tab.", "ref.", "refs.",
	"approx.", "resp.", "viz.", "ca.",
}

// SplitSentences splits text into sentences. A '.', '!' or '?' ends a
// sentence when it is followed by whitespace and an uppercase letter, a quote,
// an opening bracket, or the end of the text, and is not part of an
// abbreviation, an initial or a decimal number. Punctuation inside a $...$
// span never ends a sentence.
func (d *Default) SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	inMath := false

	runes := []rune(strings.TrimSpace(text))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		current.WriteRune(r)

		if r == '$' && (inMath || slices.Contains(runes[i+1:], '$')) {
			inMath = !inMath
			continue
		}
		if inMath || (r != '.' && r != '!' && r != '?') {
			continue
		}

		// Keep trailing closers like ")" or quotes with the sentence
		for i+1 < len(runes) && isCloser(runes[i+1]) {
			i++
			current.WriteRune(runes[i])
		}

		if d.isSentenceEnd(runes, i) {
			if sentence := strings.TrimSpace(current.String()); sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
		}
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		sentences = append(sentences, remaining)
	}
	return sentences
}

func isCloser(r rune) bool {
	switch r {
	case ')', ']', '"', '\'', '’', '”':
		return true
	}
	return false
}

// isSentenceEnd checks whether the terminal punctuation run ending at i is a
// sentence boundary.
func (d *Default) isSentenceEnd(runes []rune, i int) bool {
	// Step back over closers to the punctuation mark itself
	p := i
	for p > 0 && isCloser(runes[p]) {
		p--
	}

	if runes[p] == '.' && p > 0 {
		// Single capital letter before period (initials)
		if unicode.IsUpper(runes[p-1]) {
			if p < 2 || !unicode.IsLetter(runes[p-2]) {
				return false
			}
		}

		if d.isAbbreviation(runes, p) {
			return false
		}

		// Decimal numbers
		if unicode.IsDigit(runes[p-1]) && i+1 < len(runes) && unicode.IsDigit(runes[i+1]) {
			return false
		}
	}

	// End of text is a sentence end
	if i+1 >= len(runes) {
		return true
	}

	if i+2 < len(runes) && unicode.IsSpace(runes[i+1]) {
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j >= len(runes) {
			return true
		}
		next := runes[j]
		return unicode.IsUpper(next) || unicode.IsDigit(next) || strings.ContainsRune("\"'“‘([$\\", next)
	}

	return false
}

// isAbbreviation checks if the period at position i closes a known
// abbreviation. Dotted forms like "e.g." are matched whole.
func (d *Default) isAbbreviation(runes []rune, i int) bool {
	start := i
	for start > 0 && (unicode.IsLetter(runes[start-1]) || runes[start-1] == '.') {
		start--
	}
	if start >= i {
		return false
	}

	word := strings.ToLower(string(runes[start : i+1]))
	return d.abbreviations[word]
}
