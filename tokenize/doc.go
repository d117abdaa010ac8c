// Package tokenize splits prose into sentences and words and tags words with
// parts of speech.
//
// The [Tokenizer] and [Tagger] interfaces are the only contact points between
// the parsers/analyzers and natural-language processing. [New] returns a
// rule-based tokenizer: sentence boundaries come from a rune scanner that
// knows about abbreviations, initials, decimals and inline math, and words
// come from a small regular lexer.
//
//	tok := tokenize.New()
//	for _, s := range tok.SplitSentences(text) {
//		words := tok.SplitWords(s, false)
//		...
//	}
//
// [ProseTagger] is the production tagger. [MapTagger] is a lexicon tagger for
// deterministic tests.
package tokenize
