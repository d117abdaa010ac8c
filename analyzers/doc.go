// Package analyzers contains the built-in writing analyzers.
//
// Each analyzer highlights one kind of problem and adds a report to the
// document when it finalizes. Document-level analyzers run first so the
// statistics they record (sentence, word and verb counts) are available to
// the sentence and token analyzers that compute percentages from them:
//
//	help             0  guidelines report
//	text-stats       1  characters, words, sentences, paragraphs
//	pos-tagger       2  part-of-speech tags and counts
//	sentence-length 50  long and short sentences
//	buried-verbs    75  verbs far from their subject
//	rare-words     100  uncommon words used often
//	bigrams        101  frequent word pairs
//	trigrams       101  frequent word triples
//	abbreviations  110  all-capital abbreviations
//	acronyms       110  acronyms and whether they are defined
//	weak-verbs     110  to be, to do, to have
//	filter-words   150  vague words and phrases
//	passive-voice  160  passive constructions
//
// Dictionaries default to the embedded files under data/ and can be
// replaced through pipeline.Env.Resources.
package analyzers
