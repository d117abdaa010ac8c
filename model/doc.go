// Package model provides the in-memory representation of a parsed paper.
//
// Every format parser produces these types, every analyzer mutates them
// through their append-only accessors, and the renderer reads them. They are
// the primary API for consuming parsed content.
//
// # Document Structure
//
// The [Document] type holds metadata, an ordered list of blocks, a statistics
// map and the reports added by analyzers:
//
//	doc := model.NewDocument()
//	doc.Metadata.Title = "On Writing"
//	doc.AddBlock(model.NewSection(1, heading))
//
// Block order is source order and never changes after parsing.
//
// # Blocks
//
// All structural content implements the [Block] interface. The concrete types
// are:
//
//   - [Section] - headings (levels 1-5)
//   - [Paragraph] - prose, optionally classed (e.g. "abstract")
//   - [Enumeration] - ordered or unordered lists of paragraphs
//   - [Equation] - standalone display math, no sentences
//   - [Float] - the caption of a figure or table
//
// # Sentences and Tokens
//
// A [Sentence] owns a fixed slice of [Token] values. Token and sentence
// pointers stay valid for the life of the document, so analyzers running in
// later phases can rely on references taken in earlier ones.
//
// # Annotations
//
// Tokens, sentences and blocks carry ordered lists of annotation classes.
// A class is a CSS class name; one that starts with [HiddenPrefix] is emitted
// but only highlighted once the matching style is toggled on. Classes and
// report styles are linked by name only.
//
// # Reports
//
// A [Report] is a finding from one analyzer: a label, optional help HTML,
// optional [Detail] lines, an optional summary, and the [Style] definitions
// it controls.
//
// # Checkpoints
//
// [Document.Checkpoint] snapshots all append-only collections so a failed
// analyzer's partial writes can be rolled back with [Checkpoint.Restore].
// [Document.Fingerprint] digests the full annotated state.
package model
