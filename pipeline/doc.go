// Package pipeline runs analyzers over a parsed document.
//
// # Analyzers
//
// An analyzer declares the granularities it works at with a Capability set
// and implements the matching processor interfaces:
//
//	type counter struct {
//		pipeline.Base
//		n int
//	}
//
//	func (c *counter) ProcessSentence(s *model.Sentence) error {
//		c.n++
//		return nil
//	}
//
// Validate checks the declaration against the implemented methods.
//
// # Registration
//
// Analyzers are registered explicitly with a Registry under a unique id. The
// registration order is the discovery order that breaks priority ties.
// Build constructs the enabled analyzers from a shared Env.
//
// # Execution
//
// Runner.Run visits the document phase, then the sentence phase, then the
// token phase. Each analyzer's Finalize runs once, right after the last
// phase it takes part in. An analyzer that returns an error or panics is
// rolled back to the checkpoint taken before its pass and skipped from then
// on; the failure is recorded in the Result.
package pipeline
