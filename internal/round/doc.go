// Package round runs one build round: scan, filter, synthesize, emit.
//
// # Overview
//
// A round walks a fixed state machine:
//
//	Idle -> Scanning -> Filtering -> NoEligible
//	                              -> Synthesizing -> Emitting -> Done
//	                                                          -> EmitFailed
//
// Scanning ends in Failed when the universe cannot be read. Synthesizing
// ends in Failed when the naming convention cannot form a Go identifier.
// Without a channel a round goes from Synthesizing straight to Done.
//
// # Metadata
//
// Filtering keeps the marked struct fields that have an enclosing named
// type. Each one overwrites the previous, so the last field in discovery
// order names the login target. Every other candidate produces a warning.
//
// # Results
//
// [Round.Run] never keeps state between calls. Everything a round produced
// is returned in a [Result], including the diagnostics in the order they
// were raised. Running twice over the same universe gives equal results.
package round
