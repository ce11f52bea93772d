// Package pipeline provides immutable, lazily evaluated pipelines over
// ordered keyed sequences.
//
// A [Pipeline] holds a source and an ordered list of stages. Combinators
// never mutate their receiver: Filter, Map, TryFilter, TryMap and Inspect
// return a new pipeline with one more queued [Stage]; Skip, SkipWhile, Take,
// TakeWhile and Rev return a new pipeline whose source is the previous one.
// Nothing runs until a terminal operation (All, Any, Native, Seq, ForEach,
// Count, ...) pulls elements through.
//
// # Evaluation model
//
// Each element drawn from the source walks the stage list in declaration
// order. A map stage replaces the running value; a filter stage that rejects
// the element ends the walk with a [Dropped] outcome, so no later stage and no
// consumer ever observes it. Keys pass through untouched.
//
// Constructing a chain of k combinators is O(k). One terminal call draws
// every needed source element exactly once and performs at most one stage
// call per stage per surviving element; no intermediate collections are
// built except the buffer Rev needs. An eager design that materialised after
// every combinator would instead cost O(n·k) allocations and copies.
//
// Terminals that decide early (All, Any, First, Take) stop drawing from the
// source as soon as the result is known. Breaking out of a range over [Pipeline.Seq]
// does the same.
//
// # Sources
//
// Slices, entry lists and iter.Seq/iter.Seq2 functions are replayable: every
// terminal call re-derives the same keys and values. An [Iterator] source, or
// any source wrapped with [Once], is single-pass: a second terminal call on
// any pipeline derived from it fails with SOURCE_CONSUMED instead of yielding
// an empty result.
//
// # Errors
//
// Invalid arguments (a negative Skip or Take count) are recorded when the
// combinator is called and returned by every terminal operation without
// touching the source. Errors returned by TryMap/TryFilter functions or by the
// source abort the evaluation and are returned wrapped in an
// errors.AppError; errors.Is still reaches the original error. Panics are
// not recovered.
//
// # Usage
//
//	odd := pipeline.Create(1, 2, 3, 4, 5, 6, 7, 8, 9, 10).
//	    Filter(func(v int) bool { return v%2 == 1 }).
//	    Map(func(v int) int { return v * v })
//	entries, err := odd.Native(ctx) // keys 0, 2, 4, 6, 8 -> 1, 9, 25, 49, 81
package pipeline
