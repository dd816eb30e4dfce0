// Package extract turns the tag/attribute/text event stream of a fixtures or
// results page into parallel lists of raw strings: home names, away names,
// per-match date labels, kickoff labels and score labels.
//
// Each field is tracked by a small capture state machine (idle, outer element
// open, inner element open) and the results body is tracked by a Region that
// counts nested containers of the same tag, so the body is only left when the
// element that opened it closes. Tokenize adapts golang.org/x/net/html to the
// Event stream; the Extractor itself never sees HTML.
//
// Captured text is trimmed but never filtered: an empty label is still a
// label. Batch.Check enforces that every non-empty sequence lines up with the
// home names before any record is built.
package extract
